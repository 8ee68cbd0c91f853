package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pantryloop/backend/internal/logger"
	"github.com/pantryloop/backend/internal/models"
	"github.com/pantryloop/backend/internal/service"
	"github.com/pantryloop/backend/internal/testhelpers"
)

func setupRecipeTest(t *testing.T) (*gorm.DB, *service.RecipeService, *models.Group, *models.User) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "alice")
	group := testhelpers.CreateTestGroup(t, db, user.ID)
	return db, service.NewRecipeService(db, logger.NewNop()), group, user
}

func TestCreateRecipeRejectsDuplicateName(t *testing.T) {
	_, svc, group, user := setupRecipeTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, group.ID, user.ID, "Lasagne", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, group.ID, user.ID, "lasagne", "")
	assert.ErrorIs(t, err, service.ErrDuplicateName)
}

func TestListHidesChecklist(t *testing.T) {
	_, svc, group, user := setupRecipeTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, group.ID, user.ID, "Lasagne", "")
	require.NoError(t, err)
	_, err = svc.Checklist(ctx, group.ID)
	require.NoError(t, err)

	recipes, err := svc.List(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Lasagne", recipes[0].Name)
}

func TestListByUser(t *testing.T) {
	db, svc, group, user := setupRecipeTest(t)
	ctx := context.Background()

	other := testhelpers.CreateTestUser(t, db, "bob")
	require.NoError(t, db.Create(&models.GroupMembership{UserID: other.ID, GroupID: group.ID}).Error)

	_, err := svc.Create(ctx, group.ID, user.ID, "Lasagne", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, group.ID, other.ID, "Curry", "")
	require.NoError(t, err)

	mine, err := svc.ListByUser(ctx, group.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Lasagne", mine[0].Name)
}

func TestChecklistIsCreatedLazilyOnce(t *testing.T) {
	db, svc, group, _ := setupRecipeTest(t)
	ctx := context.Background()

	first, err := svc.Checklist(ctx, group.ID)
	require.NoError(t, err)
	second, err := svc.Checklist(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).
		Where("group_id = ?", group.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResolveByNameReservedNameFindsChecklist(t *testing.T) {
	_, svc, group, _ := setupRecipeTest(t)

	recipe, exact, err := svc.ResolveByName(context.Background(), group.ID, "auto")
	require.NoError(t, err)
	assert.True(t, exact)
	assert.True(t, recipe.IsChecklist())
}

func TestResolveByNameFuzzy(t *testing.T) {
	_, svc, group, user := setupRecipeTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, group.ID, user.ID, "Spaghetti Bolognese", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, group.ID, user.ID, "Pancakes", "")
	require.NoError(t, err)

	recipe, _, err := svc.ResolveByName(ctx, group.ID, "spagetti-bolognese")
	require.NoError(t, err)
	assert.Equal(t, "Spaghetti Bolognese", recipe.Name)
}

func TestAddIngredientRejectsForeignProduct(t *testing.T) {
	db, svc, group, user := setupRecipeTest(t)
	ctx := context.Background()

	recipe, err := svc.Create(ctx, group.ID, user.ID, "Lasagne", "")
	require.NoError(t, err)

	other := testhelpers.CreateTestUser(t, db, "bob")
	otherGroup := testhelpers.CreateTestGroup(t, db, other.ID)
	foreign := testhelpers.CreateTestProduct(t, db, otherGroup.ID, "Milk", "")

	_, err = svc.AddIngredient(ctx, group.ID, recipe.ID, foreign.ID, user.ID, "1l")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteRecipeRemovesItsIngredients(t *testing.T) {
	db, svc, group, user := setupRecipeTest(t)
	ctx := context.Background()

	recipe, err := svc.Create(ctx, group.ID, user.ID, "Lasagne", "")
	require.NoError(t, err)
	product := testhelpers.CreateTestProduct(t, db, group.ID, "Milk", "")
	_, err = svc.AddIngredient(ctx, group.ID, recipe.ID, product.ID, user.ID, "1l")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, group.ID, recipe.ID))

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteChecklistIsRefused(t *testing.T) {
	_, svc, group, _ := setupRecipeTest(t)
	ctx := context.Background()

	checklist, err := svc.Checklist(ctx, group.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, group.ID, checklist.ID)
	assert.ErrorIs(t, err, service.ErrReservedRecipe)
}

func TestDeleteUnknownRecipeIsNoOp(t *testing.T) {
	_, svc, group, _ := setupRecipeTest(t)
	assert.NoError(t, svc.Delete(context.Background(), group.ID, uuid.New()))
}
