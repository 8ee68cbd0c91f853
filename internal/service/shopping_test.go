package service_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pantryloop/backend/internal/cache"
	"github.com/pantryloop/backend/internal/logger"
	"github.com/pantryloop/backend/internal/models"
	"github.com/pantryloop/backend/internal/service"
	"github.com/pantryloop/backend/internal/testhelpers"
)

type shoppingFixture struct {
	db    *gorm.DB
	store *cache.MemoryStore
	svc   *service.ShoppingService
	group *models.Group
	user  *models.User
}

func setupShoppingTest(t *testing.T) shoppingFixture {
	db := testhelpers.SetupTestDB(t)
	store := cache.NewMemoryStore()
	user := testhelpers.CreateTestUser(t, db, "alice")
	group := testhelpers.CreateTestGroup(t, db, user.ID)
	return shoppingFixture{
		db:    db,
		store: store,
		svc:   service.NewShoppingService(db, store, logger.NewNop()),
		group: group,
		user:  user,
	}
}

func (f shoppingFixture) listCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.Ingredient{}).
		Where("on_shopping_list = ?", true).Count(&count).Error)
	return count
}

func TestReadHashInitializesToOne(t *testing.T) {
	f := setupShoppingTest(t)

	hash, err := f.svc.ReadHash(context.Background(), f.group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hash)
}

func TestBumpHashAdvancesCounter(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	_, err := f.svc.ReadHash(ctx, f.group.ID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := f.svc.BumpHash(ctx, f.group.ID)
		require.NoError(t, err)
	}

	hash, err := f.svc.ReadHash(ctx, f.group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), hash)
}

func TestBumpHashWrapsPastLimit(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	require.NoError(t, f.store.Set(ctx, "shopping-hash-"+f.group.ID.String(),
		strconv.FormatInt(1_000_000_000, 10), 0))

	hash, err := f.svc.BumpHash(ctx, f.group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hash)
}

func TestHashesAreIndependentPerGroup(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	other := testhelpers.CreateTestUser(t, f.db, "bob")
	otherGroup := testhelpers.CreateTestGroup(t, f.db, other.ID)

	_, err := f.svc.BumpHash(ctx, f.group.ID)
	require.NoError(t, err)
	_, err = f.svc.BumpHash(ctx, f.group.ID)
	require.NoError(t, err)

	hash, err := f.svc.ReadHash(ctx, otherGroup.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hash)
}

func TestAddItemBumpsHash(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	product := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Milk", "")
	_, err := f.svc.AddItem(ctx, f.group.ID, product.ID, f.user.ID, "1l")
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.listCount(t))
	hash, err := f.svc.ReadHash(ctx, f.group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hash)
}

func TestPromoteRecipeCopiesLines(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	flour := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Flour", "Flour")
	egg := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Egg", "Eggs")
	recipe := testhelpers.CreateTestRecipe(t, f.db, f.group.ID, "Pancakes")
	testhelpers.CreateTestIngredient(t, f.db, flour.ID, &recipe.ID, "2 cups", false)
	testhelpers.CreateTestIngredient(t, f.db, egg.ID, &recipe.ID, "1", false)

	require.NoError(t, f.svc.PromoteRecipe(ctx, f.group.ID, recipe.ID, f.user.ID))

	items, err := f.svc.ListItems(ctx, f.group.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.True(t, item.OnShoppingList)
		require.NotNil(t, item.RecipeID)
		assert.Equal(t, recipe.ID, *item.RecipeID)
	}

	// The recipe's own rows are untouched.
	var recipeRows int64
	require.NoError(t, f.db.Model(&models.Ingredient{}).
		Where("recipe_id = ? AND on_shopping_list = ?", recipe.ID, false).
		Count(&recipeRows).Error)
	assert.Equal(t, int64(2), recipeRows)
}

func TestPromoteRecipeTwiceSkipsPromotedRows(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	flour := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Flour", "Flour")
	recipe := testhelpers.CreateTestRecipe(t, f.db, f.group.ID, "Pancakes")
	testhelpers.CreateTestIngredient(t, f.db, flour.ID, &recipe.ID, "2 cups", false)

	require.NoError(t, f.svc.PromoteRecipe(ctx, f.group.ID, recipe.ID, f.user.ID))
	require.NoError(t, f.svc.PromoteRecipe(ctx, f.group.ID, recipe.ID, f.user.ID))

	assert.Equal(t, int64(2), f.listCount(t))
}

func TestPromoteChecklistDetachesCopies(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	milk := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Milk", "")
	checklist := testhelpers.CreateTestRecipe(t, f.db, f.group.ID, models.ChecklistName)
	testhelpers.CreateTestIngredient(t, f.db, milk.ID, &checklist.ID, "1l", false)

	require.NoError(t, f.svc.PromoteChecklist(ctx, f.group.ID, f.user.ID))

	items, err := f.svc.ListItems(ctx, f.group.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].RecipeID)
}

func TestAggregatedMergesAmountsPerProduct(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	flour := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Flour", "Flour")
	egg := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Egg", "Eggs")
	testhelpers.CreateTestIngredient(t, f.db, flour.ID, nil, "2 cups", true)
	testhelpers.CreateTestIngredient(t, f.db, flour.ID, nil, "1 cups", true)
	testhelpers.CreateTestIngredient(t, f.db, egg.ID, nil, "1", true)

	aggregated, err := f.svc.Aggregated(ctx, f.group.ID)
	require.NoError(t, err)
	require.Len(t, aggregated, 2)

	byName := make(map[string]string)
	for _, entry := range aggregated {
		byName[entry.Product.Name] = entry.Display
	}
	assert.Equal(t, "3 cups Flour", byName["Flour"])
	assert.Equal(t, "1 Egg", byName["Egg"])
}

func TestRefillDuplicatesChecklistEveryTime(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	milk := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Milk", "")
	checklist := testhelpers.CreateTestRecipe(t, f.db, f.group.ID, models.ChecklistName)
	testhelpers.CreateTestIngredient(t, f.db, milk.ID, &checklist.ID, "1l", false)

	require.NoError(t, f.svc.Refill(ctx, f.group.ID))
	assert.Equal(t, int64(1), f.listCount(t))

	require.NoError(t, f.svc.Refill(ctx, f.group.ID))
	assert.Equal(t, int64(2), f.listCount(t))
}

func TestRefillWithoutChecklistIsNoOp(t *testing.T) {
	f := setupShoppingTest(t)
	assert.NoError(t, f.svc.Refill(context.Background(), f.group.ID))
	assert.Zero(t, f.listCount(t))
}

func TestRemoveItemClearsAllLinesForProduct(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	milk := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Milk", "")
	bread := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Bread", "")
	first := testhelpers.CreateTestIngredient(t, f.db, milk.ID, nil, "1l", true)
	testhelpers.CreateTestIngredient(t, f.db, milk.ID, nil, "2l", true)
	testhelpers.CreateTestIngredient(t, f.db, bread.ID, nil, "1", true)

	require.NoError(t, f.svc.RemoveItem(ctx, f.group.ID, first.ID))

	items, err := f.svc.ListItems(ctx, f.group.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, bread.ID, items[0].ProductID)
}

func TestRemoveItemLeavesRecipeRowsAlone(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	milk := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Milk", "")
	recipe := testhelpers.CreateTestRecipe(t, f.db, f.group.ID, "Porridge")
	testhelpers.CreateTestIngredient(t, f.db, milk.ID, &recipe.ID, "1l", false)
	listRow := testhelpers.CreateTestIngredient(t, f.db, milk.ID, nil, "1l", true)

	require.NoError(t, f.svc.RemoveItem(ctx, f.group.ID, listRow.ID))

	var recipeRows int64
	require.NoError(t, f.db.Model(&models.Ingredient{}).
		Where("recipe_id = ?", recipe.ID).Count(&recipeRows).Error)
	assert.Equal(t, int64(1), recipeRows)
}

func TestRemoveUnknownItemIsNoOp(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	milk := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Milk", "")
	row := testhelpers.CreateTestIngredient(t, f.db, milk.ID, nil, "1l", true)

	require.NoError(t, f.svc.RemoveItem(ctx, f.group.ID, row.ID))
	assert.NoError(t, f.svc.RemoveItem(ctx, f.group.ID, row.ID))
}

func TestRemoveByNameIsCaseInsensitive(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	milk := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Milk", "")
	testhelpers.CreateTestIngredient(t, f.db, milk.ID, nil, "1l", true)

	require.NoError(t, f.svc.RemoveByName(ctx, f.group.ID, "MILK", service.ListScope))
	assert.Zero(t, f.listCount(t))
}

func TestRemoveFromRecipeScopesToOneRecipe(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	milk := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Milk", "")
	porridge := testhelpers.CreateTestRecipe(t, f.db, f.group.ID, "Porridge")
	pancakes := testhelpers.CreateTestRecipe(t, f.db, f.group.ID, "Pancakes")
	target := testhelpers.CreateTestIngredient(t, f.db, milk.ID, &porridge.ID, "1l", false)
	testhelpers.CreateTestIngredient(t, f.db, milk.ID, &pancakes.ID, "300ml", false)

	require.NoError(t, f.svc.RemoveFromRecipe(ctx, f.group.ID, &porridge.ID, target.ID))

	var remaining []models.Ingredient
	require.NoError(t, f.db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, pancakes.ID, *remaining[0].RecipeID)
}

func TestRemoveFromRecipeNilScopeSpansGroup(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	milk := testhelpers.CreateTestProduct(t, f.db, f.group.ID, "Milk", "")
	porridge := testhelpers.CreateTestRecipe(t, f.db, f.group.ID, "Porridge")
	pancakes := testhelpers.CreateTestRecipe(t, f.db, f.group.ID, "Pancakes")
	target := testhelpers.CreateTestIngredient(t, f.db, milk.ID, &porridge.ID, "1l", false)
	testhelpers.CreateTestIngredient(t, f.db, milk.ID, &pancakes.ID, "300ml", false)

	require.NoError(t, f.svc.RemoveFromRecipe(ctx, f.group.ID, nil, target.ID))

	var count int64
	require.NoError(t, f.db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListItemsScopedToGroup(t *testing.T) {
	f := setupShoppingTest(t)
	ctx := context.Background()

	other := testhelpers.CreateTestUser(t, f.db, "bob")
	otherGroup := testhelpers.CreateTestGroup(t, f.db, other.ID)
	foreign := testhelpers.CreateTestProduct(t, f.db, otherGroup.ID, "Milk", "")
	testhelpers.CreateTestIngredient(t, f.db, foreign.ID, nil, "1l", true)

	items, err := f.svc.ListItems(ctx, f.group.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
