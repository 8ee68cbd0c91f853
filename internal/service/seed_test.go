package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryloop/backend/internal/logger"
	"github.com/pantryloop/backend/internal/models"
	"github.com/pantryloop/backend/internal/service"
	"github.com/pantryloop/backend/internal/testhelpers"
)

func TestSeedFillsGroupCatalog(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "alice")
	group := testhelpers.CreateTestGroup(t, db, user.ID)
	svc := service.NewSeedService(db, logger.NewNop())

	tpl := &service.TemplateGroup{
		Categories: []string{"Dairy", "Pantry"},
		Products: []service.TemplateProduct{
			{Name: "Milk", Category: "Dairy"},
			{Name: "Flour", Category: "Pantry"},
			{Name: "Egg", PluralisedName: "Eggs", Category: "Dairy"},
		},
		Recipes: []service.TemplateRecipe{
			{
				Name: "Pancakes",
				Ingredients: []service.TemplateIngredient{
					{Name: "Flour", Amount: "250g"},
					{Name: "Egg", Amount: "2"},
				},
			},
		},
		Checklist: []service.TemplateIngredient{{Name: "Milk", Amount: "1l"}},
		Shopping:  []service.TemplateIngredient{{Name: "Egg", Amount: "6"}},
	}

	require.NoError(t, svc.Seed(context.Background(), group.ID, tpl))

	var categories, products, recipes int64
	require.NoError(t, db.Model(&models.Category{}).Where("group_id = ?", group.ID).Count(&categories).Error)
	require.NoError(t, db.Model(&models.Product{}).Where("group_id = ?", group.ID).Count(&products).Error)
	require.NoError(t, db.Model(&models.Recipe{}).Where("group_id = ?", group.ID).Count(&recipes).Error)
	assert.Equal(t, int64(2), categories)
	assert.Equal(t, int64(3), products)
	// Pancakes plus the lazily created checklist.
	assert.Equal(t, int64(2), recipes)

	var onList int64
	require.NoError(t, db.Model(&models.Ingredient{}).
		Where("on_shopping_list = ?", true).Count(&onList).Error)
	assert.Equal(t, int64(1), onList)

	var egg models.Product
	require.NoError(t, db.First(&egg, "name = ?", "Egg").Error)
	assert.Equal(t, "Eggs", egg.PluralisedName)
	var milk models.Product
	require.NoError(t, db.First(&milk, "name = ?", "Milk").Error)
	assert.Equal(t, "Milk", milk.PluralisedName)
}

func TestSeedSkipsUnknownReferences(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "alice")
	group := testhelpers.CreateTestGroup(t, db, user.ID)
	svc := service.NewSeedService(db, logger.NewNop())

	tpl := &service.TemplateGroup{
		Products: []service.TemplateProduct{
			{Name: "Milk", Category: "No Such Category"},
		},
		Shopping: []service.TemplateIngredient{{Name: "No Such Product", Amount: "1"}},
	}

	require.NoError(t, svc.Seed(context.Background(), group.ID, tpl))

	var products, ingredients int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&ingredients).Error)
	assert.Zero(t, products)
	assert.Zero(t, ingredients)
}

func TestLoadTemplateMissingFile(t *testing.T) {
	_, err := service.LoadTemplate("does-not-exist.json")
	assert.Error(t, err)
}
