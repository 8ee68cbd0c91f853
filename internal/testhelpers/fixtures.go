package testhelpers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryloop/backend/internal/models"
)

// CreateTestUser inserts a user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

// CreateTestGroup inserts a group and makes the given user a member.
func CreateTestGroup(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.Group {
	t.Helper()

	group := models.Group{Name: fmt.Sprintf("shopping_group_%s", uuid.NewString())}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}
	membership := models.GroupMembership{UserID: userID, GroupID: group.ID}
	if err := db.Create(&membership).Error; err != nil {
		t.Fatalf("failed to create test membership: %v", err)
	}
	return &group
}

// CreateTestCategory inserts a category into the group.
func CreateTestCategory(t *testing.T, db *gorm.DB, groupID uuid.UUID, name string) *models.Category {
	t.Helper()

	category := models.Category{Name: name, GroupID: groupID}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return &category
}

// CreateTestProduct inserts a product into the group. The plural form
// defaults to the name.
func CreateTestProduct(t *testing.T, db *gorm.DB, groupID uuid.UUID, name, plural string) *models.Product {
	t.Helper()

	if plural == "" {
		plural = name
	}
	product := models.Product{Name: name, PluralisedName: plural, GroupID: groupID}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return &product
}

// CreateTestRecipe inserts a recipe into the group.
func CreateTestRecipe(t *testing.T, db *gorm.DB, groupID uuid.UUID, name string) *models.Recipe {
	t.Helper()

	recipe := models.Recipe{Name: name, GroupID: groupID}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return &recipe
}

// CreateTestIngredient inserts an ingredient row.
func CreateTestIngredient(t *testing.T, db *gorm.DB, productID uuid.UUID, recipeID *uuid.UUID, amount string, onList bool) *models.Ingredient {
	t.Helper()

	ingredient := models.Ingredient{
		ProductID:      productID,
		RecipeID:       recipeID,
		Amount:         amount,
		OnShoppingList: onList,
	}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("failed to create test ingredient: %v", err)
	}
	return &ingredient
}
