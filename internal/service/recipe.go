package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantryloop/backend/internal/match"
	"github.com/pantryloop/backend/internal/models"
)

// RecipeService manages recipes and their ingredient lines.
type RecipeService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewRecipeService(db *gorm.DB, log *zap.SugaredLogger) *RecipeService {
	return &RecipeService{db: db, log: log}
}

// Create adds a recipe to the group. Recipe names must be new to the group,
// case-insensitively.
func (s *RecipeService) Create(ctx context.Context, groupID, userID uuid.UUID, name, source string) (*models.Recipe, error) {
	var existing models.Recipe
	err := s.db.WithContext(ctx).
		Where("group_id = ? AND LOWER(name) = LOWER(?)", groupID, name).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	recipe := models.Recipe{
		Name:      name,
		Source:    source,
		GroupID:   groupID,
		AddedByID: &userID,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns the group's recipes, hiding the reserved checklist.
func (s *RecipeService) List(ctx context.Context, groupID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("group_id = ? AND LOWER(name) <> LOWER(?)", groupID, models.ChecklistName).
		Order("LOWER(name)").
		Find(&recipes).Error
	return recipes, err
}

// ListByUser returns the recipes a user has added, across the group.
func (s *RecipeService) ListByUser(ctx context.Context, groupID, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("group_id = ? AND added_by_id = ?", groupID, userID).
		Order("LOWER(name)").
		Find(&recipes).Error
	return recipes, err
}

// Checklist returns the group's reserved auto-shopping recipe, creating it
// on first access.
func (s *RecipeService) Checklist(ctx context.Context, groupID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("group_id = ? AND name = ?", groupID, models.ChecklistName).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		recipe = models.Recipe{Name: models.ChecklistName, GroupID: groupID}
		if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
			return nil, err
		}
		return &recipe, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ResolveByName matches a user-typed (or slugged) recipe name against the
// group. The reserved name "auto" always resolves to the checklist, creating
// it if needed. For other names a poor match still returns the closest
// recipe as a suggestion, with the bool reporting match quality. ErrNotFound
// is returned when the group has no recipes.
func (s *RecipeService) ResolveByName(ctx context.Context, groupID uuid.UUID, name string) (*models.Recipe, bool, error) {
	if strings.EqualFold(name, models.ChecklistName) {
		recipe, err := s.Checklist(ctx, groupID)
		return recipe, err == nil, err
	}

	name = strings.ReplaceAll(name, "-", " ")

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("LOWER(name)").
		Find(&recipes).Error
	if err != nil {
		return nil, false, err
	}
	if len(recipes) == 0 {
		return nil, false, ErrNotFound
	}

	refs := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		refs[i] = &recipes[i]
	}
	best, exact := match.Resolve(name, refs)
	return best, exact, nil
}

// Items returns a recipe's ingredient lines, recipe rows or promoted list
// rows depending on onShoppingList, ordered by category then product name.
func (s *RecipeService) Items(ctx context.Context, groupID, recipeID uuid.UUID, onShoppingList bool) ([]models.Ingredient, error) {
	var items []models.Ingredient
	err := s.db.WithContext(ctx).
		Preload("Product.Category").
		Joins("JOIN products ON products.id = ingredients.product_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("products.group_id = ? AND ingredients.recipe_id = ? AND ingredients.on_shopping_list = ?",
			groupID, recipeID, onShoppingList).
		Order("LOWER(categories.name), LOWER(products.name)").
		Find(&items).Error
	return items, err
}

// AddIngredient appends a product line to a recipe.
func (s *RecipeService) AddIngredient(ctx context.Context, groupID, recipeID, productID uuid.UUID, userID uuid.UUID, amount string) (*models.Ingredient, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).
		Where("id = ? AND group_id = ?", recipeID, groupID).
		First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var product models.Product
	if err := s.db.WithContext(ctx).
		Where("id = ? AND group_id = ?", productID, groupID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ingredient := models.Ingredient{
		ProductID: product.ID,
		RecipeID:  &recipe.ID,
		AddedByID: &userID,
		Amount:    amount,
	}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Delete removes a recipe and its ingredient lines. The reserved checklist
// is refused; deleting a missing recipe is a no-op.
func (s *RecipeService) Delete(ctx context.Context, groupID, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		err := tx.Where("id = ? AND group_id = ?", id, groupID).First(&recipe).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warnw("delete requested for unknown recipe", "recipe_id", id)
			return nil
		}
		if err != nil {
			return err
		}
		if recipe.IsChecklist() {
			return ErrReservedRecipe
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}
