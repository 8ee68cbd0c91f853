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

// ProductService manages the per-group product catalog.
type ProductService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewProductService(db *gorm.DB, log *zap.SugaredLogger) *ProductService {
	return &ProductService{db: db, log: log}
}

// Create adds a product to the group's catalog. The name must not already
// exist in the group; the pluralised name falls back to the name itself. A
// category, when given, must belong to the same group.
func (s *ProductService) Create(ctx context.Context, groupID uuid.UUID, name, pluralisedName string, categoryID *uuid.UUID) (*models.Product, error) {
	var existing models.Product
	err := s.db.WithContext(ctx).
		Where("group_id = ? AND LOWER(name) = LOWER(?)", groupID, name).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if categoryID != nil {
		var category models.Category
		if err := s.db.WithContext(ctx).
			Where("id = ? AND group_id = ?", *categoryID, groupID).
			First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	if pluralisedName == "" {
		pluralisedName = name
	}

	product := models.Product{
		Name:           name,
		PluralisedName: pluralisedName,
		CategoryID:     categoryID,
		GroupID:        groupID,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns the group's products ordered by category name, then name.
func (s *ProductService) List(ctx context.Context, groupID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("products.group_id = ?", groupID).
		Order("LOWER(categories.name), LOWER(products.name)").
		Find(&products).Error
	return products, err
}

// ResolveByName matches a user-typed (or slugged) product name against the
// group's catalog. The second return reports whether the match is good; a
// poor match still returns the closest product as a "did you mean"
// suggestion. ErrNotFound is returned when the group has no products at all.
func (s *ProductService) ResolveByName(ctx context.Context, groupID uuid.UUID, name string) (*models.Product, bool, error) {
	name = strings.ReplaceAll(name, "-", " ")

	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("group_id = ?", groupID).
		Order("LOWER(name)").
		Find(&products).Error
	if err != nil {
		return nil, false, err
	}
	if len(products) == 0 {
		return nil, false, ErrNotFound
	}

	refs := make([]*models.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	best, exact := match.Resolve(name, refs)
	return best, exact, nil
}

// Update edits a product's name, plural name, and category.
func (s *ProductService) Update(ctx context.Context, groupID, id uuid.UUID, name, pluralisedName string, categoryID *uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).
		Where("id = ? AND group_id = ?", id, groupID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if pluralisedName == "" {
		pluralisedName = name
	}
	product.Name = name
	product.PluralisedName = pluralisedName
	product.CategoryID = categoryID
	if err := s.db.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product and every ingredient line that referred to it.
// Deleting an already-deleted product is a no-op.
func (s *ProductService) Delete(ctx context.Context, groupID, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		err := tx.Where("id = ? AND group_id = ?", id, groupID).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Where("product_id = ?", product.ID).
			Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}

// Recipes lists the recipes a product appears in.
func (s *ProductService) Recipes(ctx context.Context, groupID, productID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN ingredients ON ingredients.recipe_id = recipes.id").
		Where("recipes.group_id = ? AND ingredients.product_id = ? AND ingredients.on_shopping_list = ?",
			groupID, productID, false).
		Distinct().
		Find(&recipes).Error
	return recipes, err
}
