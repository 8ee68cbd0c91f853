package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantryloop/backend/internal/models"
)

// CategoryService manages the per-group product categories.
type CategoryService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewCategoryService(db *gorm.DB, log *zap.SugaredLogger) *CategoryService {
	return &CategoryService{db: db, log: log}
}

// Create adds a category to the group. Names must be new to the group
// (case-insensitively); the sorting weight slots the category after every
// existing one.
func (s *CategoryService) Create(ctx context.Context, groupID uuid.UUID, name string) (*models.Category, error) {
	var existing models.Category
	err := s.db.WithContext(ctx).
		Where("group_id = ? AND LOWER(name) = LOWER(?)", groupID, name).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := models.Category{Name: name, GroupID: groupID}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var heaviest models.Category
		err := tx.Where("group_id = ?", groupID).
			Order("sorting_weight DESC").
			First(&heaviest).Error
		switch {
		case err == nil:
			category.SortingWeight = heaviest.SortingWeight + 1
		case errors.Is(err, gorm.ErrRecordNotFound):
			category.SortingWeight = 0
		default:
			return err
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns the group's categories in display order.
func (s *CategoryService) List(ctx context.Context, groupID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("sorting_weight, LOWER(name)").
		Find(&categories).Error
	return categories, err
}

// Update renames a category or changes its sorting weight.
func (s *CategoryService) Update(ctx context.Context, groupID, id uuid.UUID, name string, sortingWeight int) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).
		Where("id = ? AND group_id = ?", id, groupID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	category.Name = name
	category.SortingWeight = sortingWeight
	if err := s.db.WithContext(ctx).Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category. Products keep existing with no category; the
// link is weak.
func (s *CategoryService) Delete(ctx context.Context, groupID, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("group_id = ? AND category_id = ?", groupID, id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND group_id = ?", id, groupID).
			Delete(&models.Category{}).Error
	})
}
