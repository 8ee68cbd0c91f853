package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantryloop/backend/internal/models"
)

// TemplateIngredient is an ingredient entry in a template file, referring to
// a product by name.
type TemplateIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// TemplateProduct is a product entry in a template file.
type TemplateProduct struct {
	Name           string `json:"name"`
	PluralisedName string `json:"pluralised_name"`
	Category       string `json:"category"`
}

// TemplateRecipe is a recipe entry in a template file.
type TemplateRecipe struct {
	Name        string               `json:"name"`
	Source      string               `json:"source"`
	Ingredients []TemplateIngredient `json:"ingredients"`
}

// TemplateGroup is the on-disk format for seeding a fresh group with
// example data: categories first, then products, recipes, the checklist,
// and direct shopping list entries.
type TemplateGroup struct {
	Categories []string             `json:"categories"`
	Products   []TemplateProduct    `json:"products"`
	Recipes    []TemplateRecipe     `json:"recipes"`
	Checklist  []TemplateIngredient `json:"checklist"`
	Shopping   []TemplateIngredient `json:"shopping"`
}

// LoadTemplate reads and parses a template group file.
func LoadTemplate(path string) (*TemplateGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	var tpl TemplateGroup
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("failed to parse template file: %w", err)
	}
	return &tpl, nil
}

// SeedService fills a group's catalog from a template.
type SeedService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewSeedService(db *gorm.DB, log *zap.SugaredLogger) *SeedService {
	return &SeedService{db: db, log: log}
}

// Seed creates the template's categories, products, recipes, checklist, and
// shopping list entries inside the group. Entries referring to unknown
// categories or products are logged and skipped rather than failing the
// whole seed.
func (s *SeedService) Seed(ctx context.Context, groupID uuid.UUID, tpl *TemplateGroup) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := make(map[string]uuid.UUID)
		for _, name := range tpl.Categories {
			category := models.Category{Name: name, GroupID: groupID, SortingWeight: len(categories)}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			categories[name] = category.ID
		}

		products := make(map[string]uuid.UUID)
		for _, p := range tpl.Products {
			plural := p.PluralisedName
			if plural == "" {
				plural = p.Name
			}
			product := models.Product{
				Name:           p.Name,
				PluralisedName: plural,
				GroupID:        groupID,
			}
			if p.Category != "" {
				categoryID, ok := categories[p.Category]
				if !ok {
					s.log.Warnw("template product refers to unknown category",
						"product", p.Name, "category", p.Category)
					continue
				}
				product.CategoryID = &categoryID
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			products[p.Name] = product.ID
		}

		addIngredient := func(entry TemplateIngredient, recipeID *uuid.UUID, onList bool) error {
			productID, ok := products[entry.Name]
			if !ok {
				s.log.Warnw("template ingredient refers to unknown product", "product", entry.Name)
				return nil
			}
			return tx.Create(&models.Ingredient{
				ProductID:      productID,
				RecipeID:       recipeID,
				OnShoppingList: onList,
				Amount:         entry.Amount,
			}).Error
		}

		for _, r := range tpl.Recipes {
			recipe := models.Recipe{Name: r.Name, Source: r.Source, GroupID: groupID}
			if err := tx.Create(&recipe).Error; err != nil {
				return err
			}
			for _, entry := range r.Ingredients {
				if err := addIngredient(entry, &recipe.ID, false); err != nil {
					return err
				}
			}
		}

		if len(tpl.Checklist) > 0 {
			checklist, err := checklistForUpdate(tx, groupID)
			if err != nil {
				return err
			}
			for _, entry := range tpl.Checklist {
				if err := addIngredient(entry, &checklist.ID, false); err != nil {
					return err
				}
			}
		}

		for _, entry := range tpl.Shopping {
			if err := addIngredient(entry, nil, true); err != nil {
				return err
			}
		}
		return nil
	})
}

// SeedFromFile loads a template file and seeds the group with it.
func (s *SeedService) SeedFromFile(ctx context.Context, groupID uuid.UUID, path string) error {
	tpl, err := LoadTemplate(path)
	if err != nil {
		return err
	}
	return s.Seed(ctx, groupID, tpl)
}
