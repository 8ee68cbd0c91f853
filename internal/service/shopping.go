package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantryloop/backend/internal/cache"
	"github.com/pantryloop/backend/internal/models"
	"github.com/pantryloop/backend/internal/quantity"
)

const (
	// hashTTL is how long a group's shopping hash survives without a write.
	hashTTL = 24 * time.Hour

	// hashWrapLimit caps the shopping hash; the counter restarts at 1 past
	// this point. It never returns to 0, which clients read as "no hash yet".
	hashWrapLimit = 1_000_000_000
)

// ShoppingService owns the shared shopping list: promoting recipes onto it,
// merging and removing lines, and the change counter polled by clients.
type ShoppingService struct {
	db    *gorm.DB
	store cache.Store
	log   *zap.SugaredLogger
}

func NewShoppingService(db *gorm.DB, store cache.Store, log *zap.SugaredLogger) *ShoppingService {
	return &ShoppingService{db: db, store: store, log: log}
}

// RemoveScope selects which ingredient rows a cascading removal touches.
// OnList true targets shopping list rows; otherwise recipe rows are
// targeted, limited to one recipe when RecipeID is set and spanning the
// whole group when nil.
type RemoveScope struct {
	OnList   bool
	RecipeID *uuid.UUID
}

// ListScope targets the shared shopping list.
var ListScope = RemoveScope{OnList: true}

func hashKey(groupID uuid.UUID) string {
	return fmt.Sprintf("shopping-hash-%s", groupID)
}

// ReadHash returns the group's current change counter, lazily initializing
// an absent or expired counter to 1.
func (s *ShoppingService) ReadHash(ctx context.Context, groupID uuid.UUID) (int64, error) {
	val, err := s.store.Get(ctx, hashKey(groupID))
	if errors.Is(err, cache.ErrNotFound) {
		if err := s.store.Set(ctx, hashKey(groupID), "1", hashTTL); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// BumpHash advances the group's change counter. The value is an opaque
// change token for clients, so the wrap past the limit is harmless.
func (s *ShoppingService) BumpHash(ctx context.Context, groupID uuid.UUID) (int64, error) {
	n, err := s.store.Incr(ctx, hashKey(groupID), hashTTL)
	if err != nil {
		return 0, err
	}
	if n > hashWrapLimit {
		if err := s.store.Set(ctx, hashKey(groupID), "1", hashTTL); err != nil {
			return 0, err
		}
		n = 1
	}
	return n, nil
}

// ListItems returns every line on the group's shopping list, ordered by
// category name then product name.
func (s *ShoppingService) ListItems(ctx context.Context, groupID uuid.UUID) ([]models.Ingredient, error) {
	var items []models.Ingredient
	err := s.db.WithContext(ctx).
		Preload("Product.Category").
		Joins("JOIN products ON products.id = ingredients.product_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("products.group_id = ? AND ingredients.on_shopping_list = ?", groupID, true).
		Order("LOWER(categories.name), LOWER(products.name)").
		Find(&items).Error
	return items, err
}

// AggregatedItem is a consolidated shopping list entry: one product with all
// of its line amounts merged into a display string.
type AggregatedItem struct {
	Product models.Product `json:"product"`
	Display string         `json:"display"`
}

// Aggregated consolidates the shopping list into one entry per product,
// preserving the list's display order.
func (s *ShoppingService) Aggregated(ctx context.Context, groupID uuid.UUID) ([]AggregatedItem, error) {
	items, err := s.ListItems(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var order []uuid.UUID
	grouped := make(map[uuid.UUID][]models.Ingredient)
	for _, item := range items {
		if _, seen := grouped[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		grouped[item.ProductID] = append(grouped[item.ProductID], item)
	}

	result := make([]AggregatedItem, 0, len(order))
	for _, productID := range order {
		lines := grouped[productID]
		product := *lines[0].Product
		amounts := make([]string, len(lines))
		for i, line := range lines {
			amounts[i] = line.Amount
		}
		result = append(result, AggregatedItem{
			Product: product,
			Display: quantity.Aggregate(amounts, product.Name, product.PluralisedName),
		})
	}
	return result, nil
}

// AddItem puts a single product line directly on the shopping list.
func (s *ShoppingService) AddItem(ctx context.Context, groupID, productID, userID uuid.UUID, amount string) (*models.Ingredient, error) {
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
		ProductID:      product.ID,
		AddedByID:      &userID,
		OnShoppingList: true,
		Amount:         amount,
	}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}

	if _, err := s.BumpHash(ctx, groupID); err != nil {
		s.log.Warnw("failed to bump shopping hash", "group_id", groupID, "error", err)
	}
	return &ingredient, nil
}

// PromoteRecipe copies a recipe's ingredient lines onto the shopping list.
// The copies keep a reference back to the recipe; the recipe's own rows are
// untouched, so promotion can be repeated after the list is cleared.
func (s *ShoppingService) PromoteRecipe(ctx context.Context, groupID, recipeID, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("id = ? AND group_id = ?", recipeID, groupID).
			First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return promoteRows(tx, recipe.ID, &recipe.ID, userID)
	})
	if err != nil {
		return err
	}

	if _, err := s.BumpHash(ctx, groupID); err != nil {
		s.log.Warnw("failed to bump shopping hash", "group_id", groupID, "error", err)
	}
	return nil
}

// PromoteChecklist copies the reserved checklist's lines onto the list. The
// copies are detached from the checklist so re-running the promotion does
// not double count rows already on the list.
func (s *ShoppingService) PromoteChecklist(ctx context.Context, groupID, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		checklist, err := checklistForUpdate(tx, groupID)
		if err != nil {
			return err
		}
		return promoteRows(tx, checklist.ID, nil, userID)
	})
	if err != nil {
		return err
	}

	if _, err := s.BumpHash(ctx, groupID); err != nil {
		s.log.Warnw("failed to bump shopping hash", "group_id", groupID, "error", err)
	}
	return nil
}

// Refill duplicates every line still attached to the checklist onto the
// shopping list, leaving the checklist untouched. Running it twice doubles
// the lines; that repetition is the point of a refillable staging list.
func (s *ShoppingService) Refill(ctx context.Context, groupID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var checklist models.Recipe
		err := tx.Where("group_id = ? AND LOWER(name) = LOWER(?)", groupID, models.ChecklistName).
			First(&checklist).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nothing staged yet; nothing to refill.
			return nil
		}
		if err != nil {
			return err
		}

		var staged []models.Ingredient
		if err := tx.Where("recipe_id = ?", checklist.ID).Find(&staged).Error; err != nil {
			return err
		}
		for _, row := range staged {
			dup := models.Ingredient{
				ProductID:      row.ProductID,
				AddedByID:      row.AddedByID,
				OnShoppingList: true,
				Amount:         row.Amount,
			}
			if err := tx.Create(&dup).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if _, err := s.BumpHash(ctx, groupID); err != nil {
		s.log.Warnw("failed to bump shopping hash", "group_id", groupID, "error", err)
	}
	return nil
}

// RemoveByName deletes every ingredient row in scope whose product carries
// the given name, case-insensitively. One checkbox removes all duplicate and
// split entries for a product. Removing a name with no rows left is a no-op;
// the caller's intent is already satisfied.
func (s *ShoppingService) RemoveByName(ctx context.Context, groupID uuid.UUID, productName string, scope RemoveScope) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("on_shopping_list = ?", scope.OnList).
			Where("product_id IN (?)",
				tx.Model(&models.Product{}).Select("id").
					Where("group_id = ? AND LOWER(name) = LOWER(?)", groupID, productName))
		if scope.RecipeID != nil {
			query = query.Where("recipe_id = ?", *scope.RecipeID)
		}
		return query.Delete(&models.Ingredient{}).Error
	})
	if err != nil {
		return err
	}

	if scope.OnList {
		if _, err := s.BumpHash(ctx, groupID); err != nil {
			s.log.Warnw("failed to bump shopping hash", "group_id", groupID, "error", err)
		}
	}
	return nil
}

// RemoveItem resolves a shopping list row to its product and removes every
// list row for that product. A row deleted by someone else concurrently is
// silently ignored.
func (s *ShoppingService) RemoveItem(ctx context.Context, groupID, ingredientID uuid.UUID) error {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).
		Preload("Product").
		Joins("JOIN products ON products.id = ingredients.product_id").
		Where("ingredients.id = ? AND products.group_id = ?", ingredientID, groupID).
		First(&ingredient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.RemoveByName(ctx, groupID, ingredient.Product.Name, ListScope)
}

// RemoveFromRecipe resolves a recipe row to its product and removes every
// row with that product name from the recipe, or from all of the group's
// recipes when recipeID is nil.
func (s *ShoppingService) RemoveFromRecipe(ctx context.Context, groupID uuid.UUID, recipeID *uuid.UUID, ingredientID uuid.UUID) error {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).
		Preload("Product").
		Joins("JOIN products ON products.id = ingredients.product_id").
		Where("ingredients.id = ? AND products.group_id = ?", ingredientID, groupID).
		First(&ingredient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.RemoveByName(ctx, groupID, ingredient.Product.Name, RemoveScope{RecipeID: recipeID})
}

// promoteRows copies a recipe's unpromoted lines into new shopping list
// rows. targetRecipe controls the back-reference on the copies.
func promoteRows(tx *gorm.DB, sourceRecipeID uuid.UUID, targetRecipe *uuid.UUID, userID uuid.UUID) error {
	var rows []models.Ingredient
	if err := tx.Where("recipe_id = ? AND on_shopping_list = ?", sourceRecipeID, false).
		Find(&rows).Error; err != nil {
		return err
	}

	for _, row := range rows {
		dup := models.Ingredient{
			ProductID:      row.ProductID,
			RecipeID:       targetRecipe,
			AddedByID:      &userID,
			OnShoppingList: true,
			Amount:         row.Amount,
		}
		if err := tx.Create(&dup).Error; err != nil {
			return err
		}
	}
	return nil
}

// checklistForUpdate loads (or lazily creates) the group's checklist inside
// a transaction.
func checklistForUpdate(tx *gorm.DB, groupID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := tx.Where("group_id = ? AND LOWER(name) = LOWER(?)", groupID, models.ChecklistName).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		recipe = models.Recipe{Name: models.ChecklistName, GroupID: groupID}
		if err := tx.Create(&recipe).Error; err != nil {
			return nil, err
		}
		return &recipe, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}
