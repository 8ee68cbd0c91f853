package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a product with a free-text amount. A row either belongs to a
// recipe (RecipeID set, OnShoppingList false) or sits on the shared shopping
// list (OnShoppingList true). Promotion copies rows from one context to the
// other; the originals are never mutated.
type Ingredient struct {
	ID             uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ProductID      uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"product_id"`
	Product        *Product   `json:"product,omitempty"`
	RecipeID       *uuid.UUID `gorm:"type:varchar(36);index" json:"recipe_id"`
	AddedByID      *uuid.UUID `gorm:"type:varchar(36)" json:"added_by_id"`
	AddedTime      time.Time  `gorm:"autoCreateTime" json:"added_time"`
	OnShoppingList bool       `gorm:"default:false;index" json:"on_shopping_list"`
	Amount         string     `gorm:"size:40" json:"amount"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
