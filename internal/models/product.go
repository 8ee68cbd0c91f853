package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is something that can be found in a shop. The category link is
// weak: deleting a category leaves the product behind with no category.
type Product struct {
	ID             uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Name           string     `gorm:"size:80;not null" json:"name"`
	PluralisedName string     `gorm:"size:80" json:"pluralised_name"`
	CategoryID     *uuid.UUID `gorm:"type:varchar(36);index" json:"category_id"`
	Category       *Category  `json:"category,omitempty"`
	GroupID        uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"group_id"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Product) EntityName() string {
	return p.Name
}

// Slug returns the URL form of the product name.
func (p *Product) Slug() string {
	return strings.ToLower(strings.ReplaceAll(p.Name, " ", "-"))
}
