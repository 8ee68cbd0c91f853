package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a type of product, typically related to a shop aisle.
// SortingWeight assigns the manual display order within a group.
type Category struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Name          string    `gorm:"size:80;not null" json:"name"`
	GroupID       uuid.UUID `gorm:"type:varchar(36);not null;index" json:"group_id"`
	SortingWeight int       `gorm:"default:0" json:"sorting_weight"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Category) EntityName() string {
	return c.Name
}
