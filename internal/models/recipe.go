package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChecklistName is the reserved recipe name used as the staging list for
// auto-shopping. One such recipe exists per group, created lazily, and is
// never removed by normal recipe deletion.
const ChecklistName = "Auto"

// Recipe is a named collection of ingredients.
type Recipe struct {
	ID        uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Name      string     `gorm:"size:80;not null" json:"name"`
	AddedByID *uuid.UUID `gorm:"type:varchar(36)" json:"added_by_id"`
	Source    string     `gorm:"size:200" json:"source"`
	GroupID   uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"group_id"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Recipe) EntityName() string {
	return r.Name
}

// IsChecklist reports whether this is the group's reserved auto-shopping recipe.
func (r *Recipe) IsChecklist() bool {
	return strings.EqualFold(r.Name, ChecklistName)
}

func (r *Recipe) Slug() string {
	return strings.ToLower(strings.ReplaceAll(r.Name, " ", "-"))
}
