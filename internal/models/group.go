package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is the household-level tenant. Every catalog record belongs to
// exactly one group and is only visible to that group's members.
type Group struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"not null" json:"name"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GroupMembership links a user to their shopping group. The unique index on
// UserID keeps each user in at most one group.
type GroupMembership struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	GroupID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"group_id"`
}

func (m *GroupMembership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
