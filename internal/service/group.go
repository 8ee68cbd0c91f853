package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantryloop/backend/internal/cache"
	"github.com/pantryloop/backend/internal/models"
)

// joinTokenTTL bounds how long a generated join code stays valid.
const joinTokenTTL = 24 * time.Hour

// GroupService resolves the acting user's tenant and manages the group
// lifecycle: creation, membership, join codes, and teardown.
type GroupService struct {
	db    *gorm.DB
	store cache.Store
	log   *zap.SugaredLogger
}

func NewGroupService(db *gorm.DB, store cache.Store, log *zap.SugaredLogger) *GroupService {
	return &GroupService{db: db, store: store, log: log}
}

// ResolveTenant returns the user's shopping group, or nil when the user has
// not joined one. Absence is a precondition for group creation, not an error.
func (s *GroupService) ResolveTenant(ctx context.Context, userID uuid.UUID) (*models.Group, error) {
	var membership models.GroupMembership
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var group models.Group
	if err := s.db.WithContext(ctx).First(&group, "id = ?", membership.GroupID).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// Create makes a new group for the user and enrolls them. When the user
// already belongs to a group, that group is returned unchanged.
func (s *GroupService) Create(ctx context.Context, userID uuid.UUID) (*models.Group, error) {
	if existing, err := s.ResolveTenant(ctx, userID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	group := models.Group{ID: uuid.New()}
	group.Name = fmt.Sprintf("shopping_group_%s", group.ID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		return tx.Create(&models.GroupMembership{UserID: userID, GroupID: group.ID}).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("group created", "group_id", group.ID)
	return &group, nil
}

// Members returns every user enrolled in the group.
func (s *GroupService) Members(ctx context.Context, groupID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN group_memberships ON group_memberships.user_id = users.id").
		Where("group_memberships.group_id = ?", groupID).
		Find(&users).Error
	return users, err
}

// Leave removes the user from their group. When the last member leaves, the
// group and its entire catalog are deleted.
func (s *GroupService) Leave(ctx context.Context, userID uuid.UUID) error {
	group, err := s.ResolveTenant(ctx, userID)
	if err != nil {
		return err
	}
	if group == nil {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND group_id = ?", userID, group.ID).
			Delete(&models.GroupMembership{}).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.GroupMembership{}).
			Where("group_id = ?", group.ID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		s.log.Infow("last member left, deleting group", "group_id", group.ID)
		return deleteGroupCatalog(tx, group.ID)
	})
}

// deleteGroupCatalog removes a group and everything it owns.
func deleteGroupCatalog(tx *gorm.DB, groupID uuid.UUID) error {
	if err := tx.Where("product_id IN (?)",
		tx.Model(&models.Product{}).Select("id").Where("group_id = ?", groupID),
	).Delete(&models.Ingredient{}).Error; err != nil {
		return err
	}
	for _, model := range []interface{}{
		&models.Recipe{}, &models.Product{}, &models.Category{},
	} {
		if err := tx.Where("group_id = ?", groupID).Delete(model).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&models.Group{}, "id = ?", groupID).Error
}

// JoinToken generates a short-lived code another user can present to join
// the group. The token doubles as the cache key; its value is the group id.
func (s *GroupService) JoinToken(ctx context.Context, groupID uuid.UUID) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := fmt.Sprintf("%s-%s", groupID, hex.EncodeToString(buf))
	if err := s.store.Set(ctx, token, groupID.String(), joinTokenTTL); err != nil {
		return "", err
	}
	return token, nil
}

// Join enrolls the user in the group a join token refers to. Users already
// in a group, and stale tokens, leave membership unchanged.
func (s *GroupService) Join(ctx context.Context, userID uuid.UUID, token string) (*models.Group, error) {
	if existing, err := s.ResolveTenant(ctx, userID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	val, err := s.store.Get(ctx, token)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	groupID, err := uuid.Parse(val)
	if err != nil {
		return nil, err
	}

	var group models.Group
	if err := s.db.WithContext(ctx).First(&group, "id = ?", groupID).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Create(&models.GroupMembership{UserID: userID, GroupID: group.ID}).Error; err != nil {
		return nil, err
	}
	return &group, nil
}
