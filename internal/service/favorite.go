package service

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smartcook/smartcook-backend/internal/model"
)

// FavoriteService manages favorites and favorite groups.
type FavoriteService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewFavoriteService creates a FavoriteService instance.
func NewFavoriteService(db *gorm.DB, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{db: db, logger: logger}
}

// GroupUpdate carries a partial group update; nil fields are left untouched.
type GroupUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GroupView is a FavoriteGroup with its favorite count, as returned to
// clients.
type GroupView struct {
	model.FavoriteGroup
	FavoritesCount int `json:"favorites_count"`
}

// List returns all favorites, newest first, with their recipes embedded.
func (s *FavoriteService) List() ([]model.Favorite, error) {
	var favorites []model.Favorite
	if err := s.db.Preload("Recipe").Order("created_at DESC").Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

// ListByGroup returns the favorites of one group.
func (s *FavoriteService) ListByGroup(groupID uint) ([]model.Favorite, error) {
	var favorites []model.Favorite
	if err := s.db.Preload("Recipe").Where("group_id = ?", groupID).Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

// Add creates a favorite link for a recipe.
func (s *FavoriteService) Add(favorite *model.Favorite) error {
	if err := s.db.Create(favorite).Error; err != nil {
		s.logger.Error("failed to add favorite", zap.Uint("recipe_id", favorite.RecipeID), zap.Error(err))
		return err
	}
	// Reload with the recipe embedded for the response.
	return s.db.Preload("Recipe").First(favorite, favorite.ID).Error
}

// Remove deletes a favorite by id.
func (s *FavoriteService) Remove(id uint) error {
	var favorite model.Favorite
	if err := s.db.First(&favorite, id).Error; err != nil {
		return err
	}
	return s.db.Delete(&favorite).Error
}

// ListGroups returns all groups, newest first, with favorite counts.
func (s *FavoriteService) ListGroups() ([]GroupView, error) {
	var groups []model.FavoriteGroup
	if err := s.db.Order("created_at DESC").Find(&groups).Error; err != nil {
		return nil, err
	}

	views := make([]GroupView, 0, len(groups))
	for _, group := range groups {
		var count int64
		if err := s.db.Model(&model.Favorite{}).Where("group_id = ?", group.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		views = append(views, GroupView{FavoriteGroup: group, FavoritesCount: int(count)})
	}
	return views, nil
}

// CreateGroup adds a new favorite group.
func (s *FavoriteService) CreateGroup(group *model.FavoriteGroup) error {
	if err := s.db.Create(group).Error; err != nil {
		s.logger.Error("failed to create group", zap.String("name", group.Name), zap.Error(err))
		return err
	}
	return nil
}

// UpdateGroup merges the supplied fields into an existing group.
func (s *FavoriteService) UpdateGroup(id uint, update GroupUpdate) (*model.FavoriteGroup, error) {
	var group model.FavoriteGroup
	if err := s.db.First(&group, id).Error; err != nil {
		return nil, err
	}

	if update.Name != nil {
		group.Name = *update.Name
	}
	if update.Description != nil {
		group.Description = *update.Description
	}

	if err := s.db.Save(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteGroup removes a group by id. Favorites in the group are kept and
// become ungrouped.
func (s *FavoriteService) DeleteGroup(id uint) error {
	var group model.FavoriteGroup
	if err := s.db.First(&group, id).Error; err != nil {
		return err
	}
	if err := s.db.Model(&model.Favorite{}).Where("group_id = ?", id).Update("group_id", nil).Error; err != nil {
		return err
	}
	return s.db.Delete(&group).Error
}
