package service

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smartcook/smartcook-backend/internal/model"
)

// IngredientService manages the user's pantry.
type IngredientService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewIngredientService creates an IngredientService instance.
func NewIngredientService(db *gorm.DB, logger *zap.Logger) *IngredientService {
	return &IngredientService{db: db, logger: logger}
}

// IngredientUpdate carries a partial update; nil fields are left untouched.
type IngredientUpdate struct {
	Name            *string `json:"name"`
	Quantity        *string `json:"quantity"`
	State           *string `json:"state"`
	Category        *string `json:"category"`
	StorageLocation *string `json:"storage_location"`
	IsCommon        *bool   `json:"is_common"`
}

// List returns all ingredients, newest first.
func (s *IngredientService) List() ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if err := s.db.Order("created_at DESC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// ListByCategory returns the ingredients of one category.
func (s *IngredientService) ListByCategory(category string) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if err := s.db.Where("category = ?", category).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// ListByStorage returns the ingredients at one storage location.
func (s *IngredientService) ListByStorage(storage string) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if err := s.db.Where("storage_location = ?", storage).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// ListCommon returns the ingredients flagged as common.
func (s *IngredientService) ListCommon() ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if err := s.db.Where("is_common = ?", true).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Create adds a new ingredient.
func (s *IngredientService) Create(ingredient *model.Ingredient) error {
	if err := s.db.Create(ingredient).Error; err != nil {
		s.logger.Error("failed to create ingredient", zap.String("name", ingredient.Name), zap.Error(err))
		return err
	}
	s.logger.Info("ingredient created", zap.Uint("id", ingredient.ID), zap.String("name", ingredient.Name))
	return nil
}

// Update merges the supplied fields into an existing ingredient. Returns
// gorm.ErrRecordNotFound when the id does not exist.
func (s *IngredientService) Update(id uint, update IngredientUpdate) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		return nil, err
	}

	if update.Name != nil {
		ingredient.Name = *update.Name
	}
	if update.Quantity != nil {
		ingredient.Quantity = *update.Quantity
	}
	if update.State != nil {
		ingredient.State = *update.State
	}
	if update.Category != nil {
		ingredient.Category = *update.Category
	}
	if update.StorageLocation != nil {
		ingredient.StorageLocation = *update.StorageLocation
	}
	if update.IsCommon != nil {
		ingredient.IsCommon = *update.IsCommon
	}

	if err := s.db.Save(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Delete removes an ingredient by id.
func (s *IngredientService) Delete(id uint) error {
	var ingredient model.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		return err
	}
	return s.db.Delete(&ingredient).Error
}

// MarkAsCommon flags an ingredient as common. Applying it twice leaves the
// same end state as applying it once.
func (s *IngredientService) MarkAsCommon(id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	ingredient.IsCommon = true
	if err := s.db.Save(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}
