package service

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smartcook/smartcook-backend/internal/model"
)

// ShoppingListService manages shopping list items.
type ShoppingListService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewShoppingListService creates a ShoppingListService instance.
func NewShoppingListService(db *gorm.DB, logger *zap.Logger) *ShoppingListService {
	return &ShoppingListService{db: db, logger: logger}
}

// ShoppingItemUpdate carries a partial update; nil fields are left
// untouched.
type ShoppingItemUpdate struct {
	IngredientName *string `json:"ingredient_name"`
	Quantity       *string `json:"quantity"`
	Category       *string `json:"category"`
	IsPurchased    *bool   `json:"is_purchased"`
}

// List returns all shopping list items, newest first.
func (s *ShoppingListService) List() ([]model.ShoppingListItem, error) {
	var items []model.ShoppingListItem
	if err := s.db.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Add creates a new shopping list item.
func (s *ShoppingListService) Add(item *model.ShoppingListItem) error {
	if err := s.db.Create(item).Error; err != nil {
		s.logger.Error("failed to add shopping item", zap.String("name", item.IngredientName), zap.Error(err))
		return err
	}
	return nil
}

// Update merges the supplied fields into an existing item.
func (s *ShoppingListService) Update(id uint, update ShoppingItemUpdate) (*model.ShoppingListItem, error) {
	var item model.ShoppingListItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, err
	}

	if update.IngredientName != nil {
		item.IngredientName = *update.IngredientName
	}
	if update.Quantity != nil {
		item.Quantity = *update.Quantity
	}
	if update.Category != nil {
		item.Category = *update.Category
	}
	if update.IsPurchased != nil {
		item.IsPurchased = *update.IsPurchased
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an item by id.
func (s *ShoppingListService) Delete(id uint) error {
	var item model.ShoppingListItem
	if err := s.db.First(&item, id).Error; err != nil {
		return err
	}
	return s.db.Delete(&item).Error
}

// MarkAsPurchased flags an item as purchased. Applying it twice leaves the
// same end state as applying it once.
func (s *ShoppingListService) MarkAsPurchased(id uint) (*model.ShoppingListItem, error) {
	var item model.ShoppingListItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	item.IsPurchased = true
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GenerateFromRecipe adds a shopping item for every needs-supply ingredient
// of the recipe. Returns gorm.ErrRecordNotFound when the recipe does not
// exist.
func (s *ShoppingListService) GenerateFromRecipe(recipeID uint) ([]model.ShoppingListItem, error) {
	var recipe model.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		return nil, err
	}

	added := make([]model.ShoppingListItem, 0)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, ing := range recipe.Ingredients {
			if ing.Status != model.StatusNeeded {
				continue
			}
			item := model.ShoppingListItem{
				IngredientName: ing.Name,
				Quantity:       ing.Quantity,
				RecipeID:       &recipe.ID,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			added = append(added, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shopping list generated from recipe",
		zap.Uint("recipe_id", recipeID),
		zap.Int("items", len(added)),
	)
	return added, nil
}

// ClearPurchased deletes all purchased items and returns how many were
// removed.
func (s *ShoppingListService) ClearPurchased() (int64, error) {
	result := s.db.Where("is_purchased = ?", true).Delete(&model.ShoppingListItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
