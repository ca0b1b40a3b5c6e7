package model

import "time"

// ShoppingListItem is one entry of the shopping list. RecipeID records which
// recipe the item was generated from, if any; the item is not deleted when
// that recipe is.
type ShoppingListItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	IngredientName string    `gorm:"size:100;not null" json:"ingredient_name"`
	Quantity       string    `gorm:"size:50" json:"quantity"`
	Category       string    `gorm:"size:50" json:"category"`
	IsPurchased    bool      `gorm:"default:false" json:"is_purchased"`
	RecipeID       *uint     `json:"recipe_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func (ShoppingListItem) TableName() string {
	return "shopping_list"
}
