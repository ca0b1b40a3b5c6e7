package model

import "time"

// FavoriteGroup is a user-defined collection of favorites.
type FavoriteGroup struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	Favorites   []Favorite `gorm:"foreignKey:GroupID" json:"-"`
}

func (FavoriteGroup) TableName() string {
	return "favorite_groups"
}

// Favorite links a recipe to an optional group with a free-text note.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RecipeID  uint      `gorm:"not null;index" json:"recipe_id"`
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
