package model

import "time"

// Ingredient is one item from the user's pantry.
type Ingredient struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Quantity        string    `gorm:"size:50" json:"quantity"`
	State           string    `gorm:"size:20" json:"state"`
	Category        string    `gorm:"size:50" json:"category"`
	StorageLocation string    `gorm:"size:20" json:"storage_location"`
	IsCommon        bool      `gorm:"default:false" json:"is_common"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
