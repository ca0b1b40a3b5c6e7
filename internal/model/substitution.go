package model

import "time"

// IngredientSubstitution maps an ingredient name to a possible substitute.
// Substitution is by name string, not by Ingredient identity.
type IngredientSubstitution struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	OriginalIngredient   string    `gorm:"size:100;not null;index" json:"original_ingredient"`
	SubstituteIngredient string    `gorm:"size:100;not null" json:"substitute_ingredient"`
	SimilarityScore      float64   `gorm:"default:0.8" json:"similarity_score"`
	SubstitutionRatio    string    `gorm:"size:50;default:'1:1'" json:"substitution_ratio"`
	Notes                string    `gorm:"type:text" json:"notes"`
	Category             string    `gorm:"size:50" json:"category"`
	CreatedAt            time.Time `json:"created_at"`
}

func (IngredientSubstitution) TableName() string {
	return "ingredient_substitutions"
}
