package model

import "time"

// RecipeStepProgress tracks completion of a single recipe step. One row per
// (recipe, step index) pair; the step index is not validated against the
// recipe's actual step count.
type RecipeStepProgress struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	RecipeID    uint       `gorm:"not null;uniqueIndex:idx_recipe_step" json:"recipe_id"`
	StepIndex   int        `gorm:"not null;uniqueIndex:idx_recipe_step" json:"step_index"`
	IsCompleted bool       `gorm:"default:false" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (RecipeStepProgress) TableName() string {
	return "recipe_step_progress"
}
