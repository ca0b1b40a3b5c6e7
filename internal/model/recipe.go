package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Ingredient status values used in generated recipes.
const (
	StatusHave   = "已有"
	StatusNeeded = "需补充"
)

// RecipeIngredient is one entry of a generated recipe's ingredient list.
type RecipeIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Status   string `json:"status"`
}

// JSONStringList stores an ordered string list as JSON in a text column.
type JSONStringList []string

// Value implements the driver.Valuer interface.
func (l JSONStringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface.
func (l *JSONStringList) Scan(value interface{}) error {
	if value == nil {
		*l = JSONStringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// JSONIngredientList stores an ordered ingredient list as JSON in a text column.
type JSONIngredientList []RecipeIngredient

// Value implements the driver.Valuer interface.
func (l JSONIngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface.
func (l *JSONIngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = JSONIngredientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Recipe is one generated recipe, written once and never mutated afterwards
// except through its progress and favorite rows.
type Recipe struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	Name        string             `gorm:"size:200;not null" json:"name"`
	Description string             `gorm:"type:text" json:"description"`
	Difficulty  string             `gorm:"size:20" json:"difficulty"`
	CookingTime string             `gorm:"size:50" json:"cooking_time"`
	Calories    string             `gorm:"size:50" json:"calories"`
	Cuisine     string             `gorm:"size:50" json:"cuisine"`
	Taste       string             `gorm:"size:50" json:"taste"`
	Scenario    string             `gorm:"size:50" json:"scenario"`
	SkillLevel  string             `gorm:"size:20" json:"skill_level"`
	Ingredients JSONIngredientList `gorm:"type:text" json:"ingredients"`
	Steps       JSONStringList     `gorm:"type:text" json:"steps"`
	Tags        JSONStringList     `gorm:"type:text" json:"tags"`
	CreatedAt   time.Time          `json:"created_at"`

	// Favorites and step progress are owned by the recipe and deleted with
	// it; shopping items survive recipe deletion.
	Favorites     []Favorite           `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	StepProgress  []RecipeStepProgress `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"step_progress,omitempty"`
	ShoppingItems []ShoppingListItem   `gorm:"foreignKey:RecipeID" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}
