package service

import (
	"encoding/json"
	"strings"

	"github.com/smartcook/smartcook-backend/config"
	"github.com/smartcook/smartcook-backend/internal/model"
)

// IngredientInput is one pantry item supplied to recipe generation. The
// analysis stage may hand back bare name strings instead of objects, so
// unmarshalling accepts both.
type IngredientInput struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	State    string `json:"state"`
}

func (i *IngredientInput) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		i.Name = name
		return nil
	}

	type alias IngredientInput
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*i = IngredientInput(obj)
	return nil
}

// Normalize trims the name, defaults quantity and state, and repairs an
// out-of-list state to the room-temperature default.
func (i IngredientInput) Normalize() IngredientInput {
	out := IngredientInput{
		Name:     strings.TrimSpace(i.Name),
		Quantity: strings.TrimSpace(i.Quantity),
		State:    strings.TrimSpace(i.State),
	}
	if out.Quantity == "" {
		out.Quantity = config.DefaultQuantity
	}
	if out.State == "" || !config.IsAllowed(config.AllowedStates, out.State) {
		out.State = config.DefaultState
	}
	return out
}

// RecipeFilters holds the optional preference filters for generation. Empty
// fields mean "no preference".
type RecipeFilters struct {
	Cuisine  string `json:"cuisine,omitempty"`
	Taste    string `json:"taste,omitempty"`
	Scenario string `json:"scenario,omitempty"`
	Skill    string `json:"skill,omitempty"`
}

// IsZero reports whether no filter is set.
func (f RecipeFilters) IsZero() bool {
	return f.Cuisine == "" && f.Taste == "" && f.Scenario == "" && f.Skill == ""
}

// Normalize drops any filter value that is not in its allow-list.
func (f RecipeFilters) Normalize() RecipeFilters {
	out := RecipeFilters{}
	if config.IsAllowed(config.AllowedCuisines, strings.TrimSpace(f.Cuisine)) {
		out.Cuisine = strings.TrimSpace(f.Cuisine)
	}
	if config.IsAllowed(config.AllowedTastes, strings.TrimSpace(f.Taste)) {
		out.Taste = strings.TrimSpace(f.Taste)
	}
	if config.IsAllowed(config.AllowedScenarios, strings.TrimSpace(f.Scenario)) {
		out.Scenario = strings.TrimSpace(f.Scenario)
	}
	if config.IsAllowed(config.AllowedSkills, strings.TrimSpace(f.Skill)) {
		out.Skill = strings.TrimSpace(f.Skill)
	}
	return out
}

// Recognized intents of the analysis stage.
const (
	IntentRecipe       = "食谱生成"
	IntentSubstitution = "替代方案"
	IntentAnalysis     = "食材分析"
)

// Analysis is the typed result of the analysis stage. Every field has a
// defined default so later stages never see a missing key.
type Analysis struct {
	Intent      string            `json:"intent"`
	Ingredients []IngredientInput `json:"ingredients"`
	Filters     RecipeFilters     `json:"filters"`
	Constraints []string          `json:"constraints"`
}

// SubstitutionRecommendation is one suggested replacement for a missing
// ingredient.
type SubstitutionRecommendation struct {
	Name   string `json:"name"`
	Ratio  string `json:"ratio"`
	Note   string `json:"note"`
	Source string `json:"source"`
}

// SubstitutionItem groups the recommendations for one missing ingredient.
type SubstitutionItem struct {
	Ingredient      string                       `json:"ingredient"`
	Reason          string                       `json:"reason"`
	Recommendations []SubstitutionRecommendation `json:"recommendations"`
}

// SubstitutionPlan is the typed result of the substitution stage.
type SubstitutionPlan struct {
	Summary string             `json:"summary"`
	Items   []SubstitutionItem `json:"items"`
}

// ChainResult is the final output of the multi-turn pipeline.
type ChainResult struct {
	Analysis               Analysis                                  `json:"analysis"`
	Recipes                []model.Recipe                            `json:"recipes"`
	Substitutions          SubstitutionPlan                          `json:"substitutions"`
	MissingIngredients     []string                                  `json:"missing_ingredients"`
	SubstitutionCandidates map[string][]model.IngredientSubstitution `json:"substitution_candidates"`
}
