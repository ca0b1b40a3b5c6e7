package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcook/smartcook-backend/internal/model"
)

func TestGetSubstitutesOrderedByScore(t *testing.T) {
	router, db := newTestRouter(t, &scriptedLLM{})

	require.NoError(t, db.Create(&model.IngredientSubstitution{
		OriginalIngredient: "柠檬汁", SubstituteIngredient: "白醋",
		SimilarityScore: 0.85, SubstitutionRatio: "1:1",
	}).Error)
	require.NoError(t, db.Create(&model.IngredientSubstitution{
		OriginalIngredient: "柠檬汁", SubstituteIngredient: "青柠汁",
		SimilarityScore: 0.95, SubstitutionRatio: "1:1",
	}).Error)

	w, body := doJSON(t, router, http.MethodGet, "/api/substitutions/柠檬汁", nil)

	require.Equal(t, http.StatusOK, w.Code)
	subs := body["substitutions"].([]interface{})
	require.Len(t, subs, 2)
	first := subs[0].(map[string]interface{})
	assert.Equal(t, "青柠汁", first["substitute_ingredient"])
}

func TestAddSubstitutionValidatesScore(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{})

	w, _ := doJSON(t, router, http.MethodPost, "/api/substitutions", map[string]interface{}{
		"original_ingredient":   "黄油",
		"substitute_ingredient": "植物油",
		"similarity_score":      1.5,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecipeSubstitutionsAggregation(t *testing.T) {
	router, db := newTestRouter(t, &scriptedLLM{})

	require.NoError(t, db.Create(&model.IngredientSubstitution{
		OriginalIngredient: "蚝油", SubstituteIngredient: "生抽+糖", SimilarityScore: 0.7,
	}).Error)
	recipe := model.Recipe{
		Name: "蚝油生菜",
		Ingredients: model.JSONIngredientList{
			{Name: "生菜", Quantity: "1颗", Status: model.StatusHave},
			{Name: "蚝油", Quantity: "1勺", Status: model.StatusNeeded},
		},
	}
	require.NoError(t, db.Create(&recipe).Error)

	w, body := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/substitutions/recipe/%d", recipe.ID), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "蚝油生菜", body["recipe_name"])
	assert.EqualValues(t, 1, body["count"])
	subs := body["substitutions"].(map[string]interface{})
	require.Contains(t, subs, "蚝油")
	assert.NotContains(t, subs, "生菜")
}

func TestRecipeSubstitutionsUnknownRecipe(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{})

	w, _ := doJSON(t, router, http.MethodGet, "/api/substitutions/recipe/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
