package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcook/smartcook-backend/internal/model"
)

func TestGenerateShoppingListFromRecipeBody(t *testing.T) {
	router, db := newTestRouter(t, &scriptedLLM{})

	recipe := model.Recipe{
		Name: "宫保鸡丁",
		Ingredients: model.JSONIngredientList{
			{Name: "鸡胸肉", Quantity: "300g", Status: model.StatusHave},
			{Name: "花生米", Quantity: "50g", Status: model.StatusNeeded},
		},
	}
	require.NoError(t, db.Create(&recipe).Error)

	w, body := doJSON(t, router, http.MethodPost, "/api/shopping-list/generate",
		map[string]uint{"recipe_id": recipe.ID})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1, body["count"])
	items := body["items"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, "花生米", first["ingredient_name"])
}

func TestGenerateShoppingListRequiresRecipeID(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{})

	w, body := doJSON(t, router, http.MethodPost, "/api/shopping-list/generate",
		map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "食谱ID")
}

func TestGenerateShoppingListUnknownRecipe(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{})

	w, _ := doJSON(t, router, http.MethodPost, "/api/shopping-list/generate",
		map[string]uint{"recipe_id": 77})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
