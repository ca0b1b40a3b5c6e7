package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIngredientAppliesDefaults(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{})

	w, body := doJSON(t, router, http.MethodPost, "/api/ingredients", map[string]string{
		"name": "鸡蛋",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	ingredient := body["ingredient"].(map[string]interface{})
	assert.Equal(t, "适量", ingredient["quantity"])
	assert.Equal(t, "常温", ingredient["state"])
}

func TestCreateIngredientRejectsUnknownCategory(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{})

	w, body := doJSON(t, router, http.MethodPost, "/api/ingredients", map[string]string{
		"name":     "鸡蛋",
		"category": "零食",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "零食")
}

func TestCreateIngredientRejectsUnknownState(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{})

	w, _ := doJSON(t, router, http.MethodPost, "/api/ingredients", map[string]string{
		"name":  "鸡蛋",
		"state": "腐烂",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListByCategoryRejectsUnknownValue(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{})

	w, _ := doJSON(t, router, http.MethodGet, "/api/ingredients/category/零食", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngredientLifecycle(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{})

	_, body := doJSON(t, router, http.MethodPost, "/api/ingredients", map[string]interface{}{
		"name": "西红柿", "quantity": "4个", "state": "新鲜",
		"category": "蔬菜", "storage_location": "fridge",
	})
	id := int(body["ingredient"].(map[string]interface{})["id"].(float64))

	w, body := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/ingredients/%d", id),
		map[string]string{"quantity": "2个"})
	require.Equal(t, http.StatusOK, w.Code)
	ingredient := body["ingredient"].(map[string]interface{})
	assert.Equal(t, "2个", ingredient["quantity"])
	assert.Equal(t, "西红柿", ingredient["name"])

	w, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/ingredients/%d/mark-common", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body = doJSON(t, router, http.MethodGet, "/api/ingredients/common", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["count"])

	w, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/ingredients/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/ingredients/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
