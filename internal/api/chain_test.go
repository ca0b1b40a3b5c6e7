package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainRejectsBlankInput(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{})

	w, body := doJSON(t, router, http.MethodPost, "/api/chain/process", map[string]string{
		"user_input": "   ",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestChainReportsModelFailure(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{err: errors.New("connection refused")})

	w, body := doJSON(t, router, http.MethodPost, "/api/chain/process", map[string]string{
		"user_input": "我想做饭",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestChainServedAtProcessPath(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{})

	w, _ := doJSON(t, router, http.MethodPost, "/api/chain", map[string]string{
		"user_input": "我想做饭",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// The pipeline result is flattened beside success, not nested under a
// wrapper key.
func TestChainHappyPathFlatEnvelope(t *testing.T) {
	analysis := "```json\n{\"intent\": \"食材分析\", \"ingredients\": [], \"filters\": {}, \"constraints\": []}\n```"
	router, _ := newTestRouter(t, &scriptedLLM{responses: []string{analysis}})

	w, body := doJSON(t, router, http.MethodPost, "/api/chain/process", map[string]string{
		"user_input": "帮我分析一下冰箱里的东西",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "result")

	analysisOut, ok := body["analysis"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "食材分析", analysisOut["intent"])
	assert.Contains(t, body, "recipes")
	assert.Contains(t, body, "substitutions")
	assert.Contains(t, body, "missing_ingredients")
	assert.Contains(t, body, "substitution_candidates")
}
