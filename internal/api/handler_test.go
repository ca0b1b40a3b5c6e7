package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/smartcook/smartcook-backend/internal/database"
	"github.com/smartcook/smartcook-backend/internal/service"
)

// scriptedLLM replays canned responses for handler tests.
type scriptedLLM struct {
	responses []string
	err       error
}

func (f *scriptedLLM) Chat(ctx context.Context, system, user string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

// noLimit stands in for the rate limiter in handler tests.
func noLimit(c *gin.Context) { c.Next() }

func newTestRouter(t *testing.T, llm service.LLMClient) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	logger := zap.NewNop()
	recipeSvc := service.NewRecipeService(db, llm, logger)
	substitutionSvc := service.NewSubstitutionService(db, logger)
	chainSvc := service.NewChainService(recipeSvc, substitutionSvc, llm, logger)

	router := gin.New()
	apiGroup := router.Group("/api")
	NewRecipeHandler(recipeSvc, logger).RegisterRoutes(apiGroup, gin.HandlerFunc(noLimit))
	NewChainHandler(chainSvc, logger).RegisterRoutes(apiGroup, gin.HandlerFunc(noLimit))
	NewIngredientHandler(service.NewIngredientService(db, logger), logger).RegisterRoutes(apiGroup)
	NewFavoriteHandler(service.NewFavoriteService(db, logger), logger).RegisterRoutes(apiGroup)
	NewShoppingListHandler(service.NewShoppingListService(db, logger), logger).RegisterRoutes(apiGroup)
	NewSubstitutionHandler(substitutionSvc, recipeSvc, logger).RegisterRoutes(apiGroup)

	return router, db
}

// doJSON performs a request with a JSON body and decodes the JSON response.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 && strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}
