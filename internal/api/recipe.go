package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartcook/smartcook-backend/config"
	"github.com/smartcook/smartcook-backend/internal/service"
)

// RecipeHandler serves recipe generation, history and step progress.
type RecipeHandler struct {
	recipes *service.RecipeService
	logger  *zap.Logger
}

func NewRecipeHandler(recipes *service.RecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, logger: logger}
}

// RegisterRoutes wires the recipe endpoints. generateLimiter applies only to
// the model-backed generation endpoint.
func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup, generateLimiter gin.HandlerFunc) {
	recipes := rg.Group("/recipes")
	{
		recipes.POST("/generate", generateLimiter, h.Generate)
		recipes.GET("/history", h.History)
		recipes.GET("/:id", h.Get)
		recipes.DELETE("/:id", h.Delete)
		recipes.GET("/:id/progress", h.GetProgress)
		recipes.POST("/:id/progress", h.UpdateProgress)
	}
}

type generateRequest struct {
	Ingredients []service.IngredientInput `json:"ingredients"`
	Filters     service.RecipeFilters     `json:"filters"`
}

// Generate validates the pantry payload and runs recipe generation.
func (h *RecipeHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "请求体格式错误")
		return
	}

	if len(req.Ingredients) < config.MinIngredients {
		respondError(c, http.StatusBadRequest, "请至少提供一种食材")
		return
	}
	if len(req.Ingredients) > config.MaxIngredients {
		respondError(c, http.StatusBadRequest,
			fmt.Sprintf("食材数量不能超过 %d 种", config.MaxIngredients))
		return
	}

	normalized := make([]service.IngredientInput, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		n := ing.Normalize()
		if n.Name == "" {
			respondError(c, http.StatusBadRequest, "食材名称不能为空")
			return
		}
		normalized = append(normalized, n)
	}

	if err := validateFilters(req.Filters); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	recipes := h.recipes.GenerateRecipes(c.Request.Context(), normalized, req.Filters.Normalize())
	respondOK(c, http.StatusOK, gin.H{"recipes": recipes, "count": len(recipes)})
}

// validateFilters rejects filter values outside the allow-lists. Empty
// values pass, they mean no preference.
func validateFilters(f service.RecipeFilters) error {
	checks := []struct {
		value   string
		allowed []string
		label   string
	}{
		{strings.TrimSpace(f.Cuisine), config.AllowedCuisines, "菜系"},
		{strings.TrimSpace(f.Taste), config.AllowedTastes, "口味"},
		{strings.TrimSpace(f.Scenario), config.AllowedScenarios, "场景"},
		{strings.TrimSpace(f.Skill), config.AllowedSkills, "难度"},
	}
	for _, chk := range checks {
		if chk.value != "" && !config.IsAllowed(chk.allowed, chk.value) {
			return fmt.Errorf("无效的%s筛选：%s", chk.label, chk.value)
		}
	}
	return nil
}

// History returns recently generated recipes, newest first.
func (h *RecipeHandler) History(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(c, http.StatusBadRequest, "limit 必须是正整数")
			return
		}
		limit = parsed
	}

	recipes, err := h.recipes.History(limit)
	if err != nil {
		respondServiceError(c, err, "食谱不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"recipes": recipes, "count": len(recipes)})
}

// Get returns one recipe with its step progress.
func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "食谱不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"recipe": recipe})
}

// Delete removes a recipe along with its favorites and step progress.
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.recipes.Delete(id); err != nil {
		respondServiceError(c, err, "食谱不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "食谱已删除"})
}

// GetProgress lists the step completion records of a recipe.
func (h *RecipeHandler) GetProgress(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	progress, err := h.recipes.GetProgress(id)
	if err != nil {
		respondServiceError(c, err, "食谱不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"progress": progress})
}

type progressRequest struct {
	StepIndex *int `json:"step_index"`
	Completed bool `json:"completed"`
}

// UpdateProgress upserts the completion flag of one recipe step.
func (h *RecipeHandler) UpdateProgress(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StepIndex == nil {
		respondError(c, http.StatusBadRequest, "step_index 是必填字段")
		return
	}
	if *req.StepIndex < 0 {
		respondError(c, http.StatusBadRequest, "step_index 不能为负数")
		return
	}

	progress, err := h.recipes.UpdateProgress(id, *req.StepIndex, req.Completed)
	if err != nil {
		respondServiceError(c, err, "食谱不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"progress": progress})
}

// parseID reads the :id path parameter. On failure it writes the 400
// response itself.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的 ID")
		return 0, false
	}
	return uint(id), true
}
