package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartcook/smartcook-backend/config"
	"github.com/smartcook/smartcook-backend/internal/model"
	"github.com/smartcook/smartcook-backend/internal/service"
)

// SubstitutionHandler serves ingredient substitution lookups and the
// curated substitution table.
type SubstitutionHandler struct {
	substitutions *service.SubstitutionService
	recipes       *service.RecipeService
	logger        *zap.Logger
}

func NewSubstitutionHandler(substitutions *service.SubstitutionService, recipes *service.RecipeService, logger *zap.Logger) *SubstitutionHandler {
	return &SubstitutionHandler{substitutions: substitutions, recipes: recipes, logger: logger}
}

func (h *SubstitutionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	subs := rg.Group("/substitutions")
	{
		subs.GET("", h.List)
		subs.POST("", h.Add)
		subs.DELETE("/:id", h.Delete)
		subs.GET("/recipe/:id", h.GetRecipeSubstitutions)
		subs.GET("/:ingredient", h.GetSubstitutes)
	}
}

func (h *SubstitutionHandler) List(c *gin.Context) {
	subs, err := h.substitutions.List()
	if err != nil {
		respondServiceError(c, err, "替代关系不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"substitutions": subs, "count": len(subs)})
}

// GetSubstitutes returns the best-scored replacements for one ingredient
// name, substring-matched.
func (h *SubstitutionHandler) GetSubstitutes(c *gin.Context) {
	name := strings.TrimSpace(c.Param("ingredient"))
	if name == "" {
		respondError(c, http.StatusBadRequest, "食材名称不能为空")
		return
	}

	subs, err := h.substitutions.GetSubstitutes(name, config.SubstituteLimit)
	if err != nil {
		respondServiceError(c, err, "替代关系不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"ingredient":    name,
		"substitutions": subs,
		"count":         len(subs),
	})
}

// GetRecipeSubstitutions aggregates substitutes for every needs-supply
// ingredient of one recipe.
func (h *SubstitutionHandler) GetRecipeSubstitutions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "食谱不存在")
		return
	}

	subs, err := h.substitutions.GetRecipeSubstitutions(recipe.Ingredients)
	if err != nil {
		respondServiceError(c, err, "替代关系不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"recipe_id":     recipe.ID,
		"recipe_name":   recipe.Name,
		"substitutions": subs,
		"count":         len(subs),
	})
}

type substitutionRequest struct {
	OriginalIngredient   string  `json:"original_ingredient"`
	SubstituteIngredient string  `json:"substitute_ingredient"`
	SimilarityScore      float64 `json:"similarity_score"`
	SubstitutionRatio    string  `json:"substitution_ratio"`
	Notes                string  `json:"notes"`
}

func (h *SubstitutionHandler) Add(c *gin.Context) {
	var req substitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "请求体格式错误")
		return
	}
	req.OriginalIngredient = strings.TrimSpace(req.OriginalIngredient)
	req.SubstituteIngredient = strings.TrimSpace(req.SubstituteIngredient)
	if req.OriginalIngredient == "" || req.SubstituteIngredient == "" {
		respondError(c, http.StatusBadRequest, "原食材与替代食材均不能为空")
		return
	}
	if req.SimilarityScore < 0 || req.SimilarityScore > 1 {
		respondError(c, http.StatusBadRequest, "similarity_score 必须在 0 和 1 之间")
		return
	}

	sub := model.IngredientSubstitution{
		OriginalIngredient:   req.OriginalIngredient,
		SubstituteIngredient: req.SubstituteIngredient,
		SimilarityScore:      req.SimilarityScore,
		SubstitutionRatio:    req.SubstitutionRatio,
		Notes:                req.Notes,
	}
	if err := h.substitutions.Add(&sub); err != nil {
		respondServiceError(c, err, "替代关系不存在")
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"substitution": sub})
}

func (h *SubstitutionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.substitutions.Delete(id); err != nil {
		respondServiceError(c, err, "替代关系不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "替代关系已删除"})
}
