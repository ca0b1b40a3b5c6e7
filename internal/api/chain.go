package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartcook/smartcook-backend/internal/service"
)

// ChainHandler serves the multi-turn chain pipeline.
type ChainHandler struct {
	chain  *service.ChainService
	logger *zap.Logger
}

func NewChainHandler(chain *service.ChainService, logger *zap.Logger) *ChainHandler {
	return &ChainHandler{chain: chain, logger: logger}
}

func (h *ChainHandler) RegisterRoutes(rg *gin.RouterGroup, limiter gin.HandlerFunc) {
	chain := rg.Group("/chain")
	{
		chain.POST("/process", limiter, h.Process)
	}
}

type chainRequest struct {
	UserInput string `json:"user_input"`
}

// Process runs analysis, generation and substitution for one free-form
// user request.
func (h *ChainHandler) Process(c *gin.Context) {
	var req chainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "请求体格式错误")
		return
	}
	if strings.TrimSpace(req.UserInput) == "" {
		respondError(c, http.StatusBadRequest, "user_input 不能为空")
		return
	}

	result, err := h.chain.Process(c.Request.Context(), req.UserInput)
	if err != nil {
		h.logger.Error("chain pipeline failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "处理请求失败，请稍后重试")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"analysis":                result.Analysis,
		"recipes":                 result.Recipes,
		"substitutions":           result.Substitutions,
		"missing_ingredients":     result.MissingIngredients,
		"substitution_candidates": result.SubstitutionCandidates,
	})
}
