package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartcook/smartcook-backend/config"
	"github.com/smartcook/smartcook-backend/internal/model"
	"github.com/smartcook/smartcook-backend/internal/service"
)

// ShoppingListHandler serves the shopping list endpoints.
type ShoppingListHandler struct {
	shopping *service.ShoppingListService
	logger   *zap.Logger
}

func NewShoppingListHandler(shopping *service.ShoppingListService, logger *zap.Logger) *ShoppingListHandler {
	return &ShoppingListHandler{shopping: shopping, logger: logger}
}

func (h *ShoppingListHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shopping := rg.Group("/shopping-list")
	{
		shopping.GET("", h.List)
		shopping.POST("", h.Add)
		shopping.PUT("/:id", h.Update)
		shopping.DELETE("/:id", h.Delete)
		shopping.POST("/:id/purchase", h.MarkAsPurchased)
		shopping.POST("/generate", h.GenerateFromRecipe)
		shopping.DELETE("/purchased", h.ClearPurchased)
	}
}

func (h *ShoppingListHandler) List(c *gin.Context) {
	items, err := h.shopping.List()
	if err != nil {
		respondServiceError(c, err, "购物项不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"items": items, "count": len(items)})
}

type shoppingItemRequest struct {
	IngredientName string `json:"ingredient_name"`
	Quantity       string `json:"quantity"`
	Category       string `json:"category"`
}

func (h *ShoppingListHandler) Add(c *gin.Context) {
	var req shoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "请求体格式错误")
		return
	}
	req.IngredientName = strings.TrimSpace(req.IngredientName)
	if req.IngredientName == "" {
		respondError(c, http.StatusBadRequest, "食材名称不能为空")
		return
	}
	if req.Quantity == "" {
		req.Quantity = config.DefaultQuantity
	}
	if req.Category != "" && !config.IsAllowed(config.AllowedCategories, req.Category) {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("无效的食材分类：%s", req.Category))
		return
	}

	item := model.ShoppingListItem{
		IngredientName: req.IngredientName,
		Quantity:       req.Quantity,
		Category:       req.Category,
	}
	if err := h.shopping.Add(&item); err != nil {
		respondServiceError(c, err, "购物项不存在")
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"item": item})
}

type shoppingItemUpdateRequest struct {
	IngredientName *string `json:"ingredient_name"`
	Quantity       *string `json:"quantity"`
	Category       *string `json:"category"`
	IsPurchased    *bool   `json:"is_purchased"`
}

func (h *ShoppingListHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req shoppingItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "请求体格式错误")
		return
	}
	if req.IngredientName != nil && strings.TrimSpace(*req.IngredientName) == "" {
		respondError(c, http.StatusBadRequest, "食材名称不能为空")
		return
	}
	if req.Category != nil && *req.Category != "" && !config.IsAllowed(config.AllowedCategories, *req.Category) {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("无效的食材分类：%s", *req.Category))
		return
	}

	item, err := h.shopping.Update(id, service.ShoppingItemUpdate{
		IngredientName: req.IngredientName,
		Quantity:       req.Quantity,
		Category:       req.Category,
		IsPurchased:    req.IsPurchased,
	})
	if err != nil {
		respondServiceError(c, err, "购物项不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"item": item})
}

func (h *ShoppingListHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.shopping.Delete(id); err != nil {
		respondServiceError(c, err, "购物项不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "购物项已删除"})
}

func (h *ShoppingListHandler) MarkAsPurchased(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.shopping.MarkAsPurchased(id)
	if err != nil {
		respondServiceError(c, err, "购物项不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"item": item})
}

type generateFromRecipeRequest struct {
	RecipeID uint `json:"recipe_id"`
}

// GenerateFromRecipe adds the needs-supply ingredients of one recipe to the
// shopping list.
func (h *ShoppingListHandler) GenerateFromRecipe(c *gin.Context) {
	var req generateFromRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RecipeID == 0 {
		respondError(c, http.StatusBadRequest, "请提供食谱ID")
		return
	}

	items, err := h.shopping.GenerateFromRecipe(req.RecipeID)
	if err != nil {
		respondServiceError(c, err, "食谱不存在")
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"items": items, "count": len(items)})
}

func (h *ShoppingListHandler) ClearPurchased(c *gin.Context) {
	deleted, err := h.shopping.ClearPurchased()
	if err != nil {
		respondServiceError(c, err, "购物项不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": deleted})
}
