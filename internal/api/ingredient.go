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

// IngredientHandler serves the pantry CRUD endpoints.
type IngredientHandler struct {
	ingredients *service.IngredientService
	logger      *zap.Logger
}

func NewIngredientHandler(ingredients *service.IngredientService, logger *zap.Logger) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients, logger: logger}
}

func (h *IngredientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ingredients := rg.Group("/ingredients")
	{
		ingredients.GET("", h.List)
		ingredients.POST("", h.Create)
		ingredients.PUT("/:id", h.Update)
		ingredients.DELETE("/:id", h.Delete)
		ingredients.GET("/category/:category", h.ListByCategory)
		ingredients.GET("/storage/:location", h.ListByStorage)
		ingredients.GET("/common", h.ListCommon)
		ingredients.POST("/:id/mark-common", h.MarkAsCommon)
	}
}

func (h *IngredientHandler) List(c *gin.Context) {
	ingredients, err := h.ingredients.List()
	if err != nil {
		respondServiceError(c, err, "食材不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"ingredients": ingredients, "count": len(ingredients)})
}

func (h *IngredientHandler) ListByCategory(c *gin.Context) {
	category := c.Param("category")
	if !config.IsAllowed(config.AllowedCategories, category) {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("无效的食材分类：%s", category))
		return
	}

	ingredients, err := h.ingredients.ListByCategory(category)
	if err != nil {
		respondServiceError(c, err, "食材不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"ingredients": ingredients, "count": len(ingredients)})
}

func (h *IngredientHandler) ListByStorage(c *gin.Context) {
	location := c.Param("location")
	if !config.IsAllowed(config.AllowedStorage, location) {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("无效的存放位置：%s", location))
		return
	}

	ingredients, err := h.ingredients.ListByStorage(location)
	if err != nil {
		respondServiceError(c, err, "食材不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"ingredients": ingredients, "count": len(ingredients)})
}

func (h *IngredientHandler) ListCommon(c *gin.Context) {
	ingredients, err := h.ingredients.ListCommon()
	if err != nil {
		respondServiceError(c, err, "食材不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"ingredients": ingredients, "count": len(ingredients)})
}

type ingredientRequest struct {
	Name            string `json:"name"`
	Quantity        string `json:"quantity"`
	State           string `json:"state"`
	Category        string `json:"category"`
	StorageLocation string `json:"storage_location"`
	IsCommon        bool   `json:"is_common"`
}

// validate checks the allow-listed fields and applies defaults for the
// optional ones.
func (r *ingredientRequest) validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("食材名称不能为空")
	}
	if r.Quantity == "" {
		r.Quantity = config.DefaultQuantity
	}
	if r.State == "" {
		r.State = config.DefaultState
	}
	if !config.IsAllowed(config.AllowedStates, r.State) {
		return fmt.Errorf("无效的食材状态：%s", r.State)
	}
	if r.Category != "" && !config.IsAllowed(config.AllowedCategories, r.Category) {
		return fmt.Errorf("无效的食材分类：%s", r.Category)
	}
	if r.StorageLocation != "" && !config.IsAllowed(config.AllowedStorage, r.StorageLocation) {
		return fmt.Errorf("无效的存放位置：%s", r.StorageLocation)
	}
	return nil
}

func (h *IngredientHandler) Create(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "请求体格式错误")
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ingredient := model.Ingredient{
		Name:            req.Name,
		Quantity:        req.Quantity,
		State:           req.State,
		Category:        req.Category,
		StorageLocation: req.StorageLocation,
		IsCommon:        req.IsCommon,
	}
	if err := h.ingredients.Create(&ingredient); err != nil {
		respondServiceError(c, err, "食材不存在")
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"ingredient": ingredient})
}

type ingredientUpdateRequest struct {
	Name            *string `json:"name"`
	Quantity        *string `json:"quantity"`
	State           *string `json:"state"`
	Category        *string `json:"category"`
	StorageLocation *string `json:"storage_location"`
	IsCommon        *bool   `json:"is_common"`
}

func (r ingredientUpdateRequest) validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return fmt.Errorf("食材名称不能为空")
	}
	if r.State != nil && !config.IsAllowed(config.AllowedStates, *r.State) {
		return fmt.Errorf("无效的食材状态：%s", *r.State)
	}
	if r.Category != nil && *r.Category != "" && !config.IsAllowed(config.AllowedCategories, *r.Category) {
		return fmt.Errorf("无效的食材分类：%s", *r.Category)
	}
	if r.StorageLocation != nil && *r.StorageLocation != "" && !config.IsAllowed(config.AllowedStorage, *r.StorageLocation) {
		return fmt.Errorf("无效的存放位置：%s", *r.StorageLocation)
	}
	return nil
}

func (h *IngredientHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ingredientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "请求体格式错误")
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ingredient, err := h.ingredients.Update(id, service.IngredientUpdate{
		Name:            req.Name,
		Quantity:        req.Quantity,
		State:           req.State,
		Category:        req.Category,
		StorageLocation: req.StorageLocation,
		IsCommon:        req.IsCommon,
	})
	if err != nil {
		respondServiceError(c, err, "食材不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"ingredient": ingredient})
}

func (h *IngredientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.ingredients.Delete(id); err != nil {
		respondServiceError(c, err, "食材不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "食材已删除"})
}

func (h *IngredientHandler) MarkAsCommon(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ingredient, err := h.ingredients.MarkAsCommon(id)
	if err != nil {
		respondServiceError(c, err, "食材不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"ingredient": ingredient})
}
