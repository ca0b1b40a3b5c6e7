package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartcook/smartcook-backend/internal/model"
	"github.com/smartcook/smartcook-backend/internal/service"
)

// FavoriteHandler serves saved recipes and favorite groups.
type FavoriteHandler struct {
	favorites *service.FavoriteService
	logger    *zap.Logger
}

func NewFavoriteHandler(favorites *service.FavoriteService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

func (h *FavoriteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.List)
		favorites.POST("", h.Add)
		favorites.DELETE("/:id", h.Remove)
		favorites.GET("/by-group/:id", h.ListByGroup)
		favorites.GET("/groups", h.ListGroups)
		favorites.POST("/groups", h.CreateGroup)
		favorites.PUT("/groups/:id", h.UpdateGroup)
		favorites.DELETE("/groups/:id", h.DeleteGroup)
	}
}

// List returns all favorites with their recipes embedded.
func (h *FavoriteHandler) List(c *gin.Context) {
	favorites, err := h.favorites.List()
	if err != nil {
		respondServiceError(c, err, "收藏不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"favorites": favorites, "count": len(favorites)})
}

// ListByGroup returns the favorites of one group.
func (h *FavoriteHandler) ListByGroup(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	favorites, err := h.favorites.ListByGroup(id)
	if err != nil {
		respondServiceError(c, err, "收藏不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"favorites": favorites, "count": len(favorites)})
}

type favoriteRequest struct {
	RecipeID uint   `json:"recipe_id"`
	GroupID  *uint  `json:"group_id"`
	Notes    string `json:"notes"`
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "请求体格式错误")
		return
	}
	if req.RecipeID == 0 {
		respondError(c, http.StatusBadRequest, "recipe_id 是必填字段")
		return
	}

	favorite := model.Favorite{
		RecipeID: req.RecipeID,
		GroupID:  req.GroupID,
		Notes:    req.Notes,
	}
	if err := h.favorites.Add(&favorite); err != nil {
		respondServiceError(c, err, "食谱不存在")
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"favorite": favorite})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.favorites.Remove(id); err != nil {
		respondServiceError(c, err, "收藏不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "收藏已取消"})
}

func (h *FavoriteHandler) ListGroups(c *gin.Context) {
	groups, err := h.favorites.ListGroups()
	if err != nil {
		respondServiceError(c, err, "分组不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"groups": groups, "count": len(groups)})
}

type groupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *FavoriteHandler) CreateGroup(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "请求体格式错误")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(c, http.StatusBadRequest, "分组名称不能为空")
		return
	}

	group := model.FavoriteGroup{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if err := h.favorites.CreateGroup(&group); err != nil {
		respondServiceError(c, err, "分组不存在")
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"group": group})
}

type groupUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *FavoriteHandler) UpdateGroup(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req groupUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "请求体格式错误")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		respondError(c, http.StatusBadRequest, "分组名称不能为空")
		return
	}

	group, err := h.favorites.UpdateGroup(id, service.GroupUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err, "分组不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"group": group})
}

// DeleteGroup removes a group. Favorites inside it survive and become
// ungrouped.
func (h *FavoriteHandler) DeleteGroup(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.favorites.DeleteGroup(id); err != nil {
		respondServiceError(c, err, "分组不存在")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "分组已删除"})
}
