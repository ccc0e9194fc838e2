package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes mounts the category endpoints. Listing is public; writes
// require an authenticated admin.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth, requireAdmin gin.HandlerFunc) {
	rg.GET("/", h.List)
	rg.POST("/", requireAuth, requireAdmin, h.Create)
	rg.DELETE("/:slug/", requireAuth, requireAdmin, h.Delete)
}

func (h *CategoryHandler) List(c *gin.Context) {
	limit, offset := parseLimitOffset(c)
	categories, total, err := h.categoryService.List(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		renderError(c, err)
		return
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, dto.CategoryFromModel(category))
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(responses, total, limit, offset))
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c, err)
		return
	}

	category := models.Category{Name: req.Name, Slug: req.Slug}
	if err := h.categoryService.Create(c.Request.Context(), &category); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryFromModel(category))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
