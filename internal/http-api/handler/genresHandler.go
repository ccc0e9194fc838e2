package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

// RegisterRoutes mounts the genre endpoints. Listing is public; writes
// require an authenticated admin.
func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth, requireAdmin gin.HandlerFunc) {
	rg.GET("/", h.List)
	rg.POST("/", requireAuth, requireAdmin, h.Create)
	rg.DELETE("/:slug/", requireAuth, requireAdmin, h.Delete)
}

func (h *GenreHandler) List(c *gin.Context) {
	limit, offset := parseLimitOffset(c)
	genres, total, err := h.genreService.List(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		renderError(c, err)
		return
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for _, genre := range genres {
		responses = append(responses, dto.GenreFromModel(genre))
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(responses, total, limit, offset))
}

func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c, err)
		return
	}

	genre := models.Genre{Name: req.Name, Slug: req.Slug}
	if err := h.genreService.Create(c.Request.Context(), &genre); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.GenreFromModel(genre))
}

func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.genreService.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
