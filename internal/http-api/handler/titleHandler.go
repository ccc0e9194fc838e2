package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// RegisterRoutes mounts the title endpoints. Reads are public; writes require
// an authenticated admin. PUT is registered only to answer 405: the write
// representation is PATCH-only.
func (h *TitleHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth, requireAdmin gin.HandlerFunc) {
	rg.GET("/", h.List)
	rg.POST("/", requireAuth, requireAdmin, h.Create)
	rg.GET("/:title_id/", h.Get)
	rg.PATCH("/:title_id/", requireAuth, requireAdmin, h.PartialUpdate)
	rg.PUT("/:title_id/", h.FullUpdateNotAllowed)
	rg.DELETE("/:title_id/", requireAuth, requireAdmin, h.Delete)
}

func (h *TitleHandler) List(c *gin.Context) {
	limit, offset := parseLimitOffset(c)
	filters := repository.TitleFilters{
		Category: c.Query("category"),
		Genre:    c.Query("genre"),
		Name:     c.Query("name"),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year filter"})
			return
		}
		filters.Year = &year
	}

	titles, total, err := h.titleService.List(c.Request.Context(), filters, limit, offset)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(titles, total, limit, offset))
}

func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	title, err := h.titleService.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c, err)
		return
	}

	title, err := h.titleService.Create(c.Request.Context(), req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, title)
}

func (h *TitleHandler) PartialUpdate(c *gin.Context) {
	id, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	var req dto.UpdateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c, err)
		return
	}

	title, err := h.titleService.PartialUpdate(c.Request.Context(), id, req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

// FullUpdateNotAllowed rejects whole-resource replacement of a title.
func (h *TitleHandler) FullUpdateNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed; use PATCH"})
}

func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
