package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// ReviewHandler covers the review endpoints nested under a title.
type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes mounts the review endpoints under the titles group. Reads
// are public; writes require authentication, with author-or-elevated-role
// checks enforced in the service.
func (h *ReviewHandler) RegisterRoutes(titles *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	reviews := titles.Group("/:title_id/reviews")
	reviews.GET("/", h.List)
	reviews.POST("/", requireAuth, h.Create)
	reviews.GET("/:review_id/", h.Get)
	reviews.PATCH("/:review_id/", requireAuth, h.Update)
	reviews.DELETE("/:review_id/", requireAuth, h.Delete)
}

func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(c)
	reviews, total, err := h.reviewService.ListByTitle(c.Request.Context(), titleID, limit, offset)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(reviews, total, limit, offset))
}

func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	author := middleware.CurrentUser(c)
	if author == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c, err)
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), titleID, author, req.Text, req.Score)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	review, err := h.reviewService.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c, err)
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), titleID, reviewID, actor, req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), titleID, reviewID, actor); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
