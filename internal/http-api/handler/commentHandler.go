package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// CommentHandler covers the comment endpoints nested under a review.
type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes mounts the comment endpoints under the titles group. The
// parent title and review are both checked, so a comment is unreachable
// through a mismatched path.
func (h *CommentHandler) RegisterRoutes(titles *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	comments := titles.Group("/:title_id/reviews/:review_id/comments")
	comments.GET("/", h.List)
	comments.POST("/", requireAuth, h.Create)
	comments.GET("/:comment_id/", h.Get)
	comments.PATCH("/:comment_id/", requireAuth, h.Update)
	comments.DELETE("/:comment_id/", requireAuth, h.Delete)
}

func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := parseParentIDs(c)
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(c)
	comments, total, err := h.commentService.ListByReview(titleID, reviewID, limit, offset)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(comments, total, limit, offset))
}

func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := parseParentIDs(c)
	if !ok {
		return
	}

	author := middleware.CurrentUser(c)
	if author == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c, err)
		return
	}

	comment, err := h.commentService.Create(titleID, reviewID, author, req.Text)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := parseParentIDs(c)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.commentService.Get(titleID, reviewID, commentID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := parseParentIDs(c)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c, err)
		return
	}

	comment, err := h.commentService.Update(titleID, reviewID, commentID, actor, req.Text)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := parseParentIDs(c)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.commentService.Delete(titleID, reviewID, commentID, actor); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseParentIDs(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, ok = parseIDParam(c, "title_id")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok = parseIDParam(c, "review_id")
	if !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}
