package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// UserHandler covers the admin user-management endpoints plus the /me
// self-service pair.
type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes mounts the user endpoints. The whole group sits behind the
// auth middleware; everything except /me additionally requires admin.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	rg.GET("/me/", h.GetMe)
	rg.PATCH("/me/", h.PatchMe)

	rg.GET("/", requireAdmin, h.List)
	rg.POST("/", requireAdmin, h.Create)
	rg.GET("/:username/", requireAdmin, h.Get)
	rg.PATCH("/:username/", requireAdmin, h.Patch)
	rg.DELETE("/:username/", requireAdmin, h.Delete)
}

func (h *UserHandler) List(c *gin.Context) {
	limit, offset := parseLimitOffset(c)
	users, total, err := h.userService.List(c.Query("search"), limit, offset)
	if err != nil {
		renderError(c, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(responses, total, limit, offset))
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c, err)
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	}
	created, err := h.userService.Create(&user, req.Password)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(created))
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Param("username"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

func (h *UserHandler) Patch(c *gin.Context) {
	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c, err)
		return
	}

	updated, err := h.userService.Update(c.Param("username"), toUserUpdates(req))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(updated))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Param("username")); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMe returns the authenticated user's own record.
func (h *UserHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// PatchMe updates the authenticated user's own profile. Role changes are
// stripped server-side, so a plain user can't escalate themselves.
func (h *UserHandler) PatchMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c, err)
		return
	}

	updated, err := h.userService.UpdateSelf(user, toUserUpdates(req))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(updated))
}

func toUserUpdates(req dto.UpdateUserDTO) service.UserUpdates {
	return service.UserUpdates{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
		Password:  req.Password,
	}
}
