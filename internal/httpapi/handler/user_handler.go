package handler

import (
	"net/http"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/permissions"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers the admin user directory and /users/me.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/me", h.Me)
		users.PATCH("/me", h.UpdateMe)
		users.GET("/:username", h.Get)
		users.PATCH("/:username", h.Update)
		users.DELETE("/:username", h.Delete)
	}
}

// List handles GET /users?search=&limit=&offset= (admin only).
func (h *UserHandler) List(c *gin.Context) {
	if !authorize(c, permissions.ResourceUser, "") {
		return
	}

	limit, offset := pageParams(c)
	users, total, err := h.userService.List(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, dto.NewPage(responses, total))
}

// Create handles POST /users (admin only).
func (h *UserHandler) Create(c *gin.Context) {
	if !authorize(c, permissions.ResourceUser, "") {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

// Get handles GET /users/:username (admin only).
func (h *UserHandler) Get(c *gin.Context) {
	if !authorize(c, permissions.ResourceUser, "") {
		return
	}

	user, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// Update handles PATCH /users/:username (admin only, role editable).
func (h *UserHandler) Update(c *gin.Context) {
	if !authorize(c, permissions.ResourceUser, "") {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateByUsername(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// Delete handles DELETE /users/:username (admin only).
func (h *UserHandler) Delete(c *gin.Context) {
	if !authorize(c, permissions.ResourceUser, "") {
		return
	}

	if err := h.userService.DeleteByUsername(c.Request.Context(), c.Param("username")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me handles GET /users/me for any authenticated user.
func (h *UserHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// UpdateMe handles PATCH /users/me. The role field is read-only for self.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.userService.UpdateSelf(c.Request.Context(), user, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(updated))
}
