package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/permissions"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

func (h *TitleHandler) RegisterRoutes(router *gin.RouterGroup) {
	titles := router.Group("/titles")
	{
		titles.GET("", h.List)
		titles.POST("", h.Create)
		titles.GET("/:title_id", h.Get)
		titles.PATCH("/:title_id", h.Update)
		titles.DELETE("/:title_id", h.Delete)
	}
}

// List handles GET /titles with AND-combined filters: name substring, exact
// year, category slug, genre slug.
func (h *TitleHandler) List(c *gin.Context) {
	filter := repository.TitleFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
		Genre:    c.Query("genre"),
	}
	if yearParam := c.Query("year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		filter.Year = &year
	}

	limit, offset := pageParams(c)
	titles, total, err := h.titleService.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(titles, total))
}

// Get handles GET /titles/:title_id; the rating field is computed on read.
func (h *TitleHandler) Get(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	title, err := h.titleService.Get(c.Request.Context(), titleID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

// Create handles POST /titles (admin only).
func (h *TitleHandler) Create(c *gin.Context) {
	if !authorize(c, permissions.ResourceTitle, "") {
		return
	}

	var req dto.TitleWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleService.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, title)
}

// Update handles PATCH /titles/:title_id (admin only).
func (h *TitleHandler) Update(c *gin.Context) {
	if !authorize(c, permissions.ResourceTitle, "") {
		return
	}

	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	var req dto.TitleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleService.Update(c.Request.Context(), titleID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

// Delete handles DELETE /titles/:title_id (admin only); reviews and their
// comments go with it.
func (h *TitleHandler) Delete(c *gin.Context) {
	if !authorize(c, permissions.ResourceTitle, "") {
		return
	}

	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), titleID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
