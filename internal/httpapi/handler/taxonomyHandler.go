package handler

import (
	"net/http"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/permissions"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler exposes the category tag list: public reads, admin writes,
// slug-keyed deletes, no update.
type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", h.Create)
		categories.DELETE("/:slug", h.Delete)
	}
}

// List handles GET /categories?search=&limit=&offset=
func (h *CategoryHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)
	categories, total, err := h.categoryService.List(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(categories, total))
}

// Create handles POST /categories (admin only).
func (h *CategoryHandler) Create(c *gin.Context) {
	if !authorize(c, permissions.ResourceCategory, "") {
		return
	}

	var req dto.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Delete handles DELETE /categories/:slug (admin only).
func (h *CategoryHandler) Delete(c *gin.Context) {
	if !authorize(c, permissions.ResourceCategory, "") {
		return
	}

	if err := h.categoryService.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GenreHandler mirrors CategoryHandler for the multi-select tags.
type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup) {
	genres := router.Group("/genres")
	{
		genres.GET("", h.List)
		genres.POST("", h.Create)
		genres.DELETE("/:slug", h.Delete)
	}
}

func (h *GenreHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)
	genres, total, err := h.genreService.List(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(genres, total))
}

func (h *GenreHandler) Create(c *gin.Context) {
	if !authorize(c, permissions.ResourceGenre, "") {
		return
	}

	var req dto.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genreService.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, genre)
}

func (h *GenreHandler) Delete(c *gin.Context) {
	if !authorize(c, permissions.ResourceGenre, "") {
		return
	}

	if err := h.genreService.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
