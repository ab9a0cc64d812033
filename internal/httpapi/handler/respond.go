package handler

import (
	"errors"
	"net/http"
	"strconv"

	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/permissions"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps the service error taxonomy onto status codes:
// validation 400, missing 404, forbidden 403 (or 401 when anonymous).
func writeServiceError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, vErr.Fields)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		if middleware.CurrentUser(c) == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// authorize runs the permission lattice for the current request and writes
// the refusal itself. Anonymous denials are 401, authenticated ones 403.
func authorize(c *gin.Context, res permissions.Resource, authorID string) bool {
	actor := middleware.CurrentUser(c)
	if permissions.Allowed(actor, c.Request.Method, res, authorID) {
		return true
	}
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	} else {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
	return false
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// pageParams reads the limit/offset query parameters with sane bounds.
func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// pathID parses a numeric path parameter, writing a 400 on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
