package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	vErr := NewValidationError("username", "taken")
	vErr.Add("username", "too long")
	vErr.Add("email", "taken")

	assert.False(t, vErr.Empty())
	assert.Len(t, vErr.Fields["username"], 2)
	assert.Contains(t, vErr.Error(), "validation failed")

	var empty *ValidationError
	assert.True(t, empty.Empty())
	assert.True(t, (&ValidationError{}).Empty())
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "ux_reviews_title_author"}

	assert.True(t, isUniqueViolation(dup, ""))
	assert.True(t, isUniqueViolation(dup, "ux_reviews_title_author"))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", dup), "ux_reviews_title_author"))

	assert.False(t, isUniqueViolation(dup, "ux_users_username"))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, isUniqueViolation(errors.New("boom"), ""))
	assert.False(t, isUniqueViolation(nil, ""))
}
