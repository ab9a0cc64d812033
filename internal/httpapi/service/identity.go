package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// validateUsername enforces the shared username rules: charset, length and
// the reserved "me" literal used by the self-service endpoint.
func validateUsername(username string) *ValidationError {
	if strings.EqualFold(username, "me") {
		return NewValidationError("username", `Имя пользователя "me" запрещено`)
	}
	if len(username) > 150 || !usernamePattern.MatchString(username) {
		return NewValidationError("username", "username may contain only letters, digits and @/./+/-/_ characters")
	}
	return nil
}

// checkIdentityTaken reports field-keyed conflicts for a (email, username)
// pair against existing users. except, when non-empty, skips that user id so
// a user can keep their own identity on update.
func checkIdentityTaken(ctx context.Context, users repository.UserRepository, email, username, except string) (*ValidationError, error) {
	vErr := &ValidationError{}

	if existing, err := users.FindByUsername(ctx, username); err == nil {
		if existing.ID != except {
			vErr.Add("username", "username already in use")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing, err := users.FindByEmail(ctx, email); err == nil {
		if existing.ID != except {
			vErr.Add("email", "email already in use")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if vErr.Empty() {
		return nil, nil
	}
	return vErr, nil
}

// applyIdentityPatch copies non-nil patch fields onto the user, running the
// username rules when the username changes. Role handling is the caller's
// concern.
func applyIdentityPatch(user *models.User, username, email, firstName, lastName, bio *string) *ValidationError {
	if username != nil && *username != user.Username {
		if vErr := validateUsername(*username); vErr != nil {
			return vErr
		}
		user.Username = *username
	}
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
	return nil
}
