// Package permissions holds the role/ownership decision logic used in front
// of every mutating endpoint. It is deliberately free of HTTP and database
// concerns: handlers pass in the authenticated user (nil for anonymous), the
// request method and the target resource, and get back a plain allow/deny.
package permissions

import (
	"net/http"

	"reviewhub/internal/httpapi/models"
)

// Resource identifies the kind of object a request targets.
type Resource int

const (
	ResourceTitle Resource = iota
	ResourceCategory
	ResourceGenre
	ResourceReview
	ResourceComment
	ResourceUser
)

// safeMethod reports whether the method is read-only.
func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Allowed decides whether actor may perform method on a resource of the
// given kind. authorID is the owner of the target for review/comment
// mutations (for creation it equals the actor's own ID). actor == nil means
// an anonymous request.
//
// The lattice, highest precedence first:
//   - admin (role or superuser flag): everything, on every resource;
//   - the user directory is admin-only even for reads;
//   - safe methods: open to everyone else;
//   - anonymous: no writes;
//   - moderator: any review/comment write;
//   - user: review/comment writes only on their own resources.
func Allowed(actor *models.User, method string, res Resource, authorID string) bool {
	if actor != nil && actor.IsAdmin() {
		return true
	}
	if res == ResourceUser {
		return false
	}
	if safeMethod(method) {
		return true
	}
	if actor == nil {
		return false
	}
	switch res {
	case ResourceReview, ResourceComment:
		if actor.IsModerator() {
			return true
		}
		return authorID == actor.ID
	default:
		// catalog writes are admin territory
		return false
	}
}
