package permissions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"review-catalogue-api/models"
)

func TestCanAccessCollection(t *testing.T) {
	anon := Anonymous()
	user := Actor{ID: 1, Role: models.RoleUser, Authenticated: true}

	assert.True(t, CanAccessCollection(anon, http.MethodGet))
	assert.True(t, CanAccessCollection(anon, http.MethodHead))
	assert.False(t, CanAccessCollection(anon, http.MethodPost))
	assert.False(t, CanAccessCollection(anon, http.MethodDelete))

	assert.True(t, CanAccessCollection(user, http.MethodPost))
	assert.True(t, CanAccessCollection(user, http.MethodPatch))
}

func TestCanAccessObject(t *testing.T) {
	author := Actor{ID: 7, Role: models.RoleUser, Authenticated: true}
	other := Actor{ID: 8, Role: models.RoleUser, Authenticated: true}
	moderator := Actor{ID: 9, Role: models.RoleModerator, Authenticated: true}
	admin := Actor{ID: 10, Role: models.RoleAdmin, Authenticated: true}

	const authorID = uint(7)

	// Reads are open regardless of who asks.
	assert.True(t, CanAccessObject(Anonymous(), http.MethodGet, authorID))
	assert.True(t, CanAccessObject(other, http.MethodGet, authorID))

	assert.True(t, CanAccessObject(author, http.MethodPatch, authorID))
	assert.True(t, CanAccessObject(author, http.MethodDelete, authorID))
	assert.False(t, CanAccessObject(other, http.MethodPatch, authorID))
	assert.False(t, CanAccessObject(other, http.MethodDelete, authorID))

	assert.True(t, CanAccessObject(moderator, http.MethodPatch, authorID))
	assert.True(t, CanAccessObject(admin, http.MethodDelete, authorID))

	assert.False(t, CanAccessObject(Anonymous(), http.MethodPatch, authorID))
}

func TestCanAccessObjectUnknownRole(t *testing.T) {
	// A role outside the closed set never grants write access to someone
	// else's resource.
	odd := Actor{ID: 3, Role: "superuser", Authenticated: true}
	assert.False(t, CanAccessObject(odd, http.MethodDelete, 1))
	assert.True(t, CanAccessObject(odd, http.MethodDelete, 3))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(Actor{ID: 1, Role: models.RoleAdmin, Authenticated: true}))
	assert.False(t, IsAdmin(Actor{ID: 1, Role: models.RoleModerator, Authenticated: true}))
	assert.False(t, IsAdmin(Actor{ID: 1, Role: models.RoleUser, Authenticated: true}))
	// An unauthenticated actor claiming the admin role is still denied.
	assert.False(t, IsAdmin(Actor{Role: models.RoleAdmin}))
}

func TestIsAdminOrReadOnly(t *testing.T) {
	admin := Actor{ID: 2, Role: models.RoleAdmin, Authenticated: true}
	moderator := Actor{ID: 3, Role: models.RoleModerator, Authenticated: true}

	assert.True(t, IsAdminOrReadOnly(Anonymous(), http.MethodGet))
	assert.True(t, IsAdminOrReadOnly(admin, http.MethodPost))
	assert.False(t, IsAdminOrReadOnly(moderator, http.MethodPost))
	assert.False(t, IsAdminOrReadOnly(Anonymous(), http.MethodDelete))
}
