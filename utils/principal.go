package utils

import (
	"idea-incubator-api/models"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the authenticated user placed in the context by the auth
// middleware. Lifecycle operations take this value as an explicit parameter so
// authorization stays testable without simulating requests.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get("currentUser")
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
