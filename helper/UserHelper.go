package helper

import (
	"github.com/gin-gonic/gin"

	"github.com/Pawarnaren/ConnectApp-Backend/models"
)

// PrincipalKey is the context key the auth middlewares store the resolved
// user under.
const PrincipalKey = "user"

// CurrentUser returns the authenticated principal attached by the auth
// middleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
