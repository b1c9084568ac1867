package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pawarnaren/ConnectApp-Backend/controllers"
)

func HomeRouter(incomingRoutes *gin.Engine, userController *controllers.UserController, requireAuth, identifyByEmail gin.HandlerFunc) {
	incomingRoutes.GET("/checkup", func(c *gin.Context) {
		c.String(http.StatusOK, "Backend is running correctly")
	})

	incomingRoutes.GET("/validate", requireAuth, userController.ValidateUser)
	incomingRoutes.GET("/validate-email", identifyByEmail, userController.ValidateUserByEmail)

	incomingRoutes.GET("/images/:image_id", userController.GetImage)
}
