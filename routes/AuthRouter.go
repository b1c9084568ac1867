package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Pawarnaren/ConnectApp-Backend/controllers"
)

func AuthRouter(incomingRoutes *gin.Engine, userController *controllers.UserController) {
	incomingRoutes.POST("/signup", userController.SignUp)
	incomingRoutes.POST("/login", userController.Login)
}
