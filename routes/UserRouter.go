package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Pawarnaren/ConnectApp-Backend/controllers"
)

func UserRouter(incomingRoutes *gin.Engine, userController *controllers.UserController, connectionController *controllers.ConnectionController, requireAuth gin.HandlerFunc) {
	authorized := incomingRoutes.Group("")
	authorized.Use(requireAuth)

	authorized.GET("/user", userController.GetCurrentUserProfile)
	authorized.PUT("/user/change-email", userController.UpdateUserEmail)
	authorized.PUT("/user/change-password", userController.UpdateUserPassword)

	authorized.GET("/users/:username", userController.GetUserProfile)
	authorized.PUT("/users/:username/update-biotag", userController.UpdateUserProfile)
	authorized.POST("/users/uploadProfilePicture", userController.UploadProfilePicture)
	authorized.GET("/users/searchtag/:tag", userController.SearchUsersByTag)
	authorized.GET("/all-users", userController.GetAllUsers)

	authorized.POST("/users/follow", connectionController.FollowUser)
	authorized.POST("/users/unfollow", connectionController.UnfollowUser)
	authorized.GET("/followers/:user_id", connectionController.GetAllFollowers)
	authorized.GET("/following/:user_id", connectionController.GetAllFollowing)
}
