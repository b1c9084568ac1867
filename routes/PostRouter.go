package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Pawarnaren/ConnectApp-Backend/controllers"
)

func PostRouter(incomingRoutes *gin.Engine, postController *controllers.PostController, requireAuth gin.HandlerFunc) {
	// Demo feed and owner listing are public by contract.
	incomingRoutes.GET("/posts", postController.GetDemoPosts)
	incomingRoutes.GET("/posts/owner/:email", postController.GetPostsByOwnerEmail)

	authorized := incomingRoutes.Group("")
	authorized.Use(requireAuth)

	authorized.POST("/posts/create", postController.CreatePost)
	authorized.GET("/posts/:id", postController.GetPostById)
	authorized.PUT("/posts/:id", postController.UpdatePost)
	authorized.DELETE("/posts/:id", postController.DeletePost)
	authorized.PATCH("/posts/archive/:id", postController.ArchivePost)
	authorized.GET("/posts/archived/owner/:email", postController.GetArchivedPostsByOwnerEmail)
}
