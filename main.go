package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/Pawarnaren/ConnectApp-Backend/config"
	"github.com/Pawarnaren/ConnectApp-Backend/controllers"
	"github.com/Pawarnaren/ConnectApp-Backend/database"
	"github.com/Pawarnaren/ConnectApp-Backend/helper"
	"github.com/Pawarnaren/ConnectApp-Backend/intializers"
	"github.com/Pawarnaren/ConnectApp-Backend/middlewares"
	"github.com/Pawarnaren/ConnectApp-Backend/routes"
	"github.com/Pawarnaren/ConnectApp-Backend/store/mongostore"
)

func init() {
	intializers.LoadEnvVariables()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx, client, cfg.DBName); err != nil {
		log.Println("could not create indexes:", err)
	}

	bucket, err := database.OpenGridFSBucket(client, cfg.DBName)
	if err != nil {
		log.Fatal(err)
	}

	users := mongostore.NewUserStore(client, cfg.DBName)
	posts := mongostore.NewPostStore(client, cfg.DBName)
	images := mongostore.NewImageStore(bucket)
	tokens := helper.NewTokenService(cfg.SecretKey, cfg.TokenTTL)

	userController := controllers.NewUserController(users, images, tokens, cfg.DefaultProfileImage)
	connectionController := controllers.NewConnectionController(users)
	postController := controllers.NewPostController(posts, users)

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://127.0.0.1:5500", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-User-Email"},
		AllowCredentials: true,
	}))

	requireAuth := middlewares.RequireAuth(tokens, users)
	identifyByEmail := middlewares.IdentifyByEmail(users)

	routes.AuthRouter(router, userController)
	routes.HomeRouter(router, userController, requireAuth, identifyByEmail)
	routes.UserRouter(router, userController, connectionController, requireAuth)
	routes.PostRouter(router, postController, requireAuth)

	heartbeat := cron.New(cron.WithSeconds())
	if _, err := heartbeat.AddFunc("*/10 * * * * *", func() {
		log.Println("Cron job is running")
	}); err != nil {
		log.Fatal(err)
	}
	heartbeat.Start()
	defer heartbeat.Stop()

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
