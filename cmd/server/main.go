package main

import (
	"log"
	"os"
	"time"

	"inkwell/internal/db"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/router"
	"inkwell/internal/services"
	"inkwell/internal/store"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	st := store.NewDBStore(db.Init())

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	tokens := services.NewTokenService(secret, 24*time.Hour)
	popularity := services.NewPopularityService(st)
	posts := services.NewPostService(st, popularity)

	r := gin.Default()

	authHandler := handlers.NewAuthHandler(st, tokens)
	postHandler := handlers.NewPostHandler(posts, utils.NewCache(500))
	router.RegisterRoutes(r, authHandler, postHandler, middleware.AuthRequired(tokens, st))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("inkwell server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
