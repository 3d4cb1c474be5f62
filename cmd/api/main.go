package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/GScottKnight/ParcelNewsFetchV2/db"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/handler"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	eventRepo := repository.NewEventRepository(db.DB)
	articleRepo := repository.NewArticleRepository(db.DB)
	eventHandler := handler.NewEventHandler(eventRepo, articleRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/api/canonical", eventHandler.GetCanonical)
	r.GET("/api/stage2", eventHandler.GetExtractions)
	r.GET("/api/stage1_relevant", eventHandler.GetRelevant)
	r.GET("/api/health", eventHandler.GetHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
