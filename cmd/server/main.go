package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nvasko/enterprise-search-webapp/internal/api/handlers"
	"github.com/nvasko/enterprise-search-webapp/internal/config"
	"github.com/nvasko/enterprise-search-webapp/internal/discovery"
	"github.com/nvasko/enterprise-search-webapp/internal/health"
	"github.com/nvasko/enterprise-search-webapp/internal/middleware"
	"github.com/nvasko/enterprise-search-webapp/internal/search"
	"github.com/nvasko/enterprise-search-webapp/pkg/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Configuration validation failed")
	}

	client := discovery.NewClient(
		cfg.Discovery.Endpoint,
		cfg.Google.ProjectID,
		cfg.Google.Location,
		cfg.Discovery.APIKey,
		logger,
	)

	engines := make([]search.Engine, len(cfg.Engines))
	for i, e := range cfg.Engines {
		engines[i] = search.Engine{
			Name:        e.Name,
			EngineID:    e.EngineID,
			DatastoreID: e.DatastoreID,
		}
	}
	directory := search.NewDirectory(engines)

	dispatcher := search.NewDispatcher(client, directory, logger)
	checker := health.NewChecker(cfg.Discovery.Endpoint, logger)

	searchHandler := handlers.NewSearchHandler(dispatcher, directory, cfg, logger)
	documentHandler := handlers.NewDocumentHandler(client, directory, logger)
	healthHandler := handlers.NewHealthHandler(checker)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())
	router.Use(cors.Default())
	router.Use(middleware.NewRateLimiter(cfg.Server.RateLimit).RateLimit())

	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/static", "web/static")

	router.GET("/", searchHandler.HandleWidgetsPage)
	router.GET("/search", searchHandler.HandleSearchPage)
	router.POST("/search", searchHandler.HandleSearchSubmit)
	router.GET("/api/documents", documentHandler.HandleListDocuments)
	router.GET("/health", healthHandler.HandleHealth)

	logger.WithField("port", cfg.Server.Port).Info("Starting search web server")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server exited")
	}
}
