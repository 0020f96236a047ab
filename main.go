package main

import (
	"net/http"
	"os"
	"time"

	"github.com/kikelara/kikelara-backend-go/config"
	"github.com/kikelara/kikelara-backend-go/handlers"
	"github.com/kikelara/kikelara-backend-go/mailer"
	"github.com/kikelara/kikelara-backend-go/routes"
	"github.com/kikelara/kikelara-backend-go/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: config.AllowedOrigins(),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// Flat-file store, created and seeded on first boot
	dataDir := config.GetEnv("DATA_DIR", "data")
	store, err := storage.New(dataDir, handlers.DefaultDeliveryFee)
	if err != nil {
		log.Fatal().Err(err).Str("dir", dataDir).Msg("failed to initialize data dir")
	}

	handlers.Init(store, mailer.FromEnv())

	// Setup routes
	routes.SetupRoutes(e)

	// Start the server
	port := config.GetEnv("PORT", "4000")
	log.Info().Str("port", port).Str("dataDir", dataDir).Msg("backend starting")
	e.Logger.Fatal(e.Start(":" + port))
}
