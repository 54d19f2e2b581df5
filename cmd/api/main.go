package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/campusconnect/backend/internal/pkg/logger"
	"github.com/campusconnect/backend/internal/server"
)

// @title CampusConnect API
// @version 1.0
// @description API for the CampusConnect campus networking platform: study groups, clubs, events, alumni connections and projects.

// @contact.name API Support
// @contact.email support@campusconnect.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// blocks until shutdown
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
