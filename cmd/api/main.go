package main

import (
	"context"
	"os"

	"github.com/yigit/benchtrack/internal/bootstrap"
	"github.com/yigit/benchtrack/internal/pkg/logger"
	"github.com/yigit/benchtrack/internal/server"
)

// @title BenchTrack API
// @version 1.0
// @description API for tracking bench consultants, opportunities, attendance and training

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	ctx := context.Background()

	srv, err := server.NewServer(ctx, bootstrap.ConfigPath())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
