package http

import (
	"github.com/pxeeio/flex-api/internal/config"
	"github.com/pxeeio/flex-api/internal/logger"
	"github.com/pxeeio/flex-api/internal/service"
)

type Handler struct {
	services *service.Services

	// auth supplies the session cookie name, TTL, and secure flag.
	auth config.Auth

	// isProduction suppresses internal error details in API responses.
	isProduction bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:     services,
		auth:         cfg.Auth,
		isProduction: cfg.App.IsProduction(),
		logger:       logger,
	}
}
