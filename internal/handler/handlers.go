package handler

import (
	"errors"

	"github.com/aimplatform/reviewintel/internal/config"
	"github.com/aimplatform/reviewintel/internal/handler/http"
	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/internal/service"
)

var errNoHandlersAreCreated = errors.New("no handlers are created: no server addresses in config")

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
