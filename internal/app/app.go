package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/roster-manager/internal/config"
	"github.com/riskibarqy/roster-manager/internal/domain/roster"
	"github.com/riskibarqy/roster-manager/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/roster-manager/internal/interfaces/httpapi"
	"github.com/riskibarqy/roster-manager/internal/platform/logging"
	"github.com/riskibarqy/roster-manager/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	var seed []roster.Player
	if cfg.SeedRoster {
		seed = memory.SeedPlayers()
	}
	rosterRepo := memory.NewRosterRepository(seed)

	rosterSvc := usecase.NewRosterService(rosterRepo)

	handler := httpapi.NewHandler(rosterSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.APIPrefix, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
