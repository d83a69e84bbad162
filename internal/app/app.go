package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/snake-arena-server/internal/config"
	"github.com/vovakirdan/snake-arena-server/internal/core"
	"github.com/vovakirdan/snake-arena-server/internal/store"
	"github.com/vovakirdan/snake-arena-server/internal/store/sqlite"
	transporthttp "github.com/vovakirdan/snake-arena-server/internal/transport/http"
)

// App wires together the score store, the game hub, and the HTTP transport.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	store           store.ScoreStore
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	logger.Info().Str("db_path", cfg.DatabasePath).Msg("score database initialized")

	hub := core.NewHub(gameSettings(cfg.Game), st, logger)
	server := transporthttp.NewServer(hub, st, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		store:           st,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup drains the hub and closes the store.
func (a *App) cleanup() {
	if a.hub != nil {
		a.hub.Shutdown()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}

func gameSettings(g config.GameConfig) core.Settings {
	s := core.DefaultSettings()
	if g.TileCount > 1 {
		s.TileCount = g.TileCount
	}
	if g.TickInterval > 0 {
		s.TickInterval = g.TickInterval
	}
	if g.MinTickInterval > 0 {
		s.MinTickInterval = g.MinTickInterval
	}
	if g.SpeedupStep > 0 {
		s.SpeedupStep = g.SpeedupStep
	}
	if g.SpeedupEvery > 0 {
		s.SpeedupEvery = g.SpeedupEvery
	}
	if g.MaxPlayers > 1 {
		s.MaxPlayers = g.MaxPlayers
	}
	if g.MinPlayers > 1 {
		s.MinPlayers = g.MinPlayers
	}
	if g.FoodReward > 0 {
		s.FoodReward = g.FoodReward
	}
	if g.RespawnAttempts > 0 {
		s.RespawnAttempts = g.RespawnAttempts
	}
	return s
}
