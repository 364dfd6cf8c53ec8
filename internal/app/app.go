package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-api/internal/config"
	"github.com/vancomm/minesweeper-api/internal/games"
	"github.com/vancomm/minesweeper-api/internal/middleware"
	"github.com/vancomm/minesweeper-api/internal/store"
)

const (
	shutdownTimeout = 15 * time.Second
	purgeInterval   = 10 * time.Minute
)

type App struct {
	logger  *slog.Logger
	router  *http.ServeMux
	store   store.Store
	service *games.Service
	ws      *config.WebSocket
}

func New(logger *slog.Logger) *App {
	router := http.NewServeMux()

	app := &App{
		logger: logger,
		router: router,
	}

	return app
}

// setup opens the configured store and registers every route.
func (a *App) setup(ctx context.Context) error {
	storeCfg, err := config.NewStore()
	if err != nil {
		return err
	}

	maxWait, err := config.MaxMoveWait()
	if err != nil {
		return err
	}

	s, err := store.Open(ctx, a.logger, storeCfg)
	if err != nil {
		return fmt.Errorf("unable to open store: %w", err)
	}
	a.store = s

	ws, err := config.NewWebSocket(config.AllowedOrigins())
	if err != nil {
		return err
	}
	a.ws = ws

	a.service = games.NewService(a.logger, a.store, createRand(), maxWait)
	a.loadRoutes(config.BasePath())

	return nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Recover(a.logger),
		middleware.Cors(config.AllowedOrigins()),
		middleware.Logging(a.logger),
	)
}

func (a *App) purge(ctx context.Context, p store.Purger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.Purge(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn("unable to purge expired games", slog.Any("error", err))
			} else if n > 0 {
				a.logger.Info("purged expired games", slog.Int64("count", n))
			}
		}
	}
}

func (a *App) Start(ctx context.Context) error {
	if err := a.setup(ctx); err != nil {
		return err
	}
	defer func() {
		if err := a.store.Close(); err != nil {
			a.logger.Error("unable to close store", slog.Any("error", err))
		}
	}()

	addr := config.Port()
	server := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	if p, ok := a.store.(store.Purger); ok {
		g.Go(func() error {
			a.purge(ctx, p)
			return nil
		})
	}

	a.logger.Info("server listening", slog.String("addr", addr))
	return g.Wait()
}
