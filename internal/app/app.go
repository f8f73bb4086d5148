package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/rconjoe/flickpicker/internal/config"
	http_init "github.com/rconjoe/flickpicker/internal/delivery/http/init"
	http_live "github.com/rconjoe/flickpicker/internal/delivery/http/live"
	http_metrics_middleware "github.com/rconjoe/flickpicker/internal/delivery/http/middleware/metrics"
	http_ratelimit_middleware "github.com/rconjoe/flickpicker/internal/delivery/http/middleware/ratelimit"
	http_movie "github.com/rconjoe/flickpicker/internal/delivery/http/movie"
	http_swagger "github.com/rconjoe/flickpicker/internal/delivery/http/swagger"
	http_vote "github.com/rconjoe/flickpicker/internal/delivery/http/vote"
	ws_catalog "github.com/rconjoe/flickpicker/internal/delivery/ws/catalog"
	infra_jsonfile_movie "github.com/rconjoe/flickpicker/internal/infra/jsonfile/movie"
	infra_pg_init "github.com/rconjoe/flickpicker/internal/infra/postgres/init"
	infra_postgres_movie "github.com/rconjoe/flickpicker/internal/infra/postgres/movie"
	usecase_movie "github.com/rconjoe/flickpicker/internal/usecase/movie"
	usecase_vote "github.com/rconjoe/flickpicker/internal/usecase/vote"
)

// CatalogRepository is what both catalog backends provide.
type CatalogRepository interface {
	usecase_movie.Repository
	usecase_vote.VoteRepository
}

// newCatalogRepository returns the configured backend and a func releasing
// whatever it holds open.
func newCatalogRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (CatalogRepository, func() error, error) {
	switch cfg.Catalog.Storage {
	case config.StorageFile:
		logger.Info("using json file catalog", slog.String("path", cfg.Catalog.File))
		return infra_jsonfile_movie.New(cfg.Catalog.File), func() error { return nil }, nil

	case config.StoragePostgres:
		db, err := infra_pg_init.EstablishConn(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		repo := infra_postgres_movie.New(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		logger.Info("using postgres catalog", slog.String("host", cfg.Postgres.Host))
		return repo, db.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown catalog storage %q", cfg.Catalog.Storage)
}

func Go(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalogRepository, closeCatalog, err := newCatalogRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeCatalog(); err != nil {
			logger.Warn("failed to close catalog storage", slog.String("error", err.Error()))
		}
	}()

	hub := ws_catalog.NewHub(ws_catalog.WithLogger(logger))
	go hub.Run(ctx)

	movieUC := usecase_movie.New(catalogRepository, hub)
	voteUC := usecase_vote.New(catalogRepository, hub)

	metrics := http_metrics_middleware.New(http_metrics_middleware.WithLogger(logger))
	metrics.Publish("flickpicker")

	middleware := make([]gin.HandlerFunc, 0, 1)
	if cfg.RateLimit.Enabled {
		limiter := http_ratelimit_middleware.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go limiter.Sweep(ctx)
		middleware = append(middleware, limiter.Middleware())
	}

	controllerPool := http_init.NewControllerPool(
		http_init.WithLogger(logger),
		http_init.WithMiddleware(middleware...),
		http_init.WithHandlerWrapper(metrics.Wrap),
	)
	controllerPool.Add(http_movie.New(movieUC, http_movie.WithLogger(logger)))
	controllerPool.Add(http_vote.New(voteUC, http_vote.WithLogger(logger)))
	controllerPool.Add(http_live.New(hub, http_live.WithLogger(logger)))
	controllerPool.Add(http_swagger.New())

	controllerPool.Register()
	return controllerPool.RunAll(ctx, cfg.HTTP.Host, cfg.HTTP.Port)
}
