package http_init

import (
	"context"
	"errors"
	"expvar"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type ControllerPool struct {
	pool    []Controller
	rg      *gin.RouterGroup
	engine  *gin.Engine
	wrap    func(http.Handler) http.Handler
	logger  *slog.Logger
	prefix  string
	handler http.Handler
}

type PoolOption func(*ControllerPool)

func WithLogger(logger *slog.Logger) PoolOption {
	return func(p *ControllerPool) {
		p.logger = logger
	}
}

// WithPrefix mounts every controller under prefix. Routes are served from the root by default.
func WithPrefix(prefix string) PoolOption {
	return func(p *ControllerPool) {
		p.prefix = prefix
	}
}

// WithMiddleware installs gin middleware ahead of every route.
func WithMiddleware(mw ...gin.HandlerFunc) PoolOption {
	return func(p *ControllerPool) {
		p.engine.Use(mw...)
	}
}

// WithHandlerWrapper wraps the whole engine, e.g. for request metrics.
func WithHandlerWrapper(wrap func(http.Handler) http.Handler) PoolOption {
	return func(p *ControllerPool) {
		p.wrap = wrap
	}
}

func NewControllerPool(opts ...PoolOption) *ControllerPool {
	engine := gin.New()
	engine.Use(gin.Recovery())

	pool := &ControllerPool{
		pool:   make([]Controller, 0, 10),
		engine: engine,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(pool)
	}
	pool.rg = engine.Group(pool.prefix)

	engine.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/debug/vars", gin.WrapH(expvar.Handler()))
	return pool
}

func (pool *ControllerPool) Add(c Controller) {
	pool.pool = append(pool.pool, c)
}

func (pool *ControllerPool) Register() {
	for _, c := range pool.pool {
		c.RegisterRoutes(pool.rg)
	}
}

// Handler returns the engine with the configured wrapper applied.
func (pool *ControllerPool) Handler() http.Handler {
	if pool.handler != nil {
		return pool.handler
	}
	pool.handler = pool.engine
	if pool.wrap != nil {
		pool.handler = pool.wrap(pool.engine)
	}
	return pool.handler
}

// RunAll serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (pool *ControllerPool) RunAll(ctx context.Context, host, port string) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           pool.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		pool.logger.Info("starting HTTP server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	pool.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
