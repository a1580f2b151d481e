package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/polygame/internal/client/client"
	"github.com/dmitrijs2005/polygame/internal/client/config"
	"github.com/dmitrijs2005/polygame/internal/client/router"
	"github.com/dmitrijs2005/polygame/internal/client/services"
	"github.com/dmitrijs2005/polygame/internal/client/storage"
	"github.com/dmitrijs2005/polygame/internal/logging"
	"github.com/dmitrijs2005/polygame/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	session *services.SessionStore
	markets *services.MarketStore
	trading *services.TradingStore
	router  *router.Router
	reader  *bufio.Reader
	out     io.Writer
	closer  io.Closer
}

// NewApp opens the session storage selected by c, restores the persisted
// session and builds the stores and the router on top of one API client.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repo, closer, err := storage.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}

	api := client.NewHTTPClient(c.ServerBaseURL, client.WithTimeout(c.RequestTimeout))

	session, err := services.NewSessionStore(ctx, api, repo, log)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	api.SetTokenSource(session)

	app, err := newApp(api, session, log, os.Stdin, os.Stdout)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	app.config = c
	app.closer = closer
	return app, nil
}

func newApp(api client.Client, session *services.SessionStore, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	guard, err := router.NewGuard(router.DefaultRoutes(), session)
	if err != nil {
		return nil, err
	}

	return &App{
		log:     log,
		session: session,
		markets: services.NewMarketStore(api, log),
		trading: services.NewTradingStore(api, log),
		router:  router.New(guard, log),
		reader:  bufio.NewReader(in),
		out:     out,
	}, nil
}

// Run serves metrics when configured and runs the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if a.config != nil && a.config.MetricsAddr != "" {
		go a.StartMetricsServer(ctx, a.config.MetricsAddr)
	}
	a.Root(ctx)
}

func (a *App) Close() {
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil {
		a.log.Warn(context.Background(), "close session storage", "error", err)
	}
	a.closer = nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// metricsRouter exposes the Prometheus registry.
func metricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	return r
}

// StartMetricsServer serves /metrics on addr until ctx is cancelled.
func (a *App) StartMetricsServer(ctx context.Context, addr string) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metricsRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.log.Info(ctx, "metrics server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Error(ctx, "metrics server stopped", "error", err)
	}
}
