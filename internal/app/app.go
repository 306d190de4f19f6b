package app

import (
	"context"
	"fmt"
	"net/http"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/haguru/torii/config"
	"github.com/haguru/torii/internal/authservice"
	fileStore "github.com/haguru/torii/internal/credstore/file"
	mongoStore "github.com/haguru/torii/internal/credstore/mongo"
	postgresStore "github.com/haguru/torii/internal/credstore/postgres"
	sqliteStore "github.com/haguru/torii/internal/credstore/sqlite"
	"github.com/haguru/torii/internal/interfaces"
	"github.com/haguru/torii/internal/middleware"
	"github.com/haguru/torii/internal/routes"
	"github.com/haguru/torii/internal/server"
	"github.com/haguru/torii/internal/sessions"
	"github.com/haguru/torii/pkg/metrics"
	"github.com/haguru/torii/pkg/zerolog"
	"github.com/haguru/torii/web"
)

// App represents the main application, containing server and configuration.
// It initializes with a config file, validates settings, and wires the
// credential store, session registry, auth service and routes.
type App struct {
	Server interfaces.Server
	Config *config.ServiceConfig
	Logger interfaces.Logger
	store  interfaces.CredentialStore
}

// NewApp creates and configures a new App instance.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
	}

	// Validate the configuration
	validator := structValidator.New()
	if err := validator.Struct(cfg); err != nil {
		errors := err.(structValidator.ValidationErrors)
		return nil, fmt.Errorf("validation error: %s", errors)
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)
	app.Logger = logger

	// Initialize server, storage, and metrics
	serverInstance := server.NewServer(cfg.Host, cfg.Port, logger)
	app.Server = serverInstance

	metricsInstance := app.initializeMetrics()

	store, err := app.initializeCredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %v", err)
	}
	if err := store.EnsureIndices(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure indices: %v", err)
	}
	app.store = store

	sessionRegistry := sessions.NewRegistry()
	authService := authservice.NewAuthService(store, sessionRegistry, logger, cfg.Session.HashScheme)

	route := routes.NewRoute(
		metricsInstance,
		authService,
		logger,
		web.GetAssets(cfg.WWWDir),
		cfg.Redirects,
		cfg.Session.CookieName,
		validator,
	)

	if err := app.addRoutes(route, metricsInstance); err != nil {
		return nil, err
	}

	return app, nil
}

// Run starts the server and blocks until it exits.
func (app *App) Run() error {
	if err := app.Server.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %v", err)
	}

	return nil
}

// Close releases the credential store backend.
func (app *App) Close(ctx context.Context) error {
	if app.store != nil {
		return app.store.Close(ctx)
	}
	return nil
}

func (app *App) addRoutes(route *routes.Route, metricsInstance interfaces.Metrics) error {
	metricsHandler := promhttp.HandlerFor(
		metricsInstance.GetRegistry(),
		promhttp.HandlerOpts{})

	tracedMetricsHandler := otelhttp.NewHandler(metricsHandler, routes.MetricsRouteAPI)

	loginHandler := http.Handler(http.HandlerFunc(route.LoginForm))
	if app.Config.RateLimit.LoginRPS > 0 {
		limiter := rate.NewLimiter(
			rate.Limit(app.Config.RateLimit.LoginRPS),
			app.Config.RateLimit.LoginBurst,
		)
		loginHandler = middleware.RateLimitMiddleware(
			limiter, metricsInstance, routes.LoginRateLimitedTotal)(loginHandler)
	}

	table := []struct {
		method  string
		pattern string
		handler http.HandlerFunc
	}{
		{http.MethodGet, routes.MetricsRouteAPI, tracedMetricsHandler.ServeHTTP},
		{http.MethodGet, routes.HealthRoute, route.Healthz},
		{http.MethodGet, routes.RootRoute, route.Root},
		{http.MethodGet, routes.LandingENRoute, route.LandingEN},
		{http.MethodGet, routes.LandingARRoute, route.LandingAR},
		{http.MethodGet, routes.LoginPageRoute, route.LoginPageHandler},
		{http.MethodGet, routes.RegisterPageRoute, route.RegisterPageHandler},
		{http.MethodGet, routes.ProtectedPageRoute, route.Protected},
		{http.MethodGet, routes.LogoutRoute, route.Logout},
		{http.MethodPost, routes.RegisterFormRoute, route.RegisterForm},
		{http.MethodPost, routes.LoginFormRoute, loginHandler.ServeHTTP},
		{http.MethodGet, routes.FallbackRoute, route.Fallback},
	}

	for _, entry := range table {
		if err := app.Server.AddRoute(entry.method, entry.pattern, entry.handler); err != nil {
			return fmt.Errorf("failed to add route %s %s: %v", entry.method, entry.pattern, err)
		}
	}

	// The external redirect table is configuration-driven.
	for pattern := range app.Config.Redirects {
		if err := app.Server.AddRoute(http.MethodGet, pattern, route.ExternalRedirect); err != nil {
			return fmt.Errorf("failed to add redirect route %s: %v", pattern, err)
		}
	}

	// Unmatched routes and methods funnel to the themed 404.
	app.Server.SetNotFoundHandler(route.NotFound)

	return nil
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := metrics.NewMetrics(app.Config.ServiceName)
	appMetrics.RegisterCounter(routes.RegisterRequestsTotal, routes.RegisterRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.RegisterSuccessTotal, routes.RegisterSuccessTotalHelp)
	appMetrics.RegisterCounter(routes.RegisterErrorsTotal, routes.RegisterErrorsTotalHelp)
	appMetrics.RegisterHistogram(
		routes.RegisterDurationSeconds,
		routes.RegisterDurationSecondsHelp,
		routes.RegisterDurationSecondsBuckets)

	appMetrics.RegisterCounter(routes.LoginRequestsTotal, routes.LoginRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.LoginSuccessTotal, routes.LoginSuccessTotalHelp)
	appMetrics.RegisterCounter(routes.LoginFailedTotal, routes.LoginFailedTotalHelp)
	appMetrics.RegisterCounter(routes.LoginRateLimitedTotal, routes.LoginRateLimitedTotalHelp)
	appMetrics.RegisterHistogram(
		routes.LoginDurationSeconds,
		routes.LoginDurationSecondsHelp,
		routes.LoginDurationSecondsBuckets)

	appMetrics.RegisterCounter(routes.NotFoundTotal, routes.NotFoundTotalHelp)

	return appMetrics
}

func (app *App) initializeCredentialStore() (interfaces.CredentialStore, error) {
	cfg := app.Config.Storage

	switch cfg.Type {
	case "file":
		return fileStore.NewStore(cfg.File.Path)

	case "sqlite":
		return sqliteStore.NewStore(cfg.SQLite.Path)

	case "postgres":
		return postgresStore.NewStore(
			context.Background(),
			cfg.Postgres.DSN,
			cfg.Postgres.MaxOpenConns,
			cfg.Postgres.MaxIdleConns,
			cfg.Postgres.ConnMaxLifetime,
		)

	case "mongo":
		return mongoStore.NewStore(
			context.Background(),
			cfg.MongoDB.DSN,
			cfg.MongoDB.DatabaseName,
			cfg.MongoDB.Timeout,
		)

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
