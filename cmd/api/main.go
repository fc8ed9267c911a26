package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"lingua-cms/internal/config"
	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/infra/adapter/persistence/postgres"
	"lingua-cms/internal/infra/adapter/persistence/sqlite"
	"lingua-cms/internal/infra/adapter/persistence/sqlstore"
	"lingua-cms/internal/infra/db"
	"lingua-cms/internal/infra/oidc"
	"lingua-cms/internal/infra/render"
	"lingua-cms/internal/observability/logging"
	"lingua-cms/internal/observability/metrics"
	"lingua-cms/internal/observability/tracing"
	"lingua-cms/internal/repository"
	"lingua-cms/internal/resilience/circuitbreaker"
	"lingua-cms/internal/service/authz"
	pkgconfig "lingua-cms/pkg/config"

	homepageUC "lingua-cms/internal/usecase/homepage"
	languageUC "lingua-cms/internal/usecase/language"
	linkUC "lingua-cms/internal/usecase/link"
	"lingua-cms/internal/usecase/localized"
	pageUC "lingua-cms/internal/usecase/page"
	postUC "lingua-cms/internal/usecase/post"
	userbioUC "lingua-cms/internal/usecase/userbio"

	hhttp "lingua-cms/internal/handler/http"
	hauth "lingua-cms/internal/handler/http/auth"
	"lingua-cms/internal/handler/http/homepages"
	"lingua-cms/internal/handler/http/languages"
	"lingua-cms/internal/handler/http/links"
	"lingua-cms/internal/handler/http/middleware"
	"lingua-cms/internal/handler/http/pages"
	"lingua-cms/internal/handler/http/posts"
	"lingua-cms/internal/handler/http/requestid"
	"lingua-cms/internal/handler/http/userbios"

	_ "lingua-cms/docs" // swagger docs
)

//go:generate swag init -d ../../ -g cmd/api/main.go -o ../../docs --outputTypes go --parseInternal --overridesFile ../../.swaggo

// @title           lingua-cms API
// @version         1.0
// @description     Multilingual content management: languages, links, and localized posts, pages, homepages and user bios.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description OIDC access token, sent as "Bearer {token}".

const serviceName = "lingua-cms"

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	logger := initLogger()
	version := getVersion()

	shutdownTracing := initTracing(logger, version)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to flush traces", slog.Any("error", err))
		}
	}()

	database, driver := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	components := setupServer(logger, database, driver, version)
	runServer(logger, database, components, version)
}

// initLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and installs it as the default.
func initLogger() *slog.Logger {
	logger := logging.New(logging.LoadConfig())
	slog.SetDefault(logger)
	return logger
}

func initTracing(logger *slog.Logger, version string) func(context.Context) error {
	shutdown, err := tracing.Init(context.Background(), tracing.LoadConfig(serviceName, version), logger)
	if err != nil {
		logger.Error("failed to initialize tracing", slog.Any("error", err))
		os.Exit(1)
	}
	return shutdown
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) (*sql.DB, db.Driver) {
	cfg := db.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	database, err := db.Open(ctx, cfg)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.Migrate(ctx, database, cfg.Driver); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		_ = database.Close()
		os.Exit(1)
	}
	return database, cfg.Driver
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	return pkgconfig.GetEnvString("VERSION", "dev")
}

// ServerComponents holds what runServer needs.
type ServerComponents struct {
	Handler http.Handler
	Addr    string
}

// services groups the use cases behind the HTTP handlers.
type services struct {
	languages *languageUC.Service
	links     *linkUC.Service
	posts     *postUC.Service
	pages     *pageUC.Service
	homepages *homepageUC.Service
	userBios  *userbioUC.Service
}

func newServices(repos sqlstore.Repositories, tx repository.TxRunner, gate authz.Authorizer) services {
	return services{
		languages: &languageUC.Service{Repo: repos.Languages, Tx: tx, Gate: gate},
		links:     &linkUC.Service{Repo: repos.Links, Tx: tx, Gate: gate},
		posts: &postUC.Service{
			Service: &localized.Service[*entity.Post]{
				Kind:       entity.KindPost,
				Aggregates: repos.Posts,
				Contents:   repos.PostContents,
				Languages:  repos.Languages,
				Tx:         tx,
				Gate:       gate,
			},
			Links: repos.Links,
		},
		pages: &pageUC.Service{
			Service: &localized.Service[*entity.Page]{
				Kind:       entity.KindPage,
				Aggregates: repos.Pages,
				Contents:   repos.PageContents,
				Languages:  repos.Languages,
				Tx:         tx,
				Gate:       gate,
			},
			Links: repos.Links,
		},
		homepages: &homepageUC.Service{
			Service: &localized.Service[*entity.Homepage]{
				Kind:       entity.KindHomepage,
				Aggregates: repos.Homepages,
				Contents:   repos.HomepageContents,
				Languages:  repos.Languages,
				Tx:         tx,
				Gate:       gate,
			},
			Links: repos.Links,
		},
		userBios: &userbioUC.Service{
			Service: &localized.Service[*entity.UserBio]{
				Kind:       entity.KindUserBio,
				Aggregates: repos.UserBios,
				Contents:   repos.UserBioContents,
				Languages:  repos.Languages,
				Tx:         tx,
				Gate:       gate,
			},
		},
	}
}

// setupServer wires storage, authorization and routes into one handler.
func setupServer(logger *slog.Logger, database *sql.DB, driver db.Driver, version string) *ServerComponents {
	var store *sqlstore.Store
	if driver == db.DriverSQLite {
		store = sqlite.New(database)
	} else {
		store = postgres.New(database)
	}
	tx := circuitbreaker.NewTxRunner(store)

	securityPath := pkgconfig.GetEnvString("SECURITY_CONFIG", config.DefaultSecurityPath)
	security, err := config.LoadSecurityConfig(securityPath, securityPath == config.DefaultSecurityPath)
	if err != nil {
		logger.Error("failed to load security configuration",
			slog.String("path", securityPath), slog.Any("error", err))
		os.Exit(1)
	}

	oidcCfg := oidc.LoadConfig()
	security.ApplyOIDC(&oidcCfg)
	verifier, err := oidc.NewVerifier(oidcCfg, logger)
	if err != nil {
		logger.Error("failed to configure token verification", slog.Any("error", err))
		os.Exit(1)
	}

	gate := authz.NewGate(security.Grants(), logger)
	svcs := newServices(store.Repositories(), tx, gate)

	rootMux := setupRoutes(logger, database, version, svcs, verifier, security.PublicEndpoints())
	handler, err := applyMiddleware(logger, rootMux)
	if err != nil {
		logger.Error("failed to configure middleware", slog.Any("error", err))
		os.Exit(1)
	}

	return &ServerComponents{
		Handler: handler,
		Addr:    pkgconfig.GetEnvString("HTTP_ADDR", ":8080"),
	}
}

// setupRoutes registers all HTTP routes (public and protected).
func setupRoutes(
	logger *slog.Logger,
	database *sql.DB,
	version string,
	svcs services,
	verifier hauth.TokenVerifier,
	extraPublic []string,
) *http.ServeMux {
	// ヘルスチェック・メトリクス・Swagger（認証不要）
	publicMux := http.NewServeMux()
	publicMux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version, Logger: logger})
	publicMux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	publicMux.Handle("/live", &hhttp.LiveHandler{})
	publicMux.Handle("/metrics", hhttp.MetricsHandler())
	publicMux.Handle("/swagger/", httpSwagger.WrapHandler)

	renderer := render.NewRenderer()

	privateMux := http.NewServeMux()
	languages.Register(privateMux, svcs.languages)
	links.Register(privateMux, svcs.links)
	posts.Register(privateMux, svcs.posts, renderer)
	pages.Register(privateMux, svcs.pages, renderer)
	homepages.Register(privateMux, svcs.homepages, renderer)
	userbios.Register(privateMux, svcs.userBios, renderer)

	public := append(append([]string{}, hauth.DefaultPublicEndpoints...), extraPublic...)
	protected := hauth.New(verifier, public, logger).Wrap(privateMux)

	rootMux := http.NewServeMux()
	for _, p := range []string{"/health", "/ready", "/live", "/metrics", "/swagger/"} {
		rootMux.Handle(p, publicMux)
	}
	rootMux.Handle("/", protected)
	return rootMux
}

// applyMiddleware wraps the handler with the middleware chain, outermost first:
// CORS → Request ID → Tracing → Metrics → Logging → Recovery → Input validation → Body limit → Timeout.
func applyMiddleware(logger *slog.Logger, handler http.Handler) (http.Handler, error) {
	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		return nil, err
	}

	maxBody := pkgconfig.GetEnvInt64("HTTP_MAX_BODY_BYTES", 1<<20)
	timeout := pkgconfig.GetEnvDuration("HTTP_HANDLER_TIMEOUT", 0)
	if err := pkgconfig.ValidateNonNegativeDuration("HTTP_HANDLER_TIMEOUT", timeout); err != nil {
		return nil, err
	}

	var mws []func(http.Handler) http.Handler
	if corsConfig.Enabled() {
		mws = append(mws, middleware.CORS(corsConfig, logger))
		logger.Info("CORS enabled",
			slog.Any("allowed_origins", corsConfig.AllowedOrigins),
			slog.Any("allowed_methods", corsConfig.AllowedMethods),
			slog.Int("max_age", corsConfig.MaxAge))
	} else {
		logger.Info("CORS disabled (CORS_ALLOWED_ORIGINS is empty)")
	}

	mws = append(mws,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.MetricsMiddleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.InputValidation(),
		hhttp.LimitRequestBody(maxBody),
	)
	if timeout > 0 {
		mws = append(mws, hhttp.Timeout(timeout))
	}

	return hhttp.Chain(handler, mws...), nil
}

// reportDBStats publishes connection pool usage until ctx is done.
func reportDBStats(ctx context.Context, database *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := database.Stats()
			metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
		}
	}
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, database *sql.DB, components *ServerComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go reportDBStats(ctx, database, 15*time.Second)

	srv := &http.Server{
		Addr:              components.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", components.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	// cancel base context only after in-flight requests drained
	cancel()
	logger.Info("server stopped")
}
