package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/safepulse/internal/safepulse/http"
	"github.com/aussiebroadwan/safepulse/internal/safepulse/service"
	"github.com/aussiebroadwan/safepulse/internal/safepulse/store"
	"github.com/aussiebroadwan/safepulse/internal/safepulse/store/drivers/postgres"
	"github.com/aussiebroadwan/safepulse/internal/safepulse/store/drivers/sqlite"
	"github.com/aussiebroadwan/safepulse/pkg/cryptox"
	"github.com/aussiebroadwan/safepulse/pkg/jwtx"
	"github.com/aussiebroadwan/safepulse/pkg/phonex"
	"github.com/aussiebroadwan/safepulse/pkg/slogx"
	"github.com/aussiebroadwan/safepulse/pkg/smsx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application wires configuration, storage, services and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	notifier smsx.Notifier

	userService  *service.UserService
	alertService *service.AlertService
	verifier     jwtx.Verifier

	server *http.Server
	router *httpapi.Router
}

func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "safepulse",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(context.Background()); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wired router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("safepulse starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"sms_provider", app.notifier.Name(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, then closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down safepulse...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("safepulse stopped")
	return nil
}

// initDatabase opens PostgreSQL for postgres:// URLs and SQLite for
// anything else, then applies migrations. Both failures are fatal.
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db     store.Store
		driver string
	)

	if postgres.IsURL(app.cfg.DatabaseURL) {
		dsn, err := postgres.DSN(app.cfg.DatabaseURL, app.cfg.DatabaseName)
		if err != nil {
			return fmt.Errorf("invalid DATABASE_URL: %w", err)
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pg, err := postgres.NewStore(ctx, dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db, driver = pg, "postgres"
	} else {
		if dir := filepath.Dir(app.cfg.DatabaseURL); !strings.HasPrefix(app.cfg.DatabaseURL, "file:") && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
		}

		lite, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseURL))
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db, driver = lite, "sqlite"
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", driver)
	return nil
}

func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	secret := []byte(app.cfg.SessionSecret)
	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return fmt.Errorf("failed to initialize session signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256(secret, app.cfg.SessionIssuer, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize session verifier: %w", err)
	}
	app.verifier = verifier

	phones := phonex.NewNormalizer(app.cfg.SMSDefaultRegion)
	if !strings.EqualFold(phones.Region(), strings.TrimSpace(app.cfg.SMSDefaultRegion)) {
		app.logger.Warn("unknown default region, using fallback",
			"configured", app.cfg.SMSDefaultRegion,
			"region", phones.Region(),
		)
	}

	notifier, fallback, err := smsx.Select(smsx.Settings{
		Provider:         app.cfg.SMSProvider,
		Fast2SMSAPIKey:   app.cfg.Fast2SMSAPIKey,
		Fast2SMSEndpoint: app.cfg.Fast2SMSEndpoint,
		TwilioAccountSID: app.cfg.TwilioAccountSID,
		TwilioAuthToken:  app.cfg.TwilioAuthToken,
		TwilioFrom:       app.cfg.TwilioFrom,
		FormatE164:       phones.E164,
		HTTPClient:       &http.Client{Timeout: app.cfg.SMSTimeout},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize sms provider: %w", err)
	}
	if fallback {
		app.logger.Warn("sms credentials missing, alerts will be simulated",
			"requested", app.cfg.SMSProvider,
		)
	}
	app.notifier = notifier

	app.userService = &service.UserService{
		Store:  app.db,
		Hasher: cryptox.NewPINHasher(pepper),
		Sessions: &service.SessionService{
			Signer: signer,
			Issuer: app.cfg.SessionIssuer,
			TTL:    app.cfg.SessionTTL,
		},
		Phones: phones,
	}
	app.alertService = &service.AlertService{
		Notifier:    notifier,
		Phones:      phones,
		Timeout:     app.cfg.SMSTimeout,
		MaxParallel: app.cfg.SMSMaxParallel,
	}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.verifier, BuildVersion, app.db, app.logger)
	router.UserService = app.userService
	router.AlertService = app.alertService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
