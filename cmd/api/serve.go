package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/cddiller/dashboard-api/internal/application/auth"
	"github.com/cddiller/dashboard-api/internal/application/page"
	"github.com/cddiller/dashboard-api/internal/application/usecase"
	"github.com/cddiller/dashboard-api/internal/domain/navigation"
	infrapdf "github.com/cddiller/dashboard-api/internal/infrastructure/pdf"
	httpRouter "github.com/cddiller/dashboard-api/internal/interfaces/http"
	"github.com/cddiller/dashboard-api/pkg/config"
	"github.com/cddiller/dashboard-api/pkg/currency"
	"github.com/cddiller/dashboard-api/pkg/logger"
)

var logLevel string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta el servidor HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.New(logger.Config{Env: cfg.App.Env, Level: logLevel})
		return serve(cmd.Context(), cfg, log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "trace, debug, info, warn, error")
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("sessions", cfg.Session.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		if cfg.App.Env != "development" {
			return errors.New("JWT_SECRET es obligatorio fuera de development")
		}
		cfg.JWT.Secret = "development-only-secret"
		log.Warn().Msg("JWT_SECRET vacío, se usa un secreto de desarrollo")
	}

	registry := navigation.NewRegistry()
	if err := registry.Validate(); err != nil {
		return err
	}
	lang, rates, defaultCurrency, err := locale(cfg.Locale)
	if err != nil {
		return err
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	sess, err := openSessions(ctx, cfg)
	if err != nil {
		return err
	}
	defer sess.close()

	auditSink, closeAudit := openAudit(cfg, log)
	defer closeAudit()

	authSvc := auth.NewService(
		auth.NewRepositoryProvider(store.identities, bcrypt.DefaultCost),
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
		auth.WithLimiter(sess.limiter),
		auth.WithAudit(auditSink),
		auth.WithLogger(log.Named("auth")),
	)
	catalog, err := usecase.NewCatalog(store.records, store.identities, bcrypt.DefaultCost, auditSink, log.Named("records"))
	if err != nil {
		return err
	}
	loader := page.NewLoader(
		registry,
		catalog,
		usecase.NewReportUseCase(store.records, store.identities),
		currency.NewFormatter(lang, rates),
		page.WithLocale(lang),
		page.WithDefaultCurrency(defaultCurrency),
		page.WithExporter(infrapdf.NewTableExporter(cfg.App.Name)),
		page.WithLogger(log.Named("pages")),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    "CDDiller API",
		}))
	} else {
		log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:     authSvc,
		Sessions: sess.storages,
		Registry: registry,
		Guard:    navigation.NewGuard(registry),
		Catalog:  catalog,
		Loader:   loader,
		AppName:  cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
