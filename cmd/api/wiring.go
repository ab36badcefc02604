package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/cddiller/dashboard-api/internal/application/ports"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
	"github.com/cddiller/dashboard-api/internal/infrastructure/audit"
	"github.com/cddiller/dashboard-api/internal/infrastructure/fixtures"
	"github.com/cddiller/dashboard-api/internal/infrastructure/memory"
	"github.com/cddiller/dashboard-api/internal/infrastructure/postgres"
	"github.com/cddiller/dashboard-api/internal/infrastructure/rabbitmq"
	infraredis "github.com/cddiller/dashboard-api/internal/infrastructure/redis"
	"github.com/cddiller/dashboard-api/pkg/config"
	"github.com/cddiller/dashboard-api/pkg/currency"
	"github.com/cddiller/dashboard-api/pkg/logger"
)

// storage repositorios de datos según STORAGE_DRIVER.
type storage struct {
	identities repository.IdentityRepository
	records    repository.RecordRepository
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == "postgres" {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &storage{
			identities: postgres.NewIdentityRepository(pool),
			records:    postgres.NewRecordRepository(pool),
			close:      pool.Close,
		}, nil
	}

	identities, records := memory.NewIdentityRepo(), memory.NewRecordRepo()
	res, err := fixtures.Load(ctx, identities, records, 0, time.Now())
	if err != nil {
		return nil, err
	}
	log.Warn().Int("identities", res.Identities).Int("records", res.Records).
		Msg("almacenamiento en memoria con datos de demo")
	return &storage{identities: identities, records: records, close: func() {}}, nil
}

// sessions almacenamiento durable de sesiones y limitador de login según SESSION_DRIVER.
type sessions struct {
	storages repository.SessionStorageFactory
	limiter  ports.LoginLimiter
	close    func()
}

func openSessions(ctx context.Context, cfg *config.Config) (*sessions, error) {
	ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	window := time.Duration(cfg.Session.LoginWindowMin) * time.Minute

	if cfg.Session.Driver == "redis" {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &sessions{
			storages: infraredis.NewSessionStorages(client, ttl),
			limiter:  infraredis.NewLoginLimiter(client, cfg.Session.LoginMaxAttempts, window),
			close:    func() { _ = client.Close() },
		}, nil
	}

	limiter := memory.NewLoginLimiter(cfg.Session.LoginMaxAttempts, window)
	stop := make(chan struct{})
	if window > 0 {
		go func() {
			ticker := time.NewTicker(window)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					limiter.Cleanup()
				case <-stop:
					return
				}
			}
		}()
	}
	return &sessions{
		storages: memory.NewSessionStorages(),
		limiter:  limiter,
		close:    func() { close(stop) },
	}, nil
}

// openAudit siempre registra en el log; si hay RABBITMQ_URL también publica en la cola.
// Sin broker disponible se sigue solo con el log.
func openAudit(cfg *config.Config, log *logger.Logger) (ports.AuditPublisher, func()) {
	sinks := audit.Fanout{audit.NewLogPublisher(log)}
	if cfg.RabbitMQ.URL == "" {
		return sinks, func() {}
	}
	pub, err := rabbitmq.NewAuditPublisher(cfg.RabbitMQ)
	if err != nil {
		log.Error().Err(err).Msg("RabbitMQ no disponible, auditoría solo en log")
		return sinks, func() {}
	}
	return append(sinks, pub), func() { _ = pub.Close() }
}

// locale idioma, tasas y moneda por defecto de la configuración.
func locale(cfg config.LocaleConfig) (language.Tag, currency.Rates, currency.Code, error) {
	tag, err := language.Parse(cfg.Language)
	if err != nil {
		return language.Und, nil, "", fmt.Errorf("config: APP_LOCALE inválido %q: %w", cfg.Language, err)
	}
	code, err := currency.Parse(cfg.DefaultCurrency)
	if err != nil {
		return language.Und, nil, "", fmt.Errorf("config: DEFAULT_CURRENCY: %w", err)
	}
	rates := currency.Rates{
		currency.UZS: decimal.NewFromInt(1),
		currency.USD: decimal.NewFromFloat(cfg.RateUSD),
		currency.EUR: decimal.NewFromFloat(cfg.RateEUR),
		currency.RUB: decimal.NewFromFloat(cfg.RateRUB),
	}
	return tag, rates, code, nil
}
