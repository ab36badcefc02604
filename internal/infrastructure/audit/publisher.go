// Package audit publicadores de auditoría que no dependen de un broker.
package audit

import (
	"context"
	"errors"

	"github.com/cddiller/dashboard-api/internal/application/ports"
	"github.com/cddiller/dashboard-api/pkg/logger"
)

var (
	_ ports.AuditPublisher = (*LogPublisher)(nil)
	_ ports.AuditPublisher = Fanout(nil)
)

// LogPublisher escribe cada evento como una línea de log estructurado.
type LogPublisher struct {
	log *logger.Logger
}

// NewLogPublisher construye el publicador sobre log.
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log.Named("audit")}
}

func (p *LogPublisher) Publish(_ context.Context, ev ports.AuditEvent) error {
	e := p.log.Info().Str("event", ev.Type).Time("at", ev.At)
	if ev.ActorID != "" {
		e = e.Str("actor_id", ev.ActorID).Str("actor_role", ev.ActorRole)
	}
	if ev.Email != "" {
		e = e.Str("email", ev.Email)
	}
	if ev.ClientID != "" {
		e = e.Str("client_id", ev.ClientID)
	}
	if ev.Kind != "" {
		e = e.Str("kind", ev.Kind).Str("record_id", ev.RecordID)
	}
	if ev.Detail != "" {
		e = e.Str("detail", ev.Detail)
	}
	e.Msg("audit")
	return nil
}

// Fanout publica en todos los destinos; los errores se combinan sin cortar la entrega.
type Fanout []ports.AuditPublisher

func (f Fanout) Publish(ctx context.Context, ev ports.AuditEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
