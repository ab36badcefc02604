package ports

import (
	"context"
	"time"
)

// Tipos de evento de auditoría.
const (
	EventLoginSucceeded   = "auth.login.succeeded"
	EventLoginFailed      = "auth.login.failed"
	EventLoginBlocked     = "auth.login.blocked"
	EventSignup           = "auth.signup"
	EventLogout           = "auth.logout"
	EventSessionDiscarded = "auth.session.discarded"
	EventRecordDeleted    = "record.deleted"
	EventRecordTrashed    = "record.trashed"
	EventRecordRestored   = "record.restored"
	EventStatusChanged    = "record.status_changed"
)

// AuditEvent hecho relevante para auditoría. Los campos vacíos se omiten al serializar.
type AuditEvent struct {
	Type      string    `json:"type"`
	ActorID   string    `json:"actor_id,omitempty"`
	ActorRole string    `json:"actor_role,omitempty"`
	Email     string    `json:"email,omitempty"`
	ClientID  string    `json:"client_id,omitempty"`
	Kind      string    `json:"kind,omitempty"`
	RecordID  string    `json:"record_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}

// AuditPublisher puerto de salida para eventos de auditoría (RabbitMQ, log, memoria).
// Un fallo al publicar nunca debe abortar la operación auditada.
type AuditPublisher interface {
	Publish(ctx context.Context, event AuditEvent) error
}

// NopAudit descarta los eventos.
type NopAudit struct{}

func (NopAudit) Publish(context.Context, AuditEvent) error { return nil }
