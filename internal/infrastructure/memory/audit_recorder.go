package memory

import (
	"context"
	"sync"

	"github.com/cddiller/dashboard-api/internal/application/ports"
)

// AuditRecorder guarda los eventos publicados (tests y modo demo).
type AuditRecorder struct {
	mu     sync.Mutex
	events []ports.AuditEvent
}

var _ ports.AuditPublisher = (*AuditRecorder)(nil)

func (r *AuditRecorder) Publish(_ context.Context, ev ports.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// Events copia de los eventos en orden de publicación.
func (r *AuditRecorder) Events() []ports.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.AuditEvent(nil), r.events...)
}

// Types tipos de los eventos en orden.
func (r *AuditRecorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}
