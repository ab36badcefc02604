package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cddiller/dashboard-api/internal/application/ports"
	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
	"github.com/cddiller/dashboard-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Service casos de uso de autenticación compartidos por todas las instancias de cliente.
// Cada instancia de cliente obtiene su SessionStore con ForClient.
type Service struct {
	provider IdentityProvider
	jwtCfg   JWTConfig
	limiter  ports.LoginLimiter
	audit    ports.AuditPublisher
	log      *logger.Logger
	now      func() time.Time
}

// Option ajusta dependencias opcionales del Service.
type Option func(*Service)

// WithLimiter activa el límite de intentos de login.
func WithLimiter(l ports.LoginLimiter) Option {
	return func(s *Service) { s.limiter = l }
}

// WithAudit publica los eventos de autenticación.
func WithAudit(a ports.AuditPublisher) Option {
	return func(s *Service) { s.audit = a }
}

// WithLogger reemplaza el logger (por defecto Nop).
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService construye el servicio de auth.
func NewService(provider IdentityProvider, jwtCfg JWTConfig, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		jwtCfg:   jwtCfg,
		audit:    ports.NopAudit{},
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ForClient devuelve el SessionStore de una instancia de cliente sobre su almacenamiento durable.
func (s *Service) ForClient(clientID string, storage repository.SessionStorage) *SessionStore {
	return &SessionStore{svc: s, clientID: clientID, storage: storage}
}

// Signup crea una identidad pending. No crea sesión.
func (s *Service) Signup(ctx context.Context, email, password, name string, role entity.Role) (*entity.Identity, error) {
	exists, err := s.provider.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("auth: signup: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}
	id, err := s.provider.Create(ctx, email, password, name, role)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, ports.AuditEvent{Type: ports.EventSignup, ActorID: id.ID, ActorRole: string(id.Role), Email: email})
	return id.Public(), nil
}

// authenticate valida credenciales, límite de intentos y estado de la cuenta.
func (s *Service) authenticate(ctx context.Context, clientID, email, password string) (*entity.Identity, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	if s.limiter != nil {
		allowed, err := s.limiter.Hit(ctx, key)
		if err != nil {
			// sin limitador disponible se sigue adelante
			s.log.Warn().Err(err).Str("email", key).Msg("login limiter no disponible")
		} else if !allowed {
			s.publish(ctx, ports.AuditEvent{Type: ports.EventLoginBlocked, Email: email, ClientID: clientID})
			return nil, domain.ErrTooManyAttempts
		}
	}

	id, err := s.provider.FindByCredentials(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("auth: login: %w", err)
	}
	if id == nil {
		s.publish(ctx, ports.AuditEvent{Type: ports.EventLoginFailed, Email: email, ClientID: clientID})
		return nil, domain.ErrInvalidCredentials
	}
	switch id.Status {
	case entity.StatusInactive:
		s.publish(ctx, ports.AuditEvent{Type: ports.EventLoginFailed, ActorID: id.ID, Email: email, ClientID: clientID, Detail: "inactive"})
		return nil, domain.ErrAccountInactive
	case entity.StatusPending:
		s.publish(ctx, ports.AuditEvent{Type: ports.EventLoginFailed, ActorID: id.ID, Email: email, ClientID: clientID, Detail: "pending"})
		return nil, domain.ErrAccountPending
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("email", key).Msg("no se pudo reiniciar el contador de login")
		}
	}
	return id, nil
}

func (s *Service) publish(ctx context.Context, ev ports.AuditEvent) {
	if ev.At.IsZero() {
		ev.At = s.now().UTC()
	}
	if err := s.audit.Publish(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("event", ev.Type).Msg("no se pudo publicar evento de auditoría")
	}
}
