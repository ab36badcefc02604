package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cddiller/dashboard-api/internal/application/ports"
	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
	"github.com/cddiller/dashboard-api/pkg/jwt"
)

// SessionStore sesión actual de UNA instancia de cliente.
// Estados: sin sesión → (login) → con sesión → (logout | restore fallido) → sin sesión.
// No es seguro para uso concurrente: se crea uno por request.
type SessionStore struct {
	svc      *Service
	clientID string
	storage  repository.SessionStorage
	current  *entity.Session
}

// ClientID id de la instancia de cliente.
func (s *SessionStore) ClientID() string { return s.clientID }

// Current sesión en memoria, o nil.
func (s *SessionStore) Current() *entity.Session { return s.current }

// Identity identidad de la sesión actual, o nil.
func (s *SessionStore) Identity() *entity.Identity {
	if s.current == nil {
		return nil
	}
	return s.current.User
}

// Login valida credenciales, emite un token nuevo y reemplaza cualquier sesión previa.
// Si falla, la sesión existente queda intacta.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*entity.Identity, error) {
	id, err := s.svc.authenticate(ctx, s.clientID, email, password)
	if err != nil {
		return nil, err
	}

	cfg := s.svc.jwtCfg
	token, err := jwt.Generate(cfg.Secret, id.ID, s.clientID, string(id.Role), cfg.Issuer, cfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: generar token: %w", err)
	}
	session := &entity.Session{AccessToken: token, User: id.Public()}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("auth: serializar sesión: %w", err)
	}
	if err := s.storage.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("auth: guardar sesión: %w", err)
	}
	s.current = session

	s.svc.publish(ctx, ports.AuditEvent{
		Type: ports.EventLoginSucceeded, ActorID: id.ID, ActorRole: string(id.Role),
		Email: id.EmailValue(), ClientID: s.clientID,
	})
	return session.User, nil
}

// Signup crea una identidad pending sin tocar la sesión actual.
func (s *SessionStore) Signup(ctx context.Context, email, password, name string, role entity.Role) (*entity.Identity, error) {
	return s.svc.Signup(ctx, email, password, name, role)
}

// Logout borra la sesión de memoria y del almacenamiento. Sin sesión es un no-op.
func (s *SessionStore) Logout(ctx context.Context) error {
	prev := s.current
	s.current = nil
	if err := s.storage.Clear(ctx); err != nil {
		return fmt.Errorf("auth: borrar sesión: %w", err)
	}
	if prev != nil && prev.User != nil {
		s.svc.publish(ctx, ports.AuditEvent{
			Type: ports.EventLogout, ActorID: prev.User.ID, ActorRole: string(prev.User.Role), ClientID: s.clientID,
		})
	}
	return nil
}

// Restore recupera la sesión persistida. Nunca devuelve error: el estado ilegible,
// el token vencido o una identidad inactiva o inexistente descartan la sesión.
func (s *SessionStore) Restore(ctx context.Context) (*entity.Identity, bool) {
	s.current = nil
	data, err := s.storage.Load(ctx)
	if err != nil {
		s.svc.log.Error().Err(err).Str("client_id", s.clientID).Msg("no se pudo leer la sesión persistida")
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	session, err := s.decode(data)
	if err != nil {
		s.discard(ctx, err)
		return nil, false
	}

	id, err := s.svc.provider.FindByID(ctx, session.User.ID)
	if err != nil {
		// fallo de infraestructura: no se borra la sesión, solo no se restaura en este request
		s.svc.log.Error().Err(err).Str("client_id", s.clientID).Msg("no se pudo verificar la identidad de la sesión")
		return nil, false
	}
	if id == nil {
		s.discard(ctx, fmt.Errorf("%w: identidad %s no existe", domain.ErrSessionCorrupt, session.User.ID))
		return nil, false
	}
	if id.Status != entity.StatusActive {
		s.discard(ctx, fmt.Errorf("%w: identidad %s en estado %s", domain.ErrSessionCorrupt, id.ID, id.Status))
		return nil, false
	}

	session.User = id.Public()
	s.current = session
	return session.User, true
}

// decode interpreta y verifica los bytes persistidos.
func (s *SessionStore) decode(data []byte) (*entity.Session, error) {
	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionCorrupt, err)
	}
	if session.AccessToken == "" || session.User == nil || session.User.ID == "" {
		return nil, fmt.Errorf("%w: campos obligatorios ausentes", domain.ErrSessionCorrupt)
	}
	userID, clientID, role, err := jwt.Parse(s.svc.jwtCfg.Secret, session.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: token: %v", domain.ErrSessionCorrupt, err)
	}
	if userID != session.User.ID || clientID != s.clientID || role != string(session.User.Role) {
		return nil, fmt.Errorf("%w: token no corresponde a la sesión", domain.ErrSessionCorrupt)
	}
	return &session, nil
}

func (s *SessionStore) discard(ctx context.Context, cause error) {
	s.svc.log.Warn().Err(cause).Str("client_id", s.clientID).Msg("sesión descartada")
	if err := s.storage.Clear(ctx); err != nil {
		s.svc.log.Error().Err(err).Str("client_id", s.clientID).Msg("no se pudo borrar la sesión descartada")
	}
	s.svc.publish(ctx, ports.AuditEvent{Type: ports.EventSessionDiscarded, ClientID: s.clientID, Detail: cause.Error()})
}
