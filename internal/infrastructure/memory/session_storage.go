package memory

import (
	"context"
	"sync"

	"github.com/cddiller/dashboard-api/internal/domain/repository"
)

// SessionStorages fábrica de almacenamientos de sesión en memoria, uno por id de cliente.
type SessionStorages struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewSessionStorages construye la fábrica vacía.
func NewSessionStorages() *SessionStorages {
	return &SessionStorages{data: map[string][]byte{}}
}

var _ repository.SessionStorageFactory = (*SessionStorages)(nil)

func (f *SessionStorages) For(clientID string) repository.SessionStorage {
	return &sessionStorage{parent: f, clientID: clientID}
}

// Put escribe bytes arbitrarios para un cliente (tests de estado corrupto).
func (f *SessionStorages) Put(clientID string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[clientID] = append([]byte(nil), data...)
}

// Raw devuelve lo guardado para un cliente, o nil.
func (f *SessionStorages) Raw(clientID string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.data[clientID]; ok {
		return append([]byte(nil), d...)
	}
	return nil
}

type sessionStorage struct {
	parent   *SessionStorages
	clientID string
}

func (s *sessionStorage) Save(_ context.Context, data []byte) error {
	s.parent.Put(s.clientID, data)
	return nil
}

func (s *sessionStorage) Load(_ context.Context) ([]byte, error) {
	return s.parent.Raw(s.clientID), nil
}

func (s *sessionStorage) Clear(_ context.Context) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()
	delete(s.parent.data, s.clientID)
	return nil
}
