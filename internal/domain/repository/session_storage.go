package repository

import "context"

// SessionStorage almacenamiento durable de la sesión de UNA instancia de cliente.
// Load devuelve (nil, nil) si no hay nada guardado; el contenido puede estar corrupto.
type SessionStorage interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
	Clear(ctx context.Context) error
}

// SessionStorageFactory entrega el almacenamiento asociado a un id de cliente.
type SessionStorageFactory interface {
	For(clientID string) SessionStorage
}
