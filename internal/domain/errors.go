package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Autenticación: se resuelven en el borde (login/signup), nunca llegan a la tabla.
	ErrInvalidCredentials = errors.New("email o contraseña inválidos")
	ErrAccountInactive    = errors.New("la cuenta está desactivada, contacte a un administrador")
	ErrAccountPending     = errors.New("la cuenta está pendiente de aprobación")
	ErrEmailTaken         = errors.New("el email ya está registrado")
	ErrTooManyAttempts    = errors.New("demasiados intentos, intente más tarde")

	// ErrSessionCorrupt nunca se muestra al usuario: la sesión se descarta y se trata como "sin sesión".
	ErrSessionCorrupt = errors.New("estado de sesión corrupto")

	// ErrDataService envuelve cualquier fallo del backend de datos (red, DB).
	ErrDataService = errors.New("fallo del servicio de datos")

	ErrRoleImmutable = errors.New("el rol no puede modificarse")
	ErrUnknownRole   = errors.New("rol desconocido")
)
