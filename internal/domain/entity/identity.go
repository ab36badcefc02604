package entity

import "time"

// Role rol cerrado del panel.
type Role string

// Roles válidos para Identity.
const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleWarehouse  Role = "warehouse"
	RoleDealer     Role = "dealer"
	RoleAgent      Role = "agent"
	RoleStore      Role = "store"
)

// Roles en el orden en que se presentan.
var Roles = []Role{RoleSuperadmin, RoleAdmin, RoleWarehouse, RoleDealer, RoleAgent, RoleStore}

// IsValid informa si el rol pertenece a la enumeración.
func (r Role) IsValid() bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

// Status estado de la cuenta.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// IsValid informa si el estado pertenece a la enumeración.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusPending
}

// Identity actor autenticable. El rol no cambia después de creada.
type Identity struct {
	ID           string    `json:"id"`
	Name         *string   `json:"name"`
	Email        *string   `json:"email"`
	PasswordHash string    `json:"-"` // bcrypt, nunca se serializa
	Role         Role      `json:"role"`
	Status       Status    `json:"status"`
	Phone        *string   `json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName nombre para mostrar: name, o email si no hay nombre.
func (i *Identity) DisplayName() string {
	if i.Name != nil && *i.Name != "" {
		return *i.Name
	}
	if i.Email != nil {
		return *i.Email
	}
	return i.ID
}

// EmailValue email o cadena vacía.
func (i *Identity) EmailValue() string {
	if i.Email == nil {
		return ""
	}
	return *i.Email
}

// Public copia de la identidad sin hash de contraseña.
func (i *Identity) Public() *Identity {
	if i == nil {
		return nil
	}
	cp := *i
	cp.PasswordHash = ""
	return &cp
}

// StrPtr helper para campos opcionales.
func StrPtr(s string) *string { return &s }
