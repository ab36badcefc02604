package dto

import (
	"time"

	"github.com/cddiller/dashboard-api/internal/domain/entity"
)

// LoginRequest entrada para login. next es la ruta a la que volver tras autenticarse.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Next     string `json:"next" validate:"omitempty,startswith=/"`
}

// SignupRequest entrada para registro. La cuenta queda pendiente de aprobación.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"required,oneof=superadmin admin warehouse dealer agent store"`
}

// IdentityResponse salida de una identidad (sin password).
type IdentityResponse struct {
	ID        string    `json:"id"`
	Name      *string   `json:"name"`
	Email     *string   `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewIdentityResponse arma la respuesta; nil si i es nil.
func NewIdentityResponse(i *entity.Identity) *IdentityResponse {
	if i == nil {
		return nil
	}
	return &IdentityResponse{
		ID:        i.ID,
		Name:      i.Name,
		Email:     i.Email,
		Role:      string(i.Role),
		Status:    string(i.Status),
		Phone:     i.Phone,
		Address:   i.Address,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// SessionResponse salida de login y /me. Redirect es la página a abrir a continuación.
type SessionResponse struct {
	User     *IdentityResponse `json:"user"`
	Redirect string            `json:"redirect"`
}
