package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/cddiller/dashboard-api/internal/application/dto"
	"github.com/cddiller/dashboard-api/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// errorStatus traduce los errores de dominio a código HTTP y código de respuesta.
func errorStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", "sesión requerida"
	case errors.Is(err, domain.ErrAccountInactive):
		return fiber.StatusForbidden, "ACCOUNT_INACTIVE", domain.ErrAccountInactive.Error()
	case errors.Is(err, domain.ErrAccountPending):
		return fiber.StatusForbidden, "ACCOUNT_PENDING", domain.ErrAccountPending.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"
	case errors.Is(err, domain.ErrEmailTaken):
		return fiber.StatusConflict, "EMAIL_EXISTS", domain.ErrEmailTaken.Error()
	case errors.Is(err, domain.ErrTooManyAttempts):
		return fiber.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", domain.ErrTooManyAttempts.Error()
	case errors.Is(err, domain.ErrRoleImmutable):
		return fiber.StatusUnprocessableEntity, "ROLE_IMMUTABLE", domain.ErrRoleImmutable.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownRole):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrDataService):
		return fiber.StatusBadGateway, "DATA_SERVICE", "no se pudieron cargar los datos"
	default:
		return fiber.StatusInternalServerError, "INTERNAL", "error interno"
	}
}

func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// validationError devuelve el primer campo que no pasó la validación.
func validationError(c *fiber.Ctx, err error) error {
	msg := err.Error()
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg = fe.Field() + ": " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}
