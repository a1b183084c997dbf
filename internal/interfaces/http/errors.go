package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/dto"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// El orden importa: los sentinels específicos antes que los genéricos.
var errorTable = []errorMapping{
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "EMAIL_EXISTS", "el email ya está registrado"},
	{domain.ErrInvalidRange, fiber.StatusBadRequest, "INVALID_RANGE", "la fecha de salida debe ser posterior a la de entrada"},
	{domain.ErrInvalidStatus, fiber.StatusBadRequest, "INVALID_STATUS", "estado de reserva inválido"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado"},
	{domain.ErrListingNotFound, fiber.StatusNotFound, "LISTING_NOT_FOUND", "alojamiento no encontrado"},
	{domain.ErrBookingNotFound, fiber.StatusNotFound, "BOOKING_NOT_FOUND", "reserva no encontrada"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "conflicto con el estado actual"},
}

// writeError traduce un error de aplicación a la respuesta HTTP.
// Errores no mapeados -> 500 INTERNAL con mensaje genérico; el detalle solo va al log.
func writeError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: verr.Error(),
			Fields:  verr.Fields,
		})
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Interface("request_id", c.Locals("requestid")).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler para fiber.Config: respeta *fiber.Error (404 de ruta, 405...) y delega el resto.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return writeError(c, err)
}
