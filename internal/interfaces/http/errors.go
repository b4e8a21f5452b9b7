package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

// Códigos de error de la API.
const (
	CodeValidation        = "VALIDATION"
	CodeInvalidBody       = "INVALID_BODY"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeNoActivePrice     = "NO_ACTIVE_PRICE"
	CodeConflict          = "CONFLICT"
	CodeSaleCreation      = "SALE_CREATION"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInternal          = "INTERNAL"
)

// mapError traduce un error de dominio a status y cuerpo HTTP.
// ErrSaleCreation se evalúa primero porque su causa puede ser un error de almacenamiento.
func mapError(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrSaleCreation):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeSaleCreation, Message: "no se pudo registrar la venta"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeInsufficientStock, Message: err.Error()}
	case errors.Is(err, domain.ErrNoActivePrice):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeNoActivePrice, Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeConflict, Message: "el registro ya existe o viola una restricción"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeUnauthorized, Message: "no autorizado"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: "error interno del servidor"}
	}
}

// ErrorHandler es el fiber.ErrorHandler de la app. Los handlers devuelven el error del caso de uso
// tal cual; los *fiber.Error (ruta inexistente, body demasiado grande) conservan su código.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: CodeForStatus(fe.Code), Message: fe.Message})
		}
		status, body := mapError(err)
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		}
		return c.Status(status).JSON(body)
	}
}

// CodeForStatus devuelve el código de la API para un status HTTP genérico.
func CodeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return CodeInvalidBody
	case fiber.StatusUnauthorized:
		return CodeUnauthorized
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusConflict:
		return CodeConflict
	case fiber.StatusInternalServerError:
		return CodeInternal
	default:
		return "HTTP_" + strconv.Itoa(status)
	}
}
