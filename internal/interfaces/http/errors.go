package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
)

// fail responde con el cuerpo de error estándar.
func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// respondError traduce los errores de dominio a HTTP. Lo que no es de dominio es 500
// y se registra con el logger de la petición.
func respondError(c *fiber.Ctx, err error) error {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: stockErr.Error(),
			Fields: map[string]string{
				"product_id": stockErr.ProductID,
				"available":  strconv.FormatInt(stockErr.Available, 10),
				"requested":  strconv.FormatInt(stockErr.Requested, 10),
			},
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fail(c, fiber.StatusBadRequest, "INVALID_QUANTITY", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		return fail(c, fiber.StatusNotFound, "PRODUCT_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrDocumentNotFound):
		return fail(c, fiber.StatusNotFound, "DOCUMENT_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		return fail(c, fiber.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return fail(c, fiber.StatusConflict, "USER_EXISTS", err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "DUPLICATE", err.Error())
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "cuenta inactiva o acceso denegado")
	}

	requestLogger(c).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor")
}
