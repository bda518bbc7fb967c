package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stockledger/internal/application/dto"
	"github.com/invorya/stockledger/internal/domain"
)

// errorStatus mapeo de errores de dominio a código estable + status HTTP.
// La capa de presentación traduce los códigos a mensajes de usuario.
var errorStatus = []struct {
	err    error
	code   string
	status int
}{
	{domain.ErrInvalidAmount, "INVALID_AMOUNT", fiber.StatusBadRequest},
	{domain.ErrUnknownTransactionType, "UNKNOWN_TRANSACTION_TYPE", fiber.StatusBadRequest},
	{domain.ErrInvalidInput, "VALIDATION", fiber.StatusBadRequest},
	{domain.ErrUnitMismatch, "UNIT_MISMATCH", fiber.StatusBadRequest},
	{domain.ErrUnauthenticated, "UNAUTHENTICATED", fiber.StatusUnauthorized},
	{domain.ErrRecordNotFound, "RECORD_NOT_FOUND", fiber.StatusNotFound},
	{domain.ErrTargetNotFound, "TARGET_NOT_FOUND", fiber.StatusNotFound},
	{domain.ErrInsufficientStock, "INSUFFICIENT_STOCK", fiber.StatusConflict},
	{domain.ErrDuplicate, "DUPLICATE", fiber.StatusConflict},
	{domain.ErrConflict, "CONFLICT", fiber.StatusConflict},
	{domain.ErrConcurrentModification, "CONCURRENT_MODIFICATION", fiber.StatusConflict},
}

// respondError responde el error con su código estable. Errores no mapeados
// son fallos de persistencia u otros internos: 500, sin tragarse el detalle.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
