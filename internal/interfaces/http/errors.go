package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/avandall/WMS-Project-sub000/internal/application/dto"
	"github.com/avandall/WMS-Project-sub000/internal/domain"
)

// respondError traduce errores de dominio a estados HTTP.
// Errores sin Kind de dominio se reportan como 500 sin filtrar detalles internos.
func respondError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	var status int
	switch kind {
	case domain.KindValidation:
		status = fiber.StatusBadRequest
	case domain.KindNotFound:
		status = fiber.StatusNotFound
	case domain.KindAlreadyExists, domain.KindInvalidStatus, domain.KindInsufficientStock:
		status = fiber.StatusConflict
	case domain.KindBusinessRule:
		status = fiber.StatusUnprocessableEntity
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "INTERNAL",
			Message: "error interno",
		})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: string(kind), Message: err.Error()})
}

// parseIDParam lee un parámetro de ruta como id numérico positivo.
func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidation("%s debe ser un id numérico positivo", name)
	}
	return id, nil
}
