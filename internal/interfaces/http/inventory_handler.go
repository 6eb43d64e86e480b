package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avandall/WMS-Project-sub000/internal/application/dto"
	"github.com/avandall/WMS-Project-sub000/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP del ledger total.
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ListTotals devuelve el ledger total completo.
func (h *InventoryHandler) ListTotals(c *fiber.Ctx) error {
	totals, err := h.uc.ListTotals(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TotalInventoryListResponse{Items: dto.ToInventoryLines(totals)})
}

// GetStatus devuelve el estado de inventario de un producto: total, distribución
// por bodega y bandera de deriva.
func (h *InventoryHandler) GetStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	status, err := h.uc.GetInventoryStatus(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.InventoryStatusResponse{
		Product:       dto.ToProductResponse(status.Product),
		TotalQuantity: status.TotalQuantity,
		Allocated:     status.Allocated,
		Unallocated:   status.Unallocated,
		Allocations:   make([]dto.WarehouseAllocationResponse, 0, len(status.Allocations)),
		Drift:         status.Drift,
	}
	for _, alloc := range status.Allocations {
		out.Allocations = append(out.Allocations, dto.WarehouseAllocationResponse{
			WarehouseID: alloc.WarehouseID,
			Quantity:    alloc.Quantity,
		})
	}
	return c.JSON(out)
}

// AddToTotal ajuste directo: suma al ledger total de un producto.
func (h *InventoryHandler) AddToTotal(c *fiber.Ctx) error {
	var in dto.TotalAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AddToTotal(c.Context(), in.ProductID, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveFromTotal ajuste directo: resta del ledger total de un producto.
func (h *InventoryHandler) RemoveFromTotal(c *fiber.Ctx) error {
	var in dto.TotalAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.RemoveFromTotal(c.Context(), in.ProductID, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
