package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avandall/WMS-Project-sub000/internal/application/dto"
	"github.com/avandall/WMS-Project-sub000/internal/application/warehouses"
	"github.com/avandall/WMS-Project-sub000/internal/domain/entity"
)

// WarehouseHandler maneja las peticiones HTTP de bodegas y ajustes directos de stock.
type WarehouseHandler struct {
	uc *warehouses.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *warehouses.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create crea una bodega. Con id en el cuerpo usa la ruta de id predefinido.
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var (
		warehouse *entity.Warehouse
		err       error
	)
	if in.ID != 0 {
		warehouse, err = h.uc.CreateWithID(c.Context(), in.ID, in.Location)
	} else {
		warehouse, err = h.uc.Create(c.Context(), in.Location)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToWarehouseResponse(warehouse))
}

// GetByID obtiene una bodega con su inventario.
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	warehouse, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToWarehouseResponse(warehouse))
}

// Update cambia la ubicación de la bodega.
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	warehouse, err := h.uc.UpdateLocation(c.Context(), id, in.Location)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToWarehouseResponse(warehouse))
}

// List lista bodegas con resumen de inventario.
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	summaries, err := h.uc.ListWithSummary(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.WarehouseListResponse{
		Items: make([]dto.WarehouseSummaryResponse, 0, len(summaries)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, s := range summaries {
		out.Items = append(out.Items, dto.WarehouseSummaryResponse{
			ID:             s.Warehouse.ID,
			Location:       s.Warehouse.Location,
			TotalItems:     s.TotalItems,
			UniqueProducts: s.UniqueProducts,
			Lines:          dto.ToInventoryLines(s.Lines),
		})
	}
	return c.JSON(out)
}

// Delete elimina una bodega (solo si está vacía).
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetInventory devuelve las líneas de inventario de la bodega.
func (h *WarehouseHandler) GetInventory(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	lines, err := h.uc.GetInventory(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"warehouse_id": id, "lines": dto.ToInventoryLines(lines)})
}

// AddStock ajuste directo: agrega stock de un producto a la bodega.
func (h *WarehouseHandler) AddStock(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AddProduct(c.Context(), id, in.ProductID, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveStock ajuste directo: retira stock de un producto de la bodega.
func (h *WarehouseHandler) RemoveStock(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.RemoveProduct(c.Context(), id, in.ProductID, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Transfer traslado directo de un producto hacia otra bodega (atómico).
func (h *WarehouseHandler) Transfer(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.TransferProduct(c.Context(), id, in.ToWarehouseID, in.ProductID, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TransferAll vacía la bodega hacia otra en una sola transacción.
func (h *WarehouseHandler) TransferAll(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.TransferAllRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	transferred, err := h.uc.TransferAllInventory(c.Context(), id, in.ToWarehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"from_warehouse_id": id,
		"to_warehouse_id":   in.ToWarehouseID,
		"transferred":       dto.ToInventoryLines(transferred),
	})
}
