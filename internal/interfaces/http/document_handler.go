package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avandall/WMS-Project-sub000/internal/application/documents"
	"github.com/avandall/WMS-Project-sub000/internal/application/dto"
	"github.com/avandall/WMS-Project-sub000/internal/domain/entity"
)

// DocumentHandler maneja las peticiones HTTP del motor de documentos:
// creación en DRAFT, posteo, cancelación y consulta del rastro de movimientos.
type DocumentHandler struct {
	uc *documents.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *documents.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Create crea un documento en DRAFT según su tipo.
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]documents.ItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, documents.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	var (
		doc *entity.Document
		err error
	)
	switch in.Type {
	case entity.DocumentTypeImport:
		doc, err = h.uc.CreateImportDocument(c.Context(), in.ToWarehouseID, items, in.CreatedBy, in.Note)
	case entity.DocumentTypeExport:
		doc, err = h.uc.CreateExportDocument(c.Context(), in.FromWarehouseID, items, in.CreatedBy, in.Note)
	case entity.DocumentTypeTransfer:
		doc, err = h.uc.CreateTransferDocument(c.Context(), in.FromWarehouseID, in.ToWarehouseID, items, in.CreatedBy, in.Note)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "type debe ser IMPORT, EXPORT o TRANSFER",
		})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToDocumentResponse(doc))
}

// GetByID obtiene un documento por id.
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.uc.GetDocument(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToDocumentResponse(doc))
}

// List lista documentos; acepta filtro opcional ?status=.
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	status := c.Query("status")
	var (
		list []*entity.Document
		err  error
	)
	if status != "" {
		list, err = h.uc.ListDocumentsByStatus(c.Context(), status, page.Limit, page.Offset)
	} else {
		list, err = h.uc.ListDocuments(c.Context(), page.Limit, page.Offset)
	}
	if err != nil {
		return respondError(c, err)
	}
	out := dto.DocumentListResponse{
		Items: make([]dto.DocumentResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, doc := range list {
		out.Items = append(out.Items, dto.ToDocumentResponse(doc))
	}
	return c.JSON(out)
}

// Post postea el documento: aplica sus líneas a los ledgers en una transacción.
func (h *DocumentHandler) Post(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.PostDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.uc.PostDocument(c.Context(), id, in.ApprovedBy)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToDocumentResponse(doc))
}

// Cancel cancela un documento DRAFT.
func (h *DocumentHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CancelDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.uc.CancelDocument(c.Context(), id, in.CancelledBy, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToDocumentResponse(doc))
}

// ListMovements devuelve el rastro de movimientos generado por el posteo.
func (h *DocumentHandler) ListMovements(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	movements, err := h.uc.ListDocumentMovements(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementList(movements))
}

// ListWarehouseMovements historial de movimientos de una bodega.
func (h *DocumentHandler) ListWarehouseMovements(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	movements, err := h.uc.ListWarehouseMovements(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementList(movements))
}

// ListProductMovements historial de movimientos de un producto.
func (h *DocumentHandler) ListProductMovements(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	movements, err := h.uc.ListProductMovements(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementList(movements))
}

func toMovementList(movements []*entity.StockMovement) fiber.Map {
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.ToStockMovementResponse(m))
	}
	return fiber.Map{"items": items}
}
