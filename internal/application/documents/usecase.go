package documents

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avandall/WMS-Project-sub000/internal/domain"
	"github.com/avandall/WMS-Project-sub000/internal/domain/entity"
	"github.com/avandall/WMS-Project-sub000/internal/domain/repository"
	"github.com/avandall/WMS-Project-sub000/pkg/logger"
)

// DocumentUseCase es el motor de movimientos de inventario: construye documentos
// validados contra catálogo y bodegas, y al postear aplica sus líneas a los ledgers
// (bodega + total) dentro de una única transacción vía TxRunner.
type DocumentUseCase struct {
	txRunner      TxRunner
	documentRepo  repository.DocumentRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	movementRepo  repository.StockMovementRepository
	log           *logger.Logger
}

// NewDocumentUseCase construye el motor con sus puertos inyectados (sin singletons).
func NewDocumentUseCase(
	txRunner TxRunner,
	documentRepo repository.DocumentRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	log *logger.Logger,
) *DocumentUseCase {
	return &DocumentUseCase{
		txRunner:      txRunner,
		documentRepo:  documentRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		movementRepo:  movementRepo,
		log:           log,
	}
}

// ItemInput entrada cruda de una línea de documento.
type ItemInput struct {
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

// CreateImportDocument crea un documento IMPORT en DRAFT.
// Valida que la bodega destino y todos los productos existan.
func (uc *DocumentUseCase) CreateImportDocument(ctx context.Context, toWarehouseID int64, items []ItemInput, createdBy, note string) (*entity.Document, error) {
	if err := uc.ensureWarehouseExists(toWarehouseID); err != nil {
		return nil, err
	}
	docItems, err := uc.validateItems(items)
	if err != nil {
		return nil, err
	}
	doc, err := entity.NewDocument(0, entity.DocumentTypeImport, 0, toWarehouseID, docItems, createdBy, note)
	if err != nil {
		return nil, err
	}
	if err := uc.documentRepo.Save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CreateExportDocument crea un documento EXPORT en DRAFT.
// No verifica stock en la creación: el chequeo autoritativo ocurre al postear
// (se permite planear una salida antes de tener el stock).
func (uc *DocumentUseCase) CreateExportDocument(ctx context.Context, fromWarehouseID int64, items []ItemInput, createdBy, note string) (*entity.Document, error) {
	if err := uc.ensureWarehouseExists(fromWarehouseID); err != nil {
		return nil, err
	}
	docItems, err := uc.validateItems(items)
	if err != nil {
		return nil, err
	}
	doc, err := entity.NewDocument(0, entity.DocumentTypeExport, fromWarehouseID, 0, docItems, createdBy, note)
	if err != nil {
		return nil, err
	}
	if err := uc.documentRepo.Save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CreateTransferDocument crea un documento TRANSFER en DRAFT.
// Además de catálogo y bodegas, verifica el stock actual en la bodega origen.
// Es un chequeo blando: el stock puede cambiar antes del posteo, que re-valida.
func (uc *DocumentUseCase) CreateTransferDocument(ctx context.Context, fromWarehouseID, toWarehouseID int64, items []ItemInput, createdBy, note string) (*entity.Document, error) {
	if fromWarehouseID == toWarehouseID {
		return nil, domain.NewBusinessRule("no se puede trasladar a la misma bodega")
	}
	if err := uc.ensureWarehouseExists(fromWarehouseID); err != nil {
		return nil, err
	}
	if err := uc.ensureWarehouseExists(toWarehouseID); err != nil {
		return nil, err
	}
	docItems, err := uc.validateItems(items)
	if err != nil {
		return nil, err
	}
	for _, item := range docItems {
		available, err := uc.warehouseRepo.GetProductQuantity(fromWarehouseID, item.ProductID)
		if err != nil {
			return nil, err
		}
		if available < item.Quantity {
			return nil, domain.NewInsufficientStock(item.ProductID, available, item.Quantity)
		}
	}
	doc, err := entity.NewDocument(0, entity.DocumentTypeTransfer, fromWarehouseID, toWarehouseID, docItems, createdBy, note)
	if err != nil {
		return nil, err
	}
	if err := uc.documentRepo.Save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// PostDocument postea un documento DRAFT aplicando sus líneas a los ledgers.
// Todo ocurre dentro de una transacción: bloqueo de la fila del documento
// (serializa posteos concurrentes del mismo id), re-validación de bodegas,
// mutación línea a línea con bloqueo de fila por producto+bodega, rastro de
// movimientos y cambio de estado. Si cualquier línea falla, nada queda aplicado.
func (uc *DocumentUseCase) PostDocument(ctx context.Context, documentID int64, approvedBy string) (*entity.Document, error) {
	var posted *entity.Document
	err := uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		warehouseRepo repository.WarehouseRepository,
		totalRepo repository.TotalInventoryRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		doc, err := docRepo.GetByIDForUpdate(documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.NewNotFound("documento", documentID)
		}
		if doc.Status != entity.DocumentStatusDraft {
			return domain.NewInvalidStatus(documentID, "no está en estado DRAFT")
		}

		// Las bodegas pudieron eliminarse entre la creación y el posteo
		if err := uc.ensureDocumentWarehouses(warehouseRepo, doc); err != nil {
			return err
		}

		now := time.Now()
		txID := uuid.New().String()
		switch doc.Type {
		case entity.DocumentTypeImport:
			err = uc.applyImport(warehouseRepo, totalRepo, movementRepo, doc, txID, approvedBy, now)
		case entity.DocumentTypeExport:
			err = uc.applyExport(warehouseRepo, totalRepo, movementRepo, doc, txID, approvedBy, now)
		case entity.DocumentTypeTransfer:
			err = uc.applyTransfer(warehouseRepo, movementRepo, doc, txID, approvedBy, now)
		default:
			err = domain.NewValidation("tipo de documento inválido: %s", doc.Type)
		}
		if err != nil {
			return err
		}

		if err := doc.Post(approvedBy); err != nil {
			return err
		}
		if err := docRepo.Save(doc); err != nil {
			return err
		}
		posted = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posted, nil
}

// CancelDocument cancela un documento DRAFT registrando quién y por qué.
// Nunca toca los ledgers: un documento en DRAFT no movió stock. Corre dentro
// de una transacción bloqueando la fila del documento (GetByIDForUpdate),
// igual que el posteo: así un cancel que compite con un PostDocument del
// mismo id ve el estado ya commiteado y nunca pisa un documento POSTED.
func (uc *DocumentUseCase) CancelDocument(ctx context.Context, documentID int64, cancelledBy, reason string) (*entity.Document, error) {
	var cancelled *entity.Document
	err := uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		_ repository.WarehouseRepository,
		_ repository.TotalInventoryRepository,
		_ repository.StockMovementRepository,
	) error {
		doc, err := docRepo.GetByIDForUpdate(documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.NewNotFound("documento", documentID)
		}
		if err := doc.Cancel(cancelledBy, reason); err != nil {
			return err
		}
		if err := docRepo.Save(doc); err != nil {
			return err
		}
		cancelled = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// GetDocument obtiene un documento por id.
func (uc *DocumentUseCase) GetDocument(ctx context.Context, documentID int64) (*entity.Document, error) {
	doc, err := uc.documentRepo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.NewNotFound("documento", documentID)
	}
	return doc, nil
}

// ListDocuments lista documentos con paginación simple.
func (uc *DocumentUseCase) ListDocuments(ctx context.Context, limit, offset int) ([]*entity.Document, error) {
	return uc.documentRepo.List(limit, offset)
}

// ListDocumentsByStatus lista documentos filtrando por estado.
func (uc *DocumentUseCase) ListDocumentsByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Document, error) {
	switch status {
	case entity.DocumentStatusDraft, entity.DocumentStatusPosted, entity.DocumentStatusCancelled:
	default:
		return nil, domain.NewValidation("estado de documento inválido: %s", status)
	}
	return uc.documentRepo.ListByStatus(status, limit, offset)
}

// ListDocumentMovements devuelve el rastro de movimientos que generó el posteo
// de un documento (vacío si sigue en DRAFT o fue cancelado).
func (uc *DocumentUseCase) ListDocumentMovements(ctx context.Context, documentID int64) ([]*entity.StockMovement, error) {
	if _, err := uc.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}
	return uc.movementRepo.ListByDocument(documentID)
}

// ListWarehouseMovements devuelve el historial de movimientos de una bodega.
func (uc *DocumentUseCase) ListWarehouseMovements(ctx context.Context, warehouseID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movementRepo.ListByWarehouse(warehouseID, limit, offset)
}

// ListProductMovements devuelve el historial de movimientos de un producto.
func (uc *DocumentUseCase) ListProductMovements(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movementRepo.ListByProduct(productID, limit, offset)
}

// ItemDetail línea enriquecida con el producto del catálogo.
type ItemDetail struct {
	Product    *entity.Product
	Quantity   int64
	UnitPrice  decimal.Decimal
	TotalValue decimal.Decimal
}

// DocumentDetails documento enriquecido con productos y bodegas para capas de presentación.
type DocumentDetails struct {
	Document      *entity.Document
	Items         []ItemDetail
	FromWarehouse *entity.Warehouse
	ToWarehouse   *entity.Warehouse
	TotalValue    decimal.Decimal
}

// GetDocumentWithDetails arma la vista enriquecida de un documento.
// El precio mostrado es el de la línea del documento, no el del catálogo.
func (uc *DocumentUseCase) GetDocumentWithDetails(ctx context.Context, documentID int64) (*DocumentDetails, error) {
	doc, err := uc.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	details := &DocumentDetails{Document: doc, TotalValue: doc.TotalValue()}
	for _, item := range doc.Items() {
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		details.Items = append(details.Items, ItemDetail{
			Product:    product,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalValue: item.TotalValue(),
		})
	}
	if doc.FromWarehouseID != 0 {
		if details.FromWarehouse, err = uc.warehouseRepo.GetByID(doc.FromWarehouseID); err != nil {
			return nil, err
		}
	}
	if doc.ToWarehouseID != 0 {
		if details.ToWarehouse, err = uc.warehouseRepo.GetByID(doc.ToWarehouseID); err != nil {
			return nil, err
		}
	}
	return details, nil
}

// applyImport: por cada línea suma en bodega destino y en el ledger total
// (una importación trae stock nuevo al sistema).
func (uc *DocumentUseCase) applyImport(
	warehouseRepo repository.WarehouseRepository,
	totalRepo repository.TotalInventoryRepository,
	movementRepo repository.StockMovementRepository,
	doc *entity.Document, txID, approvedBy string, now time.Time,
) error {
	for _, item := range doc.Items() {
		if err := warehouseRepo.AddProduct(doc.ToWarehouseID, item.ProductID, item.Quantity); err != nil {
			return err
		}
		if err := totalRepo.AddQuantity(item.ProductID, item.Quantity); err != nil {
			return err
		}
		if err := uc.recordMovement(movementRepo, doc, txID, approvedBy, now, doc.ToWarehouseID, entity.MovementDirectionIn, item, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// applyExport: por cada línea resta de la bodega origen (chequeo autoritativo de stock)
// y del ledger total. Si el total no alcanza habiendo alcanzado la bodega, hay
// deriva de ledger: se registra como inconsistencia del sistema antes de abortar.
func (uc *DocumentUseCase) applyExport(
	warehouseRepo repository.WarehouseRepository,
	totalRepo repository.TotalInventoryRepository,
	movementRepo repository.StockMovementRepository,
	doc *entity.Document, txID, approvedBy string, now time.Time,
) error {
	for _, item := range doc.Items() {
		if err := warehouseRepo.RemoveProduct(doc.FromWarehouseID, item.ProductID, item.Quantity); err != nil {
			return err
		}
		if err := totalRepo.RemoveQuantity(item.ProductID, item.Quantity); err != nil {
			if domain.KindOf(err) == domain.KindInsufficientStock {
				uc.log.Error().
					Int64("product_id", item.ProductID).
					Int64("document_id", doc.ID).
					Msg("deriva de ledger: el total es menor que lo asignado en bodegas")
			}
			return err
		}
		if err := uc.recordMovement(movementRepo, doc, txID, approvedBy, now, doc.FromWarehouseID, entity.MovementDirectionOut, item, -item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// applyTransfer: por cada línea resta del origen y suma en destino.
// El ledger total no cambia: el stock solo se reubica.
func (uc *DocumentUseCase) applyTransfer(
	warehouseRepo repository.WarehouseRepository,
	movementRepo repository.StockMovementRepository,
	doc *entity.Document, txID, approvedBy string, now time.Time,
) error {
	for _, item := range doc.Items() {
		if err := warehouseRepo.RemoveProduct(doc.FromWarehouseID, item.ProductID, item.Quantity); err != nil {
			return err
		}
		if err := warehouseRepo.AddProduct(doc.ToWarehouseID, item.ProductID, item.Quantity); err != nil {
			return err
		}
		if err := uc.recordMovement(movementRepo, doc, txID, approvedBy, now, doc.FromWarehouseID, entity.MovementDirectionOut, item, -item.Quantity); err != nil {
			return err
		}
		if err := uc.recordMovement(movementRepo, doc, txID, approvedBy, now, doc.ToWarehouseID, entity.MovementDirectionIn, item, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (uc *DocumentUseCase) recordMovement(
	movementRepo repository.StockMovementRepository,
	doc *entity.Document, txID, approvedBy string, now time.Time,
	warehouseID int64, direction string, item entity.DocumentItem, signedQty int64,
) error {
	return movementRepo.Create(&entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: txID,
		DocumentID:    doc.ID,
		ProductID:     item.ProductID,
		WarehouseID:   warehouseID,
		Direction:     direction,
		Quantity:      signedQty,
		UnitPrice:     item.UnitPrice,
		CreatedAt:     now,
		CreatedBy:     approvedBy,
	})
}

// validateItems valida y convierte las líneas crudas a líneas de documento,
// verificando que cada producto exista en el catálogo.
func (uc *DocumentUseCase) validateItems(items []ItemInput) ([]entity.DocumentItem, error) {
	if len(items) == 0 {
		return nil, domain.NewValidation("documento debe contener al menos una línea")
	}
	docItems := make([]entity.DocumentItem, 0, len(items))
	for _, in := range items {
		item, err := entity.NewDocumentItem(in.ProductID, in.Quantity, in.UnitPrice)
		if err != nil {
			return nil, err
		}
		product, err := uc.productRepo.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NewNotFound("producto", in.ProductID)
		}
		docItems = append(docItems, item)
	}
	return docItems, nil
}

func (uc *DocumentUseCase) ensureWarehouseExists(warehouseID int64) error {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.NewNotFound("bodega", warehouseID)
	}
	return nil
}

// ensureDocumentWarehouses re-valida con los repos de la transacción que las bodegas
// referenciadas sigan existiendo al momento de postear.
func (uc *DocumentUseCase) ensureDocumentWarehouses(warehouseRepo repository.WarehouseRepository, doc *entity.Document) error {
	if doc.FromWarehouseID != 0 {
		warehouse, err := warehouseRepo.GetByID(doc.FromWarehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return domain.NewNotFound("bodega", doc.FromWarehouseID)
		}
	}
	if doc.ToWarehouseID != 0 {
		warehouse, err := warehouseRepo.GetByID(doc.ToWarehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return domain.NewNotFound("bodega", doc.ToWarehouseID)
		}
	}
	return nil
}
