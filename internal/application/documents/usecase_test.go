package documents_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avandall/WMS-Project-sub000/internal/application/documents"
	"github.com/avandall/WMS-Project-sub000/internal/domain"
	"github.com/avandall/WMS-Project-sub000/internal/domain/entity"
	"github.com/avandall/WMS-Project-sub000/internal/domain/repository"
	"github.com/avandall/WMS-Project-sub000/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del motor de movimientos sobre fakes en memoria. El fakeTxRunner toma
// un snapshot del estado antes de ejecutar fn y lo restaura si fn falla: así
// se verifica la garantía central de que un posteo fallido no deja ninguna
// mutación parcial en bodegas ni en el ledger total.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[int64]entity.Product
	locations map[int64]string
	stock     map[int64]map[int64]int64 // bodega -> producto -> cantidad
	totals    map[int64]int64
	docs      map[int64]*entity.Document
	nextDocID int64
	movements []*entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[int64]entity.Product),
		locations: make(map[int64]string),
		stock:     make(map[int64]map[int64]int64),
		totals:    make(map[int64]int64),
		docs:      make(map[int64]*entity.Document),
	}
}

func cloneDocument(d *entity.Document) *entity.Document {
	cp := *d
	_ = cp.SetItems(d.Items())
	return &cp
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for id, p := range s.products {
		snap.products[id] = p
	}
	for id, loc := range s.locations {
		snap.locations[id] = loc
	}
	for wid, lines := range s.stock {
		cp := make(map[int64]int64, len(lines))
		for pid, qty := range lines {
			cp[pid] = qty
		}
		snap.stock[wid] = cp
	}
	for pid, qty := range s.totals {
		snap.totals[pid] = qty
	}
	for id, doc := range s.docs {
		snap.docs[id] = cloneDocument(doc)
	}
	snap.nextDocID = s.nextDocID
	snap.movements = append([]*entity.StockMovement(nil), s.movements...)
	return snap
}

func (s *memStore) restore(snap *memStore) {
	*s = *snap
}

// fakeProductRepo catálogo en memoria.
type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	if p.ID == 0 {
		p.ID = int64(len(r.s.products) + 1)
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(id int64) error                             { delete(r.s.products, id); return nil }

// fakeWarehouseRepo bodegas y líneas en memoria con la misma semántica del adaptador real.
type fakeWarehouseRepo struct{ s *memStore }

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	if w.ID == 0 {
		w.ID = int64(len(r.s.locations) + 1)
	}
	r.s.locations[w.ID] = w.Location
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id int64) (*entity.Warehouse, error) {
	loc, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	w, err := entity.NewWarehouse(id, loc)
	if err != nil {
		return nil, err
	}
	lines, _ := r.GetInventory(id)
	if err := w.SetLines(lines); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	r.s.locations[w.ID] = w.Location
	return nil
}

func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) { return nil, nil }

func (r *fakeWarehouseRepo) Delete(id int64) error {
	delete(r.s.locations, id)
	delete(r.s.stock, id)
	return nil
}

func (r *fakeWarehouseRepo) AddProduct(warehouseID, productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad debe ser positiva")
	}
	if r.s.stock[warehouseID] == nil {
		r.s.stock[warehouseID] = make(map[int64]int64)
	}
	r.s.stock[warehouseID][productID] += quantity
	return nil
}

func (r *fakeWarehouseRepo) RemoveProduct(warehouseID, productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad debe ser positiva")
	}
	current, ok := r.s.stock[warehouseID][productID]
	if !ok {
		return domain.NewNotFound("producto", productID)
	}
	if current < quantity {
		return domain.NewInsufficientStock(productID, current, quantity)
	}
	if current == quantity {
		delete(r.s.stock[warehouseID], productID)
	} else {
		r.s.stock[warehouseID][productID] = current - quantity
	}
	return nil
}

func (r *fakeWarehouseRepo) GetProductQuantity(warehouseID, productID int64) (int64, error) {
	return r.s.stock[warehouseID][productID], nil
}

func (r *fakeWarehouseRepo) GetInventory(warehouseID int64) ([]entity.InventoryLine, error) {
	var lines []entity.InventoryLine
	for pid, qty := range r.s.stock[warehouseID] {
		lines = append(lines, entity.InventoryLine{ProductID: pid, Quantity: qty})
	}
	return lines, nil
}

func (r *fakeWarehouseRepo) GetInventoryByProduct(productID int64) ([]repository.ProductAllocation, error) {
	var allocations []repository.ProductAllocation
	for wid, lines := range r.s.stock {
		if qty, ok := lines[productID]; ok {
			allocations = append(allocations, repository.ProductAllocation{WarehouseID: wid, Quantity: qty})
		}
	}
	return allocations, nil
}

// fakeTotalRepo ledger total en memoria.
type fakeTotalRepo struct{ s *memStore }

func (r *fakeTotalRepo) AddQuantity(productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad debe ser positiva")
	}
	r.s.totals[productID] += quantity
	return nil
}

func (r *fakeTotalRepo) RemoveQuantity(productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad debe ser positiva")
	}
	current := r.s.totals[productID]
	if current < quantity {
		return domain.NewInsufficientStock(productID, current, quantity)
	}
	r.s.totals[productID] = current - quantity
	return nil
}

func (r *fakeTotalRepo) GetQuantity(productID int64) (int64, error) {
	return r.s.totals[productID], nil
}

func (r *fakeTotalRepo) List() ([]entity.InventoryLine, error) {
	var lines []entity.InventoryLine
	for pid, qty := range r.s.totals {
		lines = append(lines, entity.InventoryLine{ProductID: pid, Quantity: qty})
	}
	return lines, nil
}

// fakeDocRepo documentos en memoria; devuelve copias como haría una hidratación real.
type fakeDocRepo struct{ s *memStore }

func (r *fakeDocRepo) Save(doc *entity.Document) error {
	if doc.ID == 0 {
		r.s.nextDocID++
		doc.ID = r.s.nextDocID
	}
	r.s.docs[doc.ID] = cloneDocument(doc)
	return nil
}

func (r *fakeDocRepo) GetByID(id int64) (*entity.Document, error) {
	doc, ok := r.s.docs[id]
	if !ok {
		return nil, nil
	}
	return cloneDocument(doc), nil
}

func (r *fakeDocRepo) GetByIDForUpdate(id int64) (*entity.Document, error) {
	return r.GetByID(id)
}

func (r *fakeDocRepo) List(limit, offset int) ([]*entity.Document, error) {
	var list []*entity.Document
	for _, doc := range r.s.docs {
		list = append(list, cloneDocument(doc))
	}
	return list, nil
}

func (r *fakeDocRepo) ListByStatus(status string, limit, offset int) ([]*entity.Document, error) {
	var list []*entity.Document
	for _, doc := range r.s.docs {
		if doc.Status == status {
			list = append(list, cloneDocument(doc))
		}
	}
	return list, nil
}

// fakeMovementRepo rastro de movimientos en memoria.
type fakeMovementRepo struct{ s *memStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByDocument(documentID int64) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.DocumentID == documentID {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *fakeMovementRepo) ListByWarehouse(warehouseID int64, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.WarehouseID == warehouseID {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *fakeMovementRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			list = append(list, m)
		}
	}
	return list, nil
}

// fakeTxRunner simula la transacción: snapshot antes de fn, restore si fn falla.
type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	warehouseRepo repository.WarehouseRepository,
	totalRepo repository.TotalInventoryRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(&fakeDocRepo{r.s}, &fakeWarehouseRepo{r.s}, &fakeTotalRepo{r.s}, &fakeMovementRepo{r.s})
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func newEngine(t *testing.T) (*documents.DocumentUseCase, *memStore) {
	t.Helper()
	s := newMemStore()
	uc := documents.NewDocumentUseCase(
		&fakeTxRunner{s},
		&fakeDocRepo{s},
		&fakeWarehouseRepo{s},
		&fakeProductRepo{s},
		&fakeMovementRepo{s},
		logger.Nop(),
	)
	return uc, s
}

func seedProduct(t *testing.T, s *memStore, id int64, name string) {
	t.Helper()
	p, err := entity.NewProduct(id, name, "", decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, (&fakeProductRepo{s}).Create(p))
}

func seedWarehouse(t *testing.T, s *memStore, id int64, location string) {
	t.Helper()
	w, err := entity.NewWarehouse(id, location)
	require.NoError(t, err)
	require.NoError(t, (&fakeWarehouseRepo{s}).Create(w))
}

func items(in ...documents.ItemInput) []documents.ItemInput { return in }

func item(productID, quantity int64) documents.ItemInput {
	return documents.ItemInput{ProductID: productID, Quantity: quantity, UnitPrice: decimal.NewFromInt(10)}
}

func TestCreateImportDocument_QuedaEnDraftSinMoverStock(t *testing.T) {
	uc, s := newEngine(t)
	ctx := context.Background()
	seedProduct(t, s, 7, "Tornillo")
	seedWarehouse(t, s, 1, "Bodega Norte")

	doc, err := uc.CreateImportDocument(ctx, 1, items(item(7, 100)), "ana", "compra inicial")
	require.NoError(t, err)

	assert.Equal(t, entity.DocumentStatusDraft, doc.Status)
	assert.NotZero(t, doc.ID)
	assert.Equal(t, int64(0), s.stock[1][7], "crear un documento nunca mueve stock")
	assert.Equal(t, int64(0), s.totals[7])
}

func TestCreateImportDocument_BodegaInexistente(t *testing.T) {
	uc, s := newEngine(t)
	seedProduct(t, s, 7, "Tornillo")

	_, err := uc.CreateImportDocument(context.Background(), 99, items(item(7, 100)), "ana", "")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestCreateImportDocument_ProductoInexistente(t *testing.T) {
	uc, s := newEngine(t)
	seedWarehouse(t, s, 1, "Bodega Norte")

	_, err := uc.CreateImportDocument(context.Background(), 1, items(item(99, 100)), "ana", "")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestCreateDocument_SinLineas(t *testing.T) {
	uc, s := newEngine(t)
	seedWarehouse(t, s, 1, "Bodega Norte")

	_, err := uc.CreateImportDocument(context.Background(), 1, nil, "ana", "")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCreateTransferDocument_MismaBodega(t *testing.T) {
	uc, s := newEngine(t)
	seedProduct(t, s, 7, "Tornillo")
	seedWarehouse(t, s, 1, "Bodega Norte")

	_, err := uc.CreateTransferDocument(context.Background(), 1, 1, items(item(7, 10)), "ana", "")
	require.Error(t, err)
	assert.Equal(t, domain.KindBusinessRule, domain.KindOf(err))
}

func TestCreateTransferDocument_ChequeoBlandoDeStock(t *testing.T) {
	uc, s := newEngine(t)
	seedProduct(t, s, 7, "Tornillo")
	seedWarehouse(t, s, 1, "Bodega Norte")
	seedWarehouse(t, s, 2, "Bodega Sur")
	s.stock[1] = map[int64]int64{7: 30}

	_, err := uc.CreateTransferDocument(context.Background(), 1, 2, items(item(7, 40)), "ana", "")
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))

	doc, err := uc.CreateTransferDocument(context.Background(), 1, 2, items(item(7, 30)), "ana", "")
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusDraft, doc.Status)
}

func TestCreateExportDocument_SinChequeoDeStock(t *testing.T) {
	uc, s := newEngine(t)
	seedProduct(t, s, 7, "Tornillo")
	seedWarehouse(t, s, 1, "Bodega Norte")

	// Se permite planear una salida antes de tener el stock; el chequeo
	// autoritativo ocurre al postear.
	doc, err := uc.CreateExportDocument(context.Background(), 1, items(item(7, 500)), "ana", "")
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusDraft, doc.Status)
}

func TestPostDocument_ImportAplicaLedgers(t *testing.T) {
	uc, s := newEngine(t)
	ctx := context.Background()
	seedProduct(t, s, 7, "Tornillo")
	seedWarehouse(t, s, 1, "Bodega Norte")

	doc, err := uc.CreateImportDocument(ctx, 1, items(item(7, 100)), "ana", "")
	require.NoError(t, err)

	posted, err := uc.PostDocument(ctx, doc.ID, "carlos")
	require.NoError(t, err)

	assert.Equal(t, entity.DocumentStatusPosted, posted.Status)
	assert.Equal(t, "carlos", posted.ApprovedBy)
	assert.Equal(t, int64(100), s.stock[1][7])
	assert.Equal(t, int64(100), s.totals[7])

	movements, err := uc.ListDocumentMovements(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementDirectionIn, movements[0].Direction)
	assert.Equal(t, int64(100), movements[0].Quantity)
}

func TestPostDocument_TransferReubicaSinCambiarTotal(t *testing.T) {
	uc, s := newEngine(t)
	ctx := context.Background()
	seedProduct(t, s, 7, "Tornillo")
	seedWarehouse(t, s, 1, "Bodega Norte")
	seedWarehouse(t, s, 2, "Bodega Sur")

	imp, err := uc.CreateImportDocument(ctx, 1, items(item(7, 100)), "ana", "")
	require.NoError(t, err)
	_, err = uc.PostDocument(ctx, imp.ID, "carlos")
	require.NoError(t, err)

	tr, err := uc.CreateTransferDocument(ctx, 1, 2, items(item(7, 40)), "ana", "")
	require.NoError(t, err)
	_, err = uc.PostDocument(ctx, tr.ID, "carlos")
	require.NoError(t, err)

	assert.Equal(t, int64(60), s.stock[1][7])
	assert.Equal(t, int64(40), s.stock[2][7])
	assert.Equal(t, int64(100), s.totals[7], "un traslado reubica stock, no cambia el total")

	movements, err := uc.ListDocumentMovements(ctx, tr.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2, "un traslado genera salida del origen y entrada al destino")
	assert.Equal(t, movements[0].TransactionID, movements[1].TransactionID,
		"ambos movimientos comparten el id de transacción")
}

func TestPostDocument_ExportInsuficienteNoAplicaNada(t *testing.T) {
	uc, s := newEngine(t)
	ctx := context.Background()
	seedProduct(t, s, 7, "Tornillo")
	seedWarehouse(t, s, 1, "Bodega Norte")
	seedWarehouse(t, s, 2, "Bodega Sur")

	// Escenario completo: importar 100, trasladar 40, intentar exportar 70.
	imp, err := uc.CreateImportDocument(ctx, 1, items(item(7, 100)), "ana", "")
	require.NoError(t, err)
	_, err = uc.PostDocument(ctx, imp.ID, "carlos")
	require.NoError(t, err)

	tr, err := uc.CreateTransferDocument(ctx, 1, 2, items(item(7, 40)), "ana", "")
	require.NoError(t, err)
	_, err = uc.PostDocument(ctx, tr.ID, "carlos")
	require.NoError(t, err)

	exp, err := uc.CreateExportDocument(ctx, 1, items(item(7, 70)), "ana", "")
	require.NoError(t, err)

	movementsBefore := len(s.movements)
	_, err = uc.PostDocument(ctx, exp.ID, "carlos")
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))

	// Nada cambió: ni bodegas, ni total, ni rastro, ni estado del documento.
	assert.Equal(t, int64(60), s.stock[1][7])
	assert.Equal(t, int64(40), s.stock[2][7])
	assert.Equal(t, int64(100), s.totals[7])
	assert.Len(t, s.movements, movementsBefore)
	assert.Equal(t, entity.DocumentStatusDraft, s.docs[exp.ID].Status,
		"el documento sigue en DRAFT y puede postearse después")
}

func TestPostDocument_MultilineaSinAplicacionParcial(t *testing.T) {
	uc, s := newEngine(t)
	ctx := context.Background()
	seedProduct(t, s, 7, "Tornillo")
	seedProduct(t, s, 8, "Tuerca")
	seedWarehouse(t, s, 1, "Bodega Norte")
	s.stock[1] = map[int64]int64{7: 50, 8: 5}
	s.totals[7] = 50
	s.totals[8] = 5

	// La primera línea alcanza, la segunda no: la primera tampoco debe quedar aplicada.
	exp, err := uc.CreateExportDocument(ctx, 1, items(item(7, 20), item(8, 10)), "ana", "")
	require.NoError(t, err)

	_, err = uc.PostDocument(ctx, exp.ID, "carlos")
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))

	assert.Equal(t, int64(50), s.stock[1][7], "la línea que sí alcanzaba debe revertirse")
	assert.Equal(t, int64(5), s.stock[1][8])
	assert.Equal(t, int64(50), s.totals[7])
	assert.Empty(t, s.movements)
}

func TestPostDocument_NoDraft(t *testing.T) {
	uc, s := newEngine(t)
	ctx := context.Background()
	seedProduct(t, s, 7, "Tornillo")
	seedWarehouse(t, s, 1, "Bodega Norte")

	doc, err := uc.CreateImportDocument(ctx, 1, items(item(7, 100)), "ana", "")
	require.NoError(t, err)
	_, err = uc.PostDocument(ctx, doc.ID, "carlos")
	require.NoError(t, err)

	_, err = uc.PostDocument(ctx, doc.ID, "carlos")
	require.Error(t, err, "re-postear no debe duplicar stock")
	assert.Equal(t, domain.KindInvalidStatus, domain.KindOf(err))
	assert.Equal(t, int64(100), s.stock[1][7])
	assert.Equal(t, int64(100), s.totals[7])
}

func TestPostDocument_Inexistente(t *testing.T) {
	uc, _ := newEngine(t)

	_, err := uc.PostDocument(context.Background(), 999, "carlos")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestPostDocument_BodegaEliminadaEntreCreacionYPosteo(t *testing.T) {
	uc, s := newEngine(t)
	ctx := context.Background()
	seedProduct(t, s, 7, "Tornillo")
	seedWarehouse(t, s, 1, "Bodega Norte")

	doc, err := uc.CreateImportDocument(ctx, 1, items(item(7, 100)), "ana", "")
	require.NoError(t, err)

	delete(s.locations, 1)

	_, err = uc.PostDocument(ctx, doc.ID, "carlos")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Equal(t, entity.DocumentStatusDraft, s.docs[doc.ID].Status)
}

func TestCancelDocument_Draft(t *testing.T) {
	uc, s := newEngine(t)
	ctx := context.Background()
	seedProduct(t, s, 7, "Tornillo")
	seedWarehouse(t, s, 1, "Bodega Norte")

	doc, err := uc.CreateImportDocument(ctx, 1, items(item(7, 100)), "ana", "")
	require.NoError(t, err)

	cancelled, err := uc.CancelDocument(ctx, doc.ID, "luisa", "orden anulada")
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusCancelled, cancelled.Status)
	assert.Equal(t, "luisa", cancelled.CancelledBy)
	assert.Equal(t, int64(0), s.stock[1][7], "cancelar un DRAFT nunca toca los ledgers")
}

func TestCancelDocument_PosteadoFalla(t *testing.T) {
	uc, s := newEngine(t)
	ctx := context.Background()
	seedProduct(t, s, 7, "Tornillo")
	seedWarehouse(t, s, 1, "Bodega Norte")

	doc, err := uc.CreateImportDocument(ctx, 1, items(item(7, 100)), "ana", "")
	require.NoError(t, err)
	_, err = uc.PostDocument(ctx, doc.ID, "carlos")
	require.NoError(t, err)

	_, err = uc.CancelDocument(ctx, doc.ID, "luisa", "tarde")
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidStatus, domain.KindOf(err))
	assert.Equal(t, int64(100), s.stock[1][7])
}

func TestCancelDocument_CanceladoPosteoFalla(t *testing.T) {
	uc, s := newEngine(t)
	ctx := context.Background()
	seedProduct(t, s, 7, "Tornillo")
	seedWarehouse(t, s, 1, "Bodega Norte")

	doc, err := uc.CreateImportDocument(ctx, 1, items(item(7, 100)), "ana", "")
	require.NoError(t, err)
	_, err = uc.CancelDocument(ctx, doc.ID, "luisa", "")
	require.NoError(t, err)

	_, err = uc.PostDocument(ctx, doc.ID, "carlos")
	require.Error(t, err, "CANCELLED es terminal")
	assert.Equal(t, domain.KindInvalidStatus, domain.KindOf(err))
	assert.Equal(t, int64(0), s.stock[1][7])
}

func TestListDocumentsByStatus_EstadoInvalido(t *testing.T) {
	uc, _ := newEngine(t)

	_, err := uc.ListDocumentsByStatus(context.Background(), "PENDING", 20, 0)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

// lockContendedDocRepo simula un posteo concurrente que gana la carrera:
// commitea justo antes de que el cancel obtenga el bloqueo de la fila.
type lockContendedDocRepo struct {
	repository.DocumentRepository
	beforeLock func()
	fired      bool
}

func (r *lockContendedDocRepo) GetByIDForUpdate(id int64) (*entity.Document, error) {
	if !r.fired {
		r.fired = true
		r.beforeLock()
	}
	return r.DocumentRepository.GetByIDForUpdate(id)
}

type contendedTxRunner struct {
	s          *memStore
	beforeLock func()
}

func (r *contendedTxRunner) Run(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	warehouseRepo repository.WarehouseRepository,
	totalRepo repository.TotalInventoryRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	docRepo := &lockContendedDocRepo{
		DocumentRepository: &fakeDocRepo{r.s},
		beforeLock:         r.beforeLock,
	}
	// Sin snapshot: en este escenario fn falla antes de mutar nada.
	return fn(docRepo, &fakeWarehouseRepo{r.s}, &fakeTotalRepo{r.s}, &fakeMovementRepo{r.s})
}

func TestCancelDocument_PosteoConcurrenteGanaLaCarrera(t *testing.T) {
	s := newMemStore()
	ctx := context.Background()
	seedProduct(t, s, 7, "Tornillo")
	seedWarehouse(t, s, 1, "Bodega Norte")

	postUC := documents.NewDocumentUseCase(
		&fakeTxRunner{s}, &fakeDocRepo{s}, &fakeWarehouseRepo{s},
		&fakeProductRepo{s}, &fakeMovementRepo{s}, logger.Nop(),
	)
	doc, err := postUC.CreateImportDocument(ctx, 1, items(item(7, 100)), "ana", "")
	require.NoError(t, err)

	// El posteo commitea entre el inicio del cancel y su bloqueo de fila.
	runner := &contendedTxRunner{s: s, beforeLock: func() {
		_, err := postUC.PostDocument(ctx, doc.ID, "carlos")
		require.NoError(t, err)
	}}
	cancelUC := documents.NewDocumentUseCase(
		runner, &fakeDocRepo{s}, &fakeWarehouseRepo{s},
		&fakeProductRepo{s}, &fakeMovementRepo{s}, logger.Nop(),
	)

	_, err = cancelUC.CancelDocument(ctx, doc.ID, "luisa", "tarde")
	require.Error(t, err, "cancelar un documento ya posteado debe fallar aun bajo carrera")
	assert.Equal(t, domain.KindInvalidStatus, domain.KindOf(err))
	assert.Equal(t, entity.DocumentStatusPosted, s.docs[doc.ID].Status,
		"el documento posteado nunca debe quedar CANCELLED")
	assert.Equal(t, int64(100), s.stock[1][7], "los ledgers del posteo quedan intactos")
	assert.Equal(t, int64(100), s.totals[7])
}

func TestGetDocumentWithDetails(t *testing.T) {
	uc, s := newEngine(t)
	ctx := context.Background()
	seedProduct(t, s, 7, "Tornillo")
	seedWarehouse(t, s, 1, "Bodega Norte")
	seedWarehouse(t, s, 2, "Bodega Sur")
	s.stock[1] = map[int64]int64{7: 100}

	doc, err := uc.CreateTransferDocument(ctx, 1, 2, items(item(7, 40)), "ana", "reparto")
	require.NoError(t, err)

	details, err := uc.GetDocumentWithDetails(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, details.Items, 1)
	assert.Equal(t, "Tornillo", details.Items[0].Product.Name)
	assert.Equal(t, "Bodega Norte", details.FromWarehouse.Location)
	assert.Equal(t, "Bodega Sur", details.ToWarehouse.Location)
	assert.True(t, details.TotalValue.Equal(decimal.NewFromInt(400)))
}
