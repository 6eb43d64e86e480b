package warehouses_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avandall/WMS-Project-sub000/internal/application/warehouses"
	"github.com/avandall/WMS-Project-sub000/internal/domain"
	"github.com/avandall/WMS-Project-sub000/internal/domain/entity"
	"github.com/avandall/WMS-Project-sub000/internal/domain/repository"
)

// Fakes en memoria acotados a lo que usa el caso de uso de bodegas.

type memState struct {
	products  map[int64]entity.Product
	locations map[int64]string
	stock     map[int64]map[int64]int64
}

func newMemState() *memState {
	return &memState{
		products:  make(map[int64]entity.Product),
		locations: make(map[int64]string),
		stock:     make(map[int64]map[int64]int64),
	}
}

type productRepoStub struct{ s *memState }

func (r *productRepoStub) Create(p *entity.Product) error {
	if p.ID == 0 {
		p.ID = int64(len(r.s.products) + 1)
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepoStub) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepoStub) Update(p *entity.Product) error                  { return nil }
func (r *productRepoStub) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *productRepoStub) Delete(id int64) error                           { return nil }

type warehouseRepoStub struct{ s *memState }

func (r *warehouseRepoStub) Create(w *entity.Warehouse) error {
	if w.ID == 0 {
		w.ID = int64(len(r.s.locations) + 1)
	}
	r.s.locations[w.ID] = w.Location
	return nil
}

func (r *warehouseRepoStub) GetByID(id int64) (*entity.Warehouse, error) {
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

func (r *warehouseRepoStub) Update(w *entity.Warehouse) error {
	r.s.locations[w.ID] = w.Location
	return nil
}

func (r *warehouseRepoStub) List(limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for id, loc := range r.s.locations {
		w, err := entity.NewWarehouse(id, loc)
		if err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, nil
}

func (r *warehouseRepoStub) Delete(id int64) error {
	delete(r.s.locations, id)
	delete(r.s.stock, id)
	return nil
}

func (r *warehouseRepoStub) AddProduct(warehouseID, productID, quantity int64) error {
	if r.s.stock[warehouseID] == nil {
		r.s.stock[warehouseID] = make(map[int64]int64)
	}
	r.s.stock[warehouseID][productID] += quantity
	return nil
}

func (r *warehouseRepoStub) RemoveProduct(warehouseID, productID, quantity int64) error {
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

func (r *warehouseRepoStub) GetProductQuantity(warehouseID, productID int64) (int64, error) {
	return r.s.stock[warehouseID][productID], nil
}

func (r *warehouseRepoStub) GetInventory(warehouseID int64) ([]entity.InventoryLine, error) {
	var lines []entity.InventoryLine
	for pid, qty := range r.s.stock[warehouseID] {
		lines = append(lines, entity.InventoryLine{ProductID: pid, Quantity: qty})
	}
	return lines, nil
}

func (r *warehouseRepoStub) GetInventoryByProduct(productID int64) ([]repository.ProductAllocation, error) {
	var allocations []repository.ProductAllocation
	for wid, lines := range r.s.stock {
		if qty, ok := lines[productID]; ok {
			allocations = append(allocations, repository.ProductAllocation{WarehouseID: wid, Quantity: qty})
		}
	}
	return allocations, nil
}

type txRunnerStub struct{ s *memState }

func (r *txRunnerStub) Run(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	warehouseRepo repository.WarehouseRepository,
	totalRepo repository.TotalInventoryRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	// Snapshot del stock para restaurar si fn falla a mitad de camino.
	snap := make(map[int64]map[int64]int64, len(r.s.stock))
	for wid, lines := range r.s.stock {
		cp := make(map[int64]int64, len(lines))
		for pid, qty := range lines {
			cp[pid] = qty
		}
		snap[wid] = cp
	}
	err := fn(nil, &warehouseRepoStub{r.s}, nil, nil)
	if err != nil {
		r.s.stock = snap
		return err
	}
	return nil
}

func newWarehouseUC(t *testing.T) (*warehouses.WarehouseUseCase, *memState) {
	t.Helper()
	s := newMemState()
	uc := warehouses.NewWarehouseUseCase(&txRunnerStub{s}, &warehouseRepoStub{s}, &productRepoStub{s})
	return uc, s
}

func seed(t *testing.T, s *memState) {
	t.Helper()
	p, err := entity.NewProduct(7, "Tornillo", "", decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, (&productRepoStub{s}).Create(p))
	s.locations[1] = "Bodega Norte"
	s.locations[2] = "Bodega Sur"
}

func TestCreate_AsignaID(t *testing.T) {
	uc, _ := newWarehouseUC(t)

	w, err := uc.Create(context.Background(), "Bodega Norte")
	require.NoError(t, err)
	assert.NotZero(t, w.ID)
}

func TestCreateWithID_DuplicadaFalla(t *testing.T) {
	uc, s := newWarehouseUC(t)
	seed(t, s)

	_, err := uc.CreateWithID(context.Background(), 1, "Otra")
	require.Error(t, err)
	assert.Equal(t, domain.KindAlreadyExists, domain.KindOf(err))
}

func TestAddProduct_ProductoInexistente(t *testing.T) {
	uc, s := newWarehouseUC(t)
	seed(t, s)

	err := uc.AddProduct(context.Background(), 1, 99, 10)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestRemoveProduct_Insuficiente(t *testing.T) {
	uc, s := newWarehouseUC(t)
	seed(t, s)
	s.stock[1] = map[int64]int64{7: 5}

	err := uc.RemoveProduct(context.Background(), 1, 7, 10)
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))
	assert.Equal(t, int64(5), s.stock[1][7])
}

func TestTransferProduct(t *testing.T) {
	uc, s := newWarehouseUC(t)
	seed(t, s)
	s.stock[1] = map[int64]int64{7: 100}

	require.NoError(t, uc.TransferProduct(context.Background(), 1, 2, 7, 40))
	assert.Equal(t, int64(60), s.stock[1][7])
	assert.Equal(t, int64(40), s.stock[2][7])
}

func TestTransferProduct_MismaBodega(t *testing.T) {
	uc, s := newWarehouseUC(t)
	seed(t, s)

	err := uc.TransferProduct(context.Background(), 1, 1, 7, 10)
	require.Error(t, err)
	assert.Equal(t, domain.KindBusinessRule, domain.KindOf(err))
}

func TestTransferProduct_InsuficienteNoTocaDestino(t *testing.T) {
	uc, s := newWarehouseUC(t)
	seed(t, s)
	s.stock[1] = map[int64]int64{7: 5}

	err := uc.TransferProduct(context.Background(), 1, 2, 7, 10)
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))
	assert.Equal(t, int64(5), s.stock[1][7])
	assert.Empty(t, s.stock[2])
}

func TestTransferAllInventory(t *testing.T) {
	uc, s := newWarehouseUC(t)
	seed(t, s)
	p2, err := entity.NewProduct(8, "Tuerca", "", decimal.NewFromInt(5))
	require.NoError(t, err)
	require.NoError(t, (&productRepoStub{s}).Create(p2))
	s.stock[1] = map[int64]int64{7: 100, 8: 20}

	transferred, err := uc.TransferAllInventory(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, transferred, 2)
	assert.Empty(t, s.stock[1], "la bodega origen queda vacía")
	assert.Equal(t, int64(100), s.stock[2][7])
	assert.Equal(t, int64(20), s.stock[2][8])
}

func TestDelete_BodegaConInventarioFalla(t *testing.T) {
	uc, s := newWarehouseUC(t)
	seed(t, s)
	s.stock[1] = map[int64]int64{7: 100}

	err := uc.Delete(context.Background(), 1)
	require.Error(t, err, "una bodega con stock no se elimina; primero hay que vaciarla")
	assert.Equal(t, domain.KindBusinessRule, domain.KindOf(err))
	_, ok := s.locations[1]
	assert.True(t, ok)
}

func TestDelete_BodegaVacia(t *testing.T) {
	uc, s := newWarehouseUC(t)
	seed(t, s)

	require.NoError(t, uc.Delete(context.Background(), 2))
	_, ok := s.locations[2]
	assert.False(t, ok)
}

func TestListWithSummary(t *testing.T) {
	uc, s := newWarehouseUC(t)
	seed(t, s)
	s.stock[1] = map[int64]int64{7: 100}

	summaries, err := uc.ListWithSummary(context.Background(), 20, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	for _, summary := range summaries {
		if summary.Warehouse.ID == 1 {
			assert.Equal(t, int64(100), summary.TotalItems)
			assert.Equal(t, 1, summary.UniqueProducts)
		}
	}
}
