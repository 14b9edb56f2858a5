package inventory_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokha/pos-api/internal/application/inventory"
	"github.com/sokha/pos-api/internal/domain"
	"github.com/sokha/pos-api/internal/domain/entity"
	"github.com/sokha/pos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: repos + TxRunner con semántica de rollback real
// ──────────────────────────────────────────────────────────────────────────────

// store estado en memoria compartido por los fakes.
type store struct {
	batches     []*entity.InventoryBatch
	adjustments []*entity.StockAdjustment
	sales       map[string]*entity.SalesTransaction
	transfers   map[string]*entity.StockTransfer
}

func newStore() *store {
	return &store{
		sales:     map[string]*entity.SalesTransaction{},
		transfers: map[string]*entity.StockTransfer{},
	}
}

func (s *store) clone() *store {
	c := newStore()
	for _, b := range s.batches {
		cb := *b
		c.batches = append(c.batches, &cb)
	}
	for _, a := range s.adjustments {
		ca := *a
		c.adjustments = append(c.adjustments, &ca)
	}
	for id, sale := range s.sales {
		cs := *sale
		cs.SaleItems = append([]entity.SaleItem(nil), sale.SaleItems...)
		c.sales[id] = &cs
	}
	for id, tr := range s.transfers {
		ct := *tr
		ct.Items = append([]entity.TransferItem(nil), tr.Items...)
		c.transfers[id] = &ct
	}
	return c
}

func (s *store) replaceWith(o *store) {
	s.batches = o.batches
	s.adjustments = o.adjustments
	s.sales = o.sales
	s.transfers = o.transfers
}

type fakeBatchRepo struct{ s *store }

func (r *fakeBatchRepo) Insert(batch *entity.InventoryBatch) error {
	cb := *batch
	r.s.batches = append(r.s.batches, &cb)
	return nil
}

func (r *fakeBatchRepo) ListForUpdate(productID, warehouseID string) ([]*entity.InventoryBatch, error) {
	var out []*entity.InventoryBatch
	for _, b := range r.s.batches {
		if b.ProductID == productID && b.WarehouseID == warehouseID {
			out = append(out, b)
		}
	}
	// FIFO por vencimiento: el que vence primero adelante, sin vencimiento al final.
	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := out[i], out[j]
		switch {
		case bi.ExpiryDate == nil && bj.ExpiryDate == nil:
			return bi.CreatedAt.Before(bj.CreatedAt)
		case bi.ExpiryDate == nil:
			return false
		case bj.ExpiryDate == nil:
			return true
		case !bi.ExpiryDate.Equal(*bj.ExpiryDate):
			return bi.ExpiryDate.Before(*bj.ExpiryDate)
		default:
			return bi.CreatedAt.Before(bj.CreatedAt)
		}
	})
	return out, nil
}

func (r *fakeBatchRepo) UpdateQuantity(batchID string, quantity decimal.Decimal) error {
	for _, b := range r.s.batches {
		if b.ID == batchID {
			b.Quantity = quantity
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeBatchRepo) TotalQuantity(productID, warehouseID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range r.s.batches {
		if b.ProductID != productID {
			continue
		}
		if warehouseID != "" && b.WarehouseID != warehouseID {
			continue
		}
		total = total.Add(b.Quantity)
	}
	return total, nil
}

type fakeAdjustmentRepo struct{ s *store }

func (r *fakeAdjustmentRepo) Create(adj *entity.StockAdjustment) error {
	ca := *adj
	r.s.adjustments = append(r.s.adjustments, &ca)
	return nil
}

type fakeSaleRepo struct{ s *store }

func (r *fakeSaleRepo) Create(sale *entity.SalesTransaction) error {
	cs := *sale
	cs.SaleItems = append([]entity.SaleItem(nil), sale.SaleItems...)
	r.s.sales[sale.ID] = &cs
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.SalesTransaction, error) {
	return r.s.sales[id], nil
}

func (r *fakeSaleRepo) GetForUpdate(id string) (*entity.SalesTransaction, error) {
	return r.s.sales[id], nil
}

func (r *fakeSaleRepo) MarkReverted(id, staffID string, at time.Time) error {
	sale, ok := r.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	sale.Status = entity.SaleStatusReverted
	sale.RevertedBy = staffID
	sale.RevertedAt = &at
	return nil
}

type fakeTransferRepo struct{ s *store }

func (r *fakeTransferRepo) Create(tr *entity.StockTransfer) error {
	ct := *tr
	ct.Items = append([]entity.TransferItem(nil), tr.Items...)
	r.s.transfers[tr.ID] = &ct
	return nil
}

func (r *fakeTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	return r.s.transfers[id], nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetActiveByIDs(ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Deactivate(id string) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	r.warehouses[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.warehouses[id], nil
}

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	r.warehouses[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) List() ([]*entity.Warehouse, error) {
	return nil, nil
}

// fakeTxRunner emula la transacción: clona el estado antes de fn y lo
// restaura si fn falla, igual que un ROLLBACK.
type fakeTxRunner struct {
	s        *store
	products *fakeProductRepo
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(r inventory.TxRepos) error) error {
	snapshot := tx.s.clone()
	repos := inventory.TxRepos{
		Batches:     &fakeBatchRepo{s: tx.s},
		Adjustments: &fakeAdjustmentRepo{s: tx.s},
		Sales:       &fakeSaleRepo{s: tx.s},
		Transfers:   &fakeTransferRepo{s: tx.s},
		Products:    tx.products,
	}
	if err := fn(repos); err != nil {
		tx.s.replaceWith(snapshot)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	staffID     = "staff-1"
	productA    = "prod-a"
	productB    = "prod-b"
	warehouseA  = "wh-a"
	warehouseB  = "wh-b"
	priceA      = "2.50"
	priceB      = "10.00"
)

type fixture struct {
	s      *store
	engine *inventory.InventoryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newStore()
	products := &fakeProductRepo{products: map[string]*entity.Product{
		productA: {ID: productA, SKU: "SKU-A", NameEN: "Rice 1kg", SellingPrice: dec(priceA), IsActive: true},
		productB: {ID: productB, SKU: "SKU-B", NameEN: "Fish Sauce", SellingPrice: dec(priceB), IsActive: true},
	}}
	warehouses := &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		warehouseA: {ID: warehouseA, Name: "Main Store", IsRetailLocation: true},
		warehouseB: {ID: warehouseB, Name: "Back Warehouse"},
	}}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	engine := inventory.NewInventoryUseCase(&fakeTxRunner{s: s, products: products}, products, warehouses, log)
	return &fixture{s: s, engine: engine}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// addBatch siembra un lote directamente en el estado.
func (f *fixture) addBatch(productID, warehouseID, qty string, expiry *time.Time, createdAt time.Time) *entity.InventoryBatch {
	b := &entity.InventoryBatch{
		ID:          "batch-" + productID + "-" + createdAt.Format("150405.000"),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    dec(qty),
		ExpiryDate:  expiry,
		CreatedAt:   createdAt,
	}
	f.s.batches = append(f.s.batches, b)
	return b
}

func (f *fixture) totalStock(productID, warehouseID string) decimal.Decimal {
	repo := &fakeBatchRepo{s: f.s}
	total, _ := repo.TotalQuantity(productID, warehouseID)
	return total
}

func (f *fixture) adjustmentsFor(reason string) []*entity.StockAdjustment {
	var out []*entity.StockAdjustment
	for _, a := range f.s.adjustments {
		if a.Reason == reason {
			out = append(out, a)
		}
	}
	return out
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordPurchase
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordPurchase_CreaLoteYAjuste(t *testing.T) {
	f := newFixture(t)

	cost := dec("1.80")
	batch, err := f.engine.RecordPurchase(context.Background(), inventory.PurchaseInput{
		ProductID:   productA,
		WarehouseID: warehouseA,
		Quantity:    dec("100"),
		ExpiryDate:  datePtr(2026, 12, 1),
		BatchNumber: "LOT-7",
		Cost:        &cost,
		StaffID:     staffID,
	})
	require.NoError(t, err)
	require.NotNil(t, batch)

	assert.True(t, f.totalStock(productA, warehouseA).Equal(dec("100")))
	require.Len(t, f.s.batches, 1)
	assert.Equal(t, "LOT-7", f.s.batches[0].BatchNumber)

	adjs := f.adjustmentsFor(entity.ReasonPurchaseIn)
	require.Len(t, adjs, 1, "una compra debe producir exactamente un ajuste purchase_in")
	assert.True(t, adjs[0].Quantity.Equal(dec("100")), "el ajuste debe ser positivo")
	assert.Contains(t, adjs[0].Notes, "LOT-7")
	assert.Contains(t, adjs[0].Notes, "2026-12-01")
	assert.Contains(t, adjs[0].Notes, "Unit cost: 1.8", "el costo unitario queda en la auditoría")
}

func TestRecordPurchase_NoFusionaLotes(t *testing.T) {
	f := newFixture(t)
	f.addBatch(productA, warehouseA, "50", nil, time.Now().Add(-time.Hour))

	_, err := f.engine.RecordPurchase(context.Background(), inventory.PurchaseInput{
		ProductID:   productA,
		WarehouseID: warehouseA,
		Quantity:    dec("30"),
		StaffID:     staffID,
	})
	require.NoError(t, err)

	assert.Len(t, f.s.batches, 2, "cada compra crea un lote nuevo, nunca se fusiona")
	assert.True(t, f.totalStock(productA, warehouseA).Equal(dec("80")))
}

func TestRecordPurchase_CantidadInvalida(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.RecordPurchase(context.Background(), inventory.PurchaseInput{
		ProductID:   productA,
		WarehouseID: warehouseA,
		Quantity:    dec("0"),
		StaffID:     staffID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.engine.RecordPurchase(context.Background(), inventory.PurchaseInput{
		ProductID:   productA,
		WarehouseID: warehouseA,
		Quantity:    dec("-5"),
		StaffID:     staffID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.s.batches)
	assert.Empty(t, f.s.adjustments)
}

func TestRecordPurchase_SinStaff(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.RecordPurchase(context.Background(), inventory.PurchaseInput{
		ProductID:   productA,
		WarehouseID: warehouseA,
		Quantity:    dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRecordPurchase_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.RecordPurchase(context.Background(), inventory.PurchaseInput{
		ProductID:   "no-such",
		WarehouseID: warehouseA,
		Quantity:    dec("10"),
		StaffID:     staffID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_PositivoCreaLoteNuevo(t *testing.T) {
	f := newFixture(t)
	f.addBatch(productA, warehouseA, "20", nil, time.Now().Add(-time.Hour))

	err := f.engine.AdjustStock(context.Background(), inventory.AdjustmentInput{
		ProductID:   productA,
		WarehouseID: warehouseA,
		Delta:       dec("15"),
		Reason:      entity.ReasonAdjustment,
		Notes:       "conteo físico",
		StaffID:     staffID,
	})
	require.NoError(t, err)

	assert.Len(t, f.s.batches, 2)
	assert.True(t, f.totalStock(productA, warehouseA).Equal(dec("35")))

	adjs := f.adjustmentsFor(entity.ReasonAdjustment)
	require.Len(t, adjs, 1)
	assert.True(t, adjs[0].Quantity.Equal(dec("15")))
}

func TestAdjustStock_NegativoDescuentaFIFO(t *testing.T) {
	f := newFixture(t)
	base := time.Now().Add(-48 * time.Hour)
	// El lote que vence primero debe consumirse primero aunque sea más nuevo.
	late := f.addBatch(productA, warehouseA, "10", datePtr(2027, 6, 1), base)
	early := f.addBatch(productA, warehouseA, "10", datePtr(2026, 9, 1), base.Add(time.Hour))

	err := f.engine.AdjustStock(context.Background(), inventory.AdjustmentInput{
		ProductID:   productA,
		WarehouseID: warehouseA,
		Delta:       dec("-12"),
		Reason:      entity.ReasonAdjustment,
		StaffID:     staffID,
	})
	require.NoError(t, err)

	assert.True(t, early.Quantity.Equal(dec("0")), "el lote que vence primero se agota primero")
	assert.True(t, late.Quantity.Equal(dec("8")))
	assert.True(t, f.totalStock(productA, warehouseA).Equal(dec("8")))
	assert.Len(t, f.s.batches, 2, "los lotes en cero se conservan")

	adjs := f.adjustmentsFor(entity.ReasonAdjustment)
	require.Len(t, adjs, 1)
	assert.True(t, adjs[0].Quantity.Equal(dec("-12")), "el ajuste lleva el delta con signo")
}

func TestAdjustStock_StockInsuficienteSinEfectos(t *testing.T) {
	f := newFixture(t)
	f.addBatch(productA, warehouseA, "5", nil, time.Now())

	err := f.engine.AdjustStock(context.Background(), inventory.AdjustmentInput{
		ProductID:   productA,
		WarehouseID: warehouseA,
		Delta:       dec("-6"),
		Reason:      entity.ReasonAdjustment,
		StaffID:     staffID,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, f.totalStock(productA, warehouseA).Equal(dec("5")), "sin efecto parcial")
	assert.Empty(t, f.s.adjustments, "no debe escribirse auditoría de una operación fallida")
}

func TestAdjustStock_RazonInvalida(t *testing.T) {
	f := newFixture(t)
	f.addBatch(productA, warehouseA, "5", nil, time.Now())

	for _, reason := range []string{entity.ReasonPurchaseIn, entity.ReasonTransferIn, entity.ReasonReversal, "whatever", ""} {
		err := f.engine.AdjustStock(context.Background(), inventory.AdjustmentInput{
			ProductID:   productA,
			WarehouseID: warehouseA,
			Delta:       dec("1"),
			Reason:      reason,
			StaffID:     staffID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "razón %q debe rechazarse", reason)
	}
}

func TestAdjustStock_SaleOutConDeltaPositivo(t *testing.T) {
	f := newFixture(t)
	f.addBatch(productA, warehouseA, "5", nil, time.Now())

	// sale_out es una salida: un delta positivo crearía un lote de entrada
	// con razón de salida en la auditoría.
	err := f.engine.AdjustStock(context.Background(), inventory.AdjustmentInput{
		ProductID:   productA,
		WarehouseID: warehouseA,
		Delta:       dec("3"),
		Reason:      entity.ReasonSaleOut,
		StaffID:     staffID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, f.totalStock(productA, warehouseA).Equal(dec("5")), "sin efectos sobre el stock")
	require.Len(t, f.s.batches, 1)
	assert.Empty(t, f.adjustmentsFor(entity.ReasonSaleOut))

	// Con signo negativo la misma razón es válida.
	err = f.engine.AdjustStock(context.Background(), inventory.AdjustmentInput{
		ProductID:   productA,
		WarehouseID: warehouseA,
		Delta:       dec("-3"),
		Reason:      entity.ReasonSaleOut,
		StaffID:     staffID,
	})
	require.NoError(t, err)
	assert.True(t, f.totalStock(productA, warehouseA).Equal(dec("2")))
}

func TestAdjustStock_DeltaCero(t *testing.T) {
	f := newFixture(t)
	err := f.engine.AdjustStock(context.Background(), inventory.AdjustmentInput{
		ProductID:   productA,
		WarehouseID: warehouseA,
		Delta:       dec("0"),
		Reason:      entity.ReasonAdjustment,
		StaffID:     staffID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// TransferStock
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferStock_ConservaElTotal(t *testing.T) {
	f := newFixture(t)
	f.addBatch(productA, warehouseA, "40", datePtr(2026, 10, 1), time.Now().Add(-time.Hour))

	totalBefore := f.totalStock(productA, "")

	transferID, err := f.engine.TransferStock(context.Background(), inventory.TransferInput{
		FromWarehouseID: warehouseA,
		ToWarehouseID:   warehouseB,
		Items:           []entity.TransferItem{{ProductID: productA, Quantity: dec("15")}},
		StaffID:         staffID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, transferID)

	assert.True(t, f.totalStock(productA, warehouseA).Equal(dec("25")))
	assert.True(t, f.totalStock(productA, warehouseB).Equal(dec("15")))
	assert.True(t, f.totalStock(productA, "").Equal(totalBefore), "el traslado no crea ni destruye stock")

	// El lote destino conserva el vencimiento del lote origen.
	var dest *entity.InventoryBatch
	for _, b := range f.s.batches {
		if b.WarehouseID == warehouseB {
			dest = b
		}
	}
	require.NotNil(t, dest)
	require.NotNil(t, dest.ExpiryDate)
	assert.True(t, dest.ExpiryDate.Equal(*datePtr(2026, 10, 1)))

	outs := f.adjustmentsFor(entity.ReasonTransferOut)
	ins := f.adjustmentsFor(entity.ReasonTransferIn)
	require.Len(t, outs, 1)
	require.Len(t, ins, 1)
	assert.True(t, outs[0].Quantity.Equal(dec("-15")))
	assert.Equal(t, warehouseA, outs[0].WarehouseID)
	assert.True(t, ins[0].Quantity.Equal(dec("15")))
	assert.Equal(t, warehouseB, ins[0].WarehouseID)

	tr := f.s.transfers[transferID]
	require.NotNil(t, tr)
	assert.Equal(t, entity.TransferStatusCompleted, tr.Status)
}

func TestTransferStock_MismaBodega(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.TransferStock(context.Background(), inventory.TransferInput{
		FromWarehouseID: warehouseA,
		ToWarehouseID:   warehouseA,
		Items:           []entity.TransferItem{{ProductID: productA, Quantity: dec("1")}},
		StaffID:         staffID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransferStock_FallaUnaLineaSinEfectos(t *testing.T) {
	f := newFixture(t)
	f.addBatch(productA, warehouseA, "40", nil, time.Now())
	f.addBatch(productB, warehouseA, "2", nil, time.Now())

	_, err := f.engine.TransferStock(context.Background(), inventory.TransferInput{
		FromWarehouseID: warehouseA,
		ToWarehouseID:   warehouseB,
		Items: []entity.TransferItem{
			{ProductID: productA, Quantity: dec("10")}, // alcanza
			{ProductID: productB, Quantity: dec("5")},  // no alcanza
		},
		StaffID: staffID,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Todo-o-nada: ni la línea buena deja efectos.
	assert.True(t, f.totalStock(productA, warehouseA).Equal(dec("40")))
	assert.True(t, f.totalStock(productA, warehouseB).Equal(dec("0")))
	assert.Empty(t, f.s.adjustments)
	assert.Empty(t, f.s.transfers)
}

// ──────────────────────────────────────────────────────────────────────────────
// ProcessSale
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessSale_DescuentaYRegistra(t *testing.T) {
	f := newFixture(t)
	f.addBatch(productA, warehouseA, "100", nil, time.Now().Add(-time.Hour))
	f.addBatch(productB, warehouseA, "10", nil, time.Now().Add(-time.Hour))

	// 4 × 2.50 + 1 × 10.00 = 20.00
	sale, err := f.engine.ProcessSale(context.Background(), inventory.SaleInput{
		StaffID:     staffID,
		WarehouseID: warehouseA,
		Items: []inventory.SaleLine{
			{ProductID: productA, Quantity: dec("4")},
			{ProductID: productB, Quantity: dec("1")},
		},
		TotalAmount:   dec("20.00"),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.True(t, f.totalStock(productA, warehouseA).Equal(dec("96")))
	assert.True(t, f.totalStock(productB, warehouseA).Equal(dec("9")))

	assert.Equal(t, entity.SaleStatusActive, sale.Status)
	assert.Regexp(t, `^RCP-\d{8}-[0-9A-F]{8}$`, sale.ReceiptNumber)
	require.Len(t, sale.SaleItems, 2)
	assert.True(t, sale.SaleItems[0].UnitPrice.Equal(dec(priceA)), "el precio viene del producto, no del cliente")
	assert.True(t, sale.SaleItems[0].Subtotal.Equal(dec("10.00")))
	assert.Equal(t, "Rice 1kg", sale.SaleItems[0].NameEN, "la línea guarda la foto del nombre")

	outs := f.adjustmentsFor(entity.ReasonSaleOut)
	require.Len(t, outs, 2, "un ajuste sale_out por línea")
	for _, a := range outs {
		assert.True(t, a.Quantity.IsNegative(), "las salidas por venta llevan signo negativo")
	}
	assert.Len(t, f.s.sales, 1)
}

func TestProcessSale_TotalNoCoincide(t *testing.T) {
	f := newFixture(t)
	f.addBatch(productA, warehouseA, "100", nil, time.Now())

	_, err := f.engine.ProcessSale(context.Background(), inventory.SaleInput{
		StaffID:     staffID,
		WarehouseID: warehouseA,
		Items: []inventory.SaleLine{
			{ProductID: productA, Quantity: dec("4")},
		},
		TotalAmount:   dec("1.00"), // el real es 10.00
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"un total manipulado por el cliente debe rechazarse")
	assert.True(t, f.totalStock(productA, warehouseA).Equal(dec("100")))
	assert.Empty(t, f.s.sales)
}

func TestProcessSale_StockInsuficienteSinEfectos(t *testing.T) {
	f := newFixture(t)
	f.addBatch(productA, warehouseA, "100", nil, time.Now())
	f.addBatch(productB, warehouseA, "0", nil, time.Now())

	_, err := f.engine.ProcessSale(context.Background(), inventory.SaleInput{
		StaffID:     staffID,
		WarehouseID: warehouseA,
		Items: []inventory.SaleLine{
			{ProductID: productA, Quantity: dec("4")},
			{ProductID: productB, Quantity: dec("1")},
		},
		TotalAmount:   dec("20.00"),
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, f.totalStock(productA, warehouseA).Equal(dec("100")), "la primera línea se revierte")
	assert.Empty(t, f.s.adjustments)
	assert.Empty(t, f.s.sales)
}

func TestProcessSale_ConsumeFIFOPorVencimiento(t *testing.T) {
	f := newFixture(t)
	base := time.Now().Add(-48 * time.Hour)
	noExpiry := f.addBatch(productA, warehouseA, "10", nil, base)
	expiring := f.addBatch(productA, warehouseA, "10", datePtr(2026, 9, 15), base.Add(time.Hour))

	_, err := f.engine.ProcessSale(context.Background(), inventory.SaleInput{
		StaffID:     staffID,
		WarehouseID: warehouseA,
		Items: []inventory.SaleLine{
			{ProductID: productA, Quantity: dec("6")},
		},
		TotalAmount:   dec("15.00"), // 6 × 2.50
		PaymentMethod: "khqr",
	})
	require.NoError(t, err)

	assert.True(t, expiring.Quantity.Equal(dec("4")), "se consume primero el lote con vencimiento")
	assert.True(t, noExpiry.Quantity.Equal(dec("10")), "el lote sin vencimiento queda intacto")
}

// ──────────────────────────────────────────────────────────────────────────────
// RevertSale
// ──────────────────────────────────────────────────────────────────────────────

func TestRevertSale_ReingresaStock(t *testing.T) {
	f := newFixture(t)
	f.addBatch(productA, warehouseA, "100", nil, time.Now().Add(-time.Hour))

	sale, err := f.engine.ProcessSale(context.Background(), inventory.SaleInput{
		StaffID:     staffID,
		WarehouseID: warehouseA,
		Items: []inventory.SaleLine{
			{ProductID: productA, Quantity: dec("4")},
		},
		TotalAmount:   dec("10.00"),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	require.True(t, f.totalStock(productA, warehouseA).Equal(dec("96")))

	err = f.engine.RevertSale(context.Background(), sale.ID, "staff-2")
	require.NoError(t, err)

	assert.True(t, f.totalStock(productA, warehouseA).Equal(dec("100")), "la reversión devuelve el stock")

	revs := f.adjustmentsFor(entity.ReasonReversal)
	require.Len(t, revs, 1)
	assert.True(t, revs[0].Quantity.Equal(dec("4")), "el ajuste de reversión es positivo")
	assert.Equal(t, "staff-2", revs[0].StaffID)

	stored := f.s.sales[sale.ID]
	assert.Equal(t, entity.SaleStatusReverted, stored.Status)
	assert.Equal(t, "staff-2", stored.RevertedBy)
	require.NotNil(t, stored.RevertedAt)
}

func TestRevertSale_DobleReversion(t *testing.T) {
	f := newFixture(t)
	f.addBatch(productA, warehouseA, "100", nil, time.Now().Add(-time.Hour))

	sale, err := f.engine.ProcessSale(context.Background(), inventory.SaleInput{
		StaffID:     staffID,
		WarehouseID: warehouseA,
		Items: []inventory.SaleLine{
			{ProductID: productA, Quantity: dec("4")},
		},
		TotalAmount:   dec("10.00"),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	require.NoError(t, f.engine.RevertSale(context.Background(), sale.ID, staffID))

	err = f.engine.RevertSale(context.Background(), sale.ID, staffID)
	assert.ErrorIs(t, err, domain.ErrConflict, "la segunda reversión debe rechazarse")

	assert.True(t, f.totalStock(productA, warehouseA).Equal(dec("100")),
		"la doble reversión no debe duplicar el stock devuelto")
	assert.Len(t, f.adjustmentsFor(entity.ReasonReversal), 1)
}

func TestRevertSale_VentaInexistente(t *testing.T) {
	f := newFixture(t)
	err := f.engine.RevertSale(context.Background(), "no-such", staffID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
