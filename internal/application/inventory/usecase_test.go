package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agromercado-api/internal/application/inventory"
	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/event"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria del libro de stock. El TxRunner de test pasa los mismos
// repos al callback: las validaciones del caso de uso ocurren antes de
// cualquier escritura, así que un fallo no deja nada persistido.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	batches    map[string]*entity.Batch
	levels     map[string]*entity.StockLevel // clave producto|bodega
	movements  []*entity.StockMovement
	alerts     []*entity.StockAlert
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[string]*entity.Product),
		warehouses: make(map[string]*entity.Warehouse),
		batches:    make(map[string]*entity.Batch),
		levels:     make(map[string]*entity.StockLevel),
	}
}

func levelKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

// ProductRepository
func (s *memStore) Create(p *entity.Product) error           { s.products[p.ID] = p; return nil }
func (s *memStore) GetByID(id string) (*entity.Product, error) { return s.products[id], nil }
func (s *memStore) Update(p *entity.Product) error           { s.products[p.ID] = p; return nil }
func (s *memStore) AddToStockTotal(productID string, delta decimal.Decimal) error {
	p := s.products[productID]
	p.QuantityInStock = p.QuantityInStock.Add(delta)
	return nil
}
func (s *memStore) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (s *memStore) Delete(id string) error                            { delete(s.products, id); return nil }

type memWarehouses struct{ s *memStore }

func (r memWarehouses) Create(w *entity.Warehouse) error            { r.s.warehouses[w.ID] = w; return nil }
func (r memWarehouses) GetByID(id string) (*entity.Warehouse, error) { return r.s.warehouses[id], nil }
func (r memWarehouses) List(limit, offset int) ([]*entity.Warehouse, error) { return nil, nil }

type memBatches struct{ s *memStore }

func (r memBatches) Create(b *entity.Batch) error            { r.s.batches[b.ID] = b; return nil }
func (r memBatches) GetByID(id string) (*entity.Batch, error) { return r.s.batches[id], nil }

type memLevels struct{ s *memStore }

func (r memLevels) Get(productID, warehouseID string) (*entity.StockLevel, error) {
	if lvl, ok := r.s.levels[levelKey(productID, warehouseID)]; ok {
		return lvl, nil
	}
	return &entity.StockLevel{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}
func (r memLevels) GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error) {
	return r.Get(productID, warehouseID)
}
func (r memLevels) ApplyDelta(productID, warehouseID string, delta decimal.Decimal) (*entity.StockLevel, error) {
	key := levelKey(productID, warehouseID)
	lvl, ok := r.s.levels[key]
	if !ok {
		lvl = &entity.StockLevel{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}
		r.s.levels[key] = lvl
	}
	lvl.Quantity = lvl.Quantity.Add(delta)
	return lvl, nil
}

type memMovements struct{ s *memStore }

func (r memMovements) Create(m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}
func (r memMovements) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.s.movements, nil
}

type memAlerts struct{ s *memStore }

func (r memAlerts) Create(a *entity.StockAlert) error { r.s.alerts = append(r.s.alerts, a); return nil }
func (r memAlerts) ListActiveByProduct(productID string) ([]*entity.StockAlert, error) {
	var out []*entity.StockAlert
	for _, a := range r.s.alerts {
		if a.ProductID == productID && a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r memAlerts) Deactivate(id string) error {
	for _, a := range r.s.alerts {
		if a.ID == id {
			a.Active = false
		}
	}
	return nil
}

type memTxRunner struct{ s *memStore }

func (tx memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockLevelRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(memMovements{tx.s}, memLevels{tx.s}, tx.s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func setup(t *testing.T) (*inventory.ApplyMovementUseCase, *memStore) {
	t.Helper()
	s := newMemStore()
	s.products["p1"] = &entity.Product{
		ID: "p1", Name: "Tomates", Category: "Légumes",
		OwnerID: "farmer-1", QuantityInStock: decimal.Zero,
	}
	s.warehouses["w1"] = &entity.Warehouse{ID: "w1", Name: "Bodega Norte"}
	uc := inventory.NewApplyMovementUseCase(memTxRunner{s}, s, memWarehouses{s}, memBatches{s}, memAlerts{s})
	return uc, s
}

func applyOK(t *testing.T, uc *inventory.ApplyMovementUseCase, tipo, qty string) (*entity.StockLevel, []event.Event) {
	t.Helper()
	level, events, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID:   "p1",
		WarehouseID: "w1",
		Type:        tipo,
		Quantity:    decimal.RequireFromString(qty),
		ActorID:     "farmer-1",
	})
	require.NoError(t, err)
	return level, events
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradaYSalida(t *testing.T) {
	uc, s := setup(t)

	level, _ := applyOK(t, uc, entity.MovementTypeIN, "100")
	assert.True(t, level.Quantity.Equal(decimal.NewFromInt(100)))

	level, _ = applyOK(t, uc, entity.MovementTypeOUT, "30")
	assert.True(t, level.Quantity.Equal(decimal.NewFromInt(70)),
		"IN 100 seguido de OUT 30 debe dejar el nivel en 70")

	assert.Len(t, s.movements, 2, "cada movimiento queda en el libro")
	assert.True(t, s.products["p1"].QuantityInStock.Equal(decimal.NewFromInt(70)),
		"el total denormalizado del producto sigue al nivel")
}

func TestApplyMovement_SalidaMayorAlStock_Falla(t *testing.T) {
	uc, s := setup(t)
	applyOK(t, uc, entity.MovementTypeIN, "10")

	_, _, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", WarehouseID: "w1",
		Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(11),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada persistido: el libro sigue con un solo movimiento y el nivel intacto.
	assert.Len(t, s.movements, 1)
	lvl := s.levels[levelKey("p1", "w1")]
	assert.True(t, lvl.Quantity.Equal(decimal.NewFromInt(10)),
		"el nivel no debe cambiar tras un movimiento rechazado")
}

func TestApplyMovement_SalidaExacta_DejaCero(t *testing.T) {
	uc, _ := setup(t)
	applyOK(t, uc, entity.MovementTypeIN, "10")
	level, _ := applyOK(t, uc, entity.MovementTypeOUT, "10")
	assert.True(t, level.Quantity.IsZero(), "vaciar el stock exacto es válido")
}

func TestApplyMovement_AjusteConSigno(t *testing.T) {
	uc, _ := setup(t)
	applyOK(t, uc, entity.MovementTypeIN, "20")

	level, _ := applyOK(t, uc, entity.MovementTypeADJUST, "-5")
	assert.True(t, level.Quantity.Equal(decimal.NewFromInt(15)),
		"ADJUST aplica el delta tal cual, con signo")

	level, _ = applyOK(t, uc, entity.MovementTypeADJUST, "2.5")
	assert.True(t, level.Quantity.Equal(decimal.RequireFromString("17.5")))
}

func TestApplyMovement_AjusteNegativoBajoElStock_Falla(t *testing.T) {
	uc, _ := setup(t)
	applyOK(t, uc, entity.MovementTypeIN, "3")
	_, _, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", WarehouseID: "w1",
		Type: entity.MovementTypeADJUST, Quantity: decimal.NewFromInt(-4),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApplyMovement_CantidadesInvalidas(t *testing.T) {
	uc, _ := setup(t)
	casos := []inventory.MovementInput{
		{ProductID: "p1", WarehouseID: "w1", Type: entity.MovementTypeIN, Quantity: decimal.Zero},
		{ProductID: "p1", WarehouseID: "w1", Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(-5)},
		{ProductID: "p1", WarehouseID: "w1", Type: entity.MovementTypeADJUST, Quantity: decimal.Zero},
		{ProductID: "p1", WarehouseID: "w1", Type: "TRANSFER", Quantity: decimal.NewFromInt(1)},
	}
	for _, in := range casos {
		_, _, err := uc.ApplyMovement(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo=%s qty=%s", in.Type, in.Quantity)
	}
}

func TestApplyMovement_ProductoOBodegaInexistente(t *testing.T) {
	uc, _ := setup(t)

	_, _, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: "no-existe", WarehouseID: "w1",
		Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", WarehouseID: "no-existe",
		Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_LoteDeOtroProducto_Falla(t *testing.T) {
	uc, s := setup(t)
	s.products["p2"] = &entity.Product{ID: "p2", Name: "Carottes", Category: "Légumes", OwnerID: "farmer-1"}
	s.batches["b1"] = &entity.Batch{ID: "b1", ProductID: "p2", LotCode: "LOT-2026-01"}

	batchID := "b1"
	_, _, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", WarehouseID: "w1", BatchID: &batchID,
		Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"un lote que pertenece a otro producto no es utilizable")
}

func TestApplyMovement_AlertaDispara(t *testing.T) {
	uc, s := setup(t)
	s.alerts = append(s.alerts, &entity.StockAlert{
		ID: "a1", ProductID: "p1", Threshold: decimal.NewFromInt(10), Active: true,
	})
	applyOK(t, uc, entity.MovementTypeIN, "50")

	// 50 − 45 = 5 ≤ umbral 10: debe dispararse la alerta hacia el dueño.
	_, events := applyOK(t, uc, entity.MovementTypeOUT, "45")
	require.Len(t, events, 1)
	assert.Equal(t, event.KindStockAlert, events[0].Kind)
	assert.Equal(t, "farmer-1", events[0].Recipient,
		"la alerta va dirigida al agricultor dueño del producto")
	assert.Equal(t, "p1", events[0].Context["product_id"])
}

func TestApplyMovement_SinAlertaSobreElUmbral(t *testing.T) {
	uc, s := setup(t)
	s.alerts = append(s.alerts, &entity.StockAlert{
		ID: "a1", ProductID: "p1", Threshold: decimal.NewFromInt(10), Active: true,
	})
	_, events := applyOK(t, uc, entity.MovementTypeIN, "50")
	assert.Empty(t, events, "con stock sobre el umbral no hay alerta")
}

func TestCreateAlert_UmbralNegativo_Falla(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.CreateAlert(context.Background(), "p1", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateAlert_ProductoInexistente(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.CreateAlert(context.Background(), "fantasma", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
