package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agromercado-api/internal/application/orders"
	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria del agregado orden+líneas.
// ──────────────────────────────────────────────────────────────────────────────

type orderStore struct {
	clients    map[string]*entity.ClientProfile
	products   map[string]*entity.Product
	orders     map[string]*entity.Order
	deliveries []*entity.Delivery
}

func newOrderStore() *orderStore {
	return &orderStore{
		clients:  make(map[string]*entity.ClientProfile),
		products: make(map[string]*entity.Product),
		orders:   make(map[string]*entity.Order),
	}
}

type fakeClients struct{ s *orderStore }

func (r fakeClients) Create(c *entity.ClientProfile) error { r.s.clients[c.ID] = c; return nil }
func (r fakeClients) GetByID(id string) (*entity.ClientProfile, error) { return r.s.clients[id], nil }
func (r fakeClients) GetByUserID(userID string) (*entity.ClientProfile, error) {
	for _, c := range r.s.clients {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, nil
}
func (r fakeClients) GetForUpdate(id string) (*entity.ClientProfile, error) { return r.s.clients[id], nil }
func (r fakeClients) UpdateBalance(id string, balance decimal.Decimal) error {
	r.s.clients[id].Balance = balance
	return nil
}

type fakeProducts struct{ s *orderStore }

func (r fakeProducts) Create(p *entity.Product) error             { r.s.products[p.ID] = p; return nil }
func (r fakeProducts) GetByID(id string) (*entity.Product, error) { return r.s.products[id], nil }
func (r fakeProducts) Update(p *entity.Product) error             { r.s.products[p.ID] = p; return nil }
func (r fakeProducts) AddToStockTotal(productID string, delta decimal.Decimal) error { return nil }
func (r fakeProducts) List(limit, offset int) ([]*entity.Product, error)             { return nil, nil }
func (r fakeProducts) Delete(id string) error                                        { return nil }

type fakeOrders struct{ s *orderStore }

func (r fakeOrders) Create(o *entity.Order) error { r.s.orders[o.ID] = o; return nil }
func (r fakeOrders) GetByID(id string) (*entity.Order, error) { return r.s.orders[id], nil }
func (r fakeOrders) GetForUpdate(id string) (*entity.Order, error) { return r.s.orders[id], nil }
func (r fakeOrders) UpdateStatus(id, status string) error {
	r.s.orders[id].Status = status
	return nil
}
func (r fakeOrders) UpdateTotal(id string, total decimal.Decimal) error {
	r.s.orders[id].Total = total
	return nil
}
func (r fakeOrders) AddLine(line *entity.OrderLine) error {
	o := r.s.orders[line.OrderID]
	o.Lines = append(o.Lines, *line)
	return nil
}
func (r fakeOrders) UpdateLine(line *entity.OrderLine) error { return nil }
func (r fakeOrders) DeleteLine(lineID string) error {
	for _, o := range r.s.orders {
		for i, l := range o.Lines {
			if l.ID == lineID {
				o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
				return nil
			}
		}
	}
	return nil
}
func (r fakeOrders) ListByClient(clientID string, limit, offset int) ([]*entity.Order, error) {
	return nil, nil
}

type fakeDeliveries struct{ s *orderStore }

func (r fakeDeliveries) Create(d *entity.Delivery) error { r.s.deliveries = append(r.s.deliveries, d); return nil }
func (r fakeDeliveries) GetByID(id string) (*entity.Delivery, error) { return nil, nil }
func (r fakeDeliveries) Update(d *entity.Delivery) error             { return nil }
func (r fakeDeliveries) ExistsForOrder(orderID string) (bool, error) { return false, nil }
func (r fakeDeliveries) ListByOrder(orderID string) ([]*entity.Delivery, error) { return nil, nil }

type orderTxRunner struct{ s *orderStore }

func (tx orderTxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	deliveryRepo repository.DeliveryRepository,
) error) error {
	return fn(fakeOrders{tx.s}, fakeProducts{tx.s}, fakeDeliveries{tx.s})
}

func setup(t *testing.T) (*orders.OrderUseCase, *orderStore) {
	t.Helper()
	s := newOrderStore()
	s.clients["c1"] = &entity.ClientProfile{ID: "c1", UserID: "u1", CreatedAt: time.Now()}
	s.products["p1"] = &entity.Product{ID: "p1", Name: "Tomates", SellingPrice: decimal.RequireFromString("2.50")}
	s.products["p2"] = &entity.Product{ID: "p2", Name: "Carottes", SellingPrice: decimal.RequireFromString("1.10")}
	return orders.NewOrderUseCase(orderTxRunner{s}, fakeClients{s}), s
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_CongelaPrecioYTotales(t *testing.T) {
	uc, s := setup(t)

	order, err := uc.CreateOrder(context.Background(), "c1", []orders.LineInput{
		{ProductID: "p1", Quantity: 4}, // 4 × 2.50 = 10.00
		{ProductID: "p2", Quantity: 2}, // 2 × 1.10 = 2.20
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("12.20")))
	require.Len(t, order.Lines, 2)
	assert.True(t, order.Lines[0].UnitPrice.Equal(decimal.RequireFromString("2.50")),
		"el precio unitario se congela del precio de venta vigente")

	// Livraison automática EN_ATTENTE enlazada a la orden.
	require.Len(t, s.deliveries, 1)
	assert.Equal(t, entity.DeliveryStatusEnAttente, s.deliveries[0].Status)
	require.NotNil(t, s.deliveries[0].OrderID)
	assert.Equal(t, order.ID, *s.deliveries[0].OrderID)
}

func TestCreateOrder_CambioDePrecioNoAfectaOrdenExistente(t *testing.T) {
	uc, s := setup(t)
	order, err := uc.CreateOrder(context.Background(), "c1", []orders.LineInput{
		{ProductID: "p1", Quantity: 2},
	})
	require.NoError(t, err)

	// Sube el precio del producto después de creada la orden.
	s.products["p1"].SellingPrice = decimal.RequireFromString("9.99")

	recalc, err := uc.RecomputeTotal(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, recalc.Total.Equal(decimal.RequireFromString("5.00")),
		"el recálculo usa el precio congelado en la línea, no el vigente")
}

func TestCreateOrder_SinLineas_Falla(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.CreateOrder(context.Background(), "c1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_CantidadNoPositiva_Falla(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.CreateOrder(context.Background(), "c1", []orders.LineInput{
		{ProductID: "p1", Quantity: 0},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_ClienteInexistente(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.CreateOrder(context.Background(), "fantasma", []orders.LineInput{
		{ProductID: "p1", Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_ProductoInexistente_NadaPersistido(t *testing.T) {
	uc, s := setup(t)
	_, err := uc.CreateOrder(context.Background(), "c1", []orders.LineInput{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "no-existe", Quantity: 1},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.orders, "una orden con producto inexistente no se crea")
	assert.Empty(t, s.deliveries)
}

func TestRecomputeTotal_Idempotente(t *testing.T) {
	uc, _ := setup(t)
	order, err := uc.CreateOrder(context.Background(), "c1", []orders.LineInput{
		{ProductID: "p1", Quantity: 3},
	})
	require.NoError(t, err)

	primero, err := uc.RecomputeTotal(context.Background(), order.ID)
	require.NoError(t, err)
	segundo, err := uc.RecomputeTotal(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, primero.Total.Equal(segundo.Total),
		"dos recálculos seguidos sin cambios deben coincidir")
}

func TestAddLine_ActualizaTotal(t *testing.T) {
	uc, _ := setup(t)
	order, err := uc.CreateOrder(context.Background(), "c1", []orders.LineInput{
		{ProductID: "p1", Quantity: 1},
	})
	require.NoError(t, err)

	updated, err := uc.AddLine(context.Background(), order.ID, orders.LineInput{ProductID: "p2", Quantity: 5})
	require.NoError(t, err)
	assert.Len(t, updated.Lines, 2)
	// 2.50 + 5×1.10 = 8.00
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("8.00")))
}

func TestAddLine_SoloEnPending(t *testing.T) {
	uc, s := setup(t)
	order, err := uc.CreateOrder(context.Background(), "c1", []orders.LineInput{
		{ProductID: "p1", Quantity: 1},
	})
	require.NoError(t, err)
	s.orders[order.ID].Status = entity.OrderStatusEnCours

	_, err = uc.AddLine(context.Background(), order.ID, orders.LineInput{ProductID: "p2", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrConflict,
		"una orden ya pagada no admite líneas nuevas")
}

func TestRemoveLine_ActualizaTotal(t *testing.T) {
	uc, _ := setup(t)
	order, err := uc.CreateOrder(context.Background(), "c1", []orders.LineInput{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 1},
	})
	require.NoError(t, err)

	updated, err := uc.RemoveLine(context.Background(), order.ID, order.Lines[1].ID)
	require.NoError(t, err)
	assert.Len(t, updated.Lines, 1)
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("2.50")))
}

func TestRemoveLine_UltimaLinea_Falla(t *testing.T) {
	uc, _ := setup(t)
	order, err := uc.CreateOrder(context.Background(), "c1", []orders.LineInput{
		{ProductID: "p1", Quantity: 1},
	})
	require.NoError(t, err)

	_, err = uc.RemoveLine(context.Background(), order.ID, order.Lines[0].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"la orden no puede quedar sin líneas")
}

func TestRemoveLine_LineaInexistente(t *testing.T) {
	uc, _ := setup(t)
	order, err := uc.CreateOrder(context.Background(), "c1", []orders.LineInput{
		{ProductID: "p1", Quantity: 1},
	})
	require.NoError(t, err)

	_, err = uc.RemoveLine(context.Background(), order.ID, "linea-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
