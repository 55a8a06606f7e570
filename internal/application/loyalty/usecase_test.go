package loyalty_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agromercado-api/internal/application/loyalty"
	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: cuentas por cliente y órdenes de sólo lectura.
// ──────────────────────────────────────────────────────────────────────────────

type loyStore struct {
	accounts map[string]*entity.LoyaltyAccount // por ClientID
	orders   map[string]*entity.Order
}

type loyAccounts struct{ s *loyStore }

func (r loyAccounts) Create(a *entity.LoyaltyAccount) error { r.s.accounts[a.ClientID] = a; return nil }
func (r loyAccounts) GetByClientID(clientID string) (*entity.LoyaltyAccount, error) {
	return r.s.accounts[clientID], nil
}
func (r loyAccounts) GetForUpdate(clientID string) (*entity.LoyaltyAccount, error) {
	return r.s.accounts[clientID], nil
}
func (r loyAccounts) Update(a *entity.LoyaltyAccount) error { r.s.accounts[a.ClientID] = a; return nil }

type loyOrders struct{ s *loyStore }

func (r loyOrders) Create(o *entity.Order) error                 { return nil }
func (r loyOrders) GetByID(id string) (*entity.Order, error)      { return r.s.orders[id], nil }
func (r loyOrders) GetForUpdate(id string) (*entity.Order, error) { return r.s.orders[id], nil }
func (r loyOrders) UpdateStatus(id, status string) error          { return nil }
func (r loyOrders) UpdateTotal(id string, total decimal.Decimal) error { return nil }
func (r loyOrders) AddLine(line *entity.OrderLine) error          { return nil }
func (r loyOrders) UpdateLine(line *entity.OrderLine) error       { return nil }
func (r loyOrders) DeleteLine(lineID string) error                { return nil }
func (r loyOrders) ListByClient(clientID string, limit, offset int) ([]*entity.Order, error) {
	return nil, nil
}

type loyTxRunner struct{ s *loyStore }

func (tx loyTxRunner) RunLoyalty(ctx context.Context, fn func(
	loyaltyRepo repository.LoyaltyRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return fn(loyAccounts{tx.s}, loyOrders{tx.s})
}

func setup(t *testing.T) (*loyalty.LoyaltyUseCase, *loyStore) {
	t.Helper()
	s := &loyStore{
		accounts: make(map[string]*entity.LoyaltyAccount),
		orders:   make(map[string]*entity.Order),
	}
	s.orders["o1"] = &entity.Order{
		ID: "o1", ClientID: "c1",
		DateOrdered: time.Now(),
		Status:      entity.OrderStatusDelivered,
		Total:       decimal.RequireFromString("45.00"),
	}
	return loyalty.NewLoyaltyUseCase(loyTxRunner{s}), s
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAccrueOnDelivery_CreaCuentaYAcredita(t *testing.T) {
	uc, s := setup(t)

	account, earned, err := uc.AccrueOnDelivery(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, 4, earned, "45.00 / 10 = 4.5 → floor = 4 puntos")
	assert.Equal(t, 4, account.Points)
	require.Len(t, account.Transactions, 1)
	assert.Equal(t, "o1", account.Transactions[0].OrderID)
	assert.Equal(t, 4, account.Transactions[0].Points)

	// La cuenta no existía: debe haberse creado para el cliente.
	assert.NotNil(t, s.accounts["c1"])
}

func TestAccrueOnDelivery_IdempotentePorOrden(t *testing.T) {
	uc, _ := setup(t)

	_, _, err := uc.AccrueOnDelivery(context.Background(), "o1")
	require.NoError(t, err)

	account, earned, err := uc.AccrueOnDelivery(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, 0, earned, "la segunda acumulación por la misma orden no tiene efecto")
	assert.Equal(t, 4, account.Points)
	assert.Len(t, account.Transactions, 1, "no se anexa transacción duplicada")
}

func TestAccrueOnDelivery_OrdenNoEntregada_Falla(t *testing.T) {
	uc, s := setup(t)
	s.orders["o1"].Status = entity.OrderStatusEnCours

	_, _, err := uc.AccrueOnDelivery(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrConflict,
		"sólo las órdenes DELIVERED acreditan puntos")
}

func TestAccrueOnDelivery_TotalBajoDiez_CeroPuntos(t *testing.T) {
	uc, s := setup(t)
	s.orders["o1"].Total = decimal.RequireFromString("9.99")

	_, earned, err := uc.AccrueOnDelivery(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, 0, earned)
}

func TestAccrueOnDelivery_OrdenInexistente(t *testing.T) {
	uc, _ := setup(t)
	_, _, err := uc.AccrueOnDelivery(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUsePoints_DescuentaYRegistra(t *testing.T) {
	uc, s := setup(t)
	s.accounts["c1"] = &entity.LoyaltyAccount{ID: "a1", ClientID: "c1", Points: 10}

	used, err := uc.UsePoints(context.Background(), "c1", 6, "descuento", "o9")
	require.NoError(t, err)
	assert.Equal(t, 6, used)
	assert.Equal(t, 4, s.accounts["c1"].Points)
	require.Len(t, s.accounts["c1"].Transactions, 1)
	assert.Equal(t, -6, s.accounts["c1"].Transactions[0].Points,
		"el canje queda en el log como delta negativo")
}

func TestUsePoints_SaldoInsuficiente_NadaCambia(t *testing.T) {
	uc, s := setup(t)
	s.accounts["c1"] = &entity.LoyaltyAccount{ID: "a1", ClientID: "c1", Points: 3}

	_, err := uc.UsePoints(context.Background(), "c1", 5, "descuento", "")
	require.ErrorIs(t, err, domain.ErrInsufficientPoints)
	assert.Equal(t, 3, s.accounts["c1"].Points, "el saldo queda intacto")
	assert.Empty(t, s.accounts["c1"].Transactions)
}

func TestUsePoints_PuntosNoPositivos_Falla(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.UsePoints(context.Background(), "c1", 0, "x", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UsePoints(context.Background(), "c1", -2, "x", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetAccount_Inexistente(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.GetAccount(context.Background(), "sin-cuenta")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
