package payments_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agromercado-api/internal/application/payments"
	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. La verificación del saldo pendiente ocurre antes de
// insertar el pago, así que un intento rechazado no deja nada escrito.
// ──────────────────────────────────────────────────────────────────────────────

type payStore struct {
	orders   map[string]*entity.Order
	clients  map[string]*entity.ClientProfile
	payments []*entity.Payment
}

type payOrders struct{ s *payStore }

func (r payOrders) Create(o *entity.Order) error                { r.s.orders[o.ID] = o; return nil }
func (r payOrders) GetByID(id string) (*entity.Order, error)     { return r.s.orders[id], nil }
func (r payOrders) GetForUpdate(id string) (*entity.Order, error) { return r.s.orders[id], nil }
func (r payOrders) UpdateStatus(id, status string) error {
	r.s.orders[id].Status = status
	return nil
}
func (r payOrders) UpdateTotal(id string, total decimal.Decimal) error { return nil }
func (r payOrders) AddLine(line *entity.OrderLine) error               { return nil }
func (r payOrders) UpdateLine(line *entity.OrderLine) error            { return nil }
func (r payOrders) DeleteLine(lineID string) error                     { return nil }
func (r payOrders) ListByClient(clientID string, limit, offset int) ([]*entity.Order, error) {
	return nil, nil
}

type payPayments struct{ s *payStore }

func (r payPayments) Create(p *entity.Payment) error { r.s.payments = append(r.s.payments, p); return nil }
func (r payPayments) SumPaidByOrder(orderID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.s.payments {
		if p.OrderID == orderID && p.Status == entity.PaymentStatusPaid {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}
func (r payPayments) ListByOrder(orderID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

type payClients struct{ s *payStore }

func (r payClients) Create(c *entity.ClientProfile) error              { r.s.clients[c.ID] = c; return nil }
func (r payClients) GetByID(id string) (*entity.ClientProfile, error)  { return r.s.clients[id], nil }
func (r payClients) GetByUserID(userID string) (*entity.ClientProfile, error) { return nil, nil }
func (r payClients) GetForUpdate(id string) (*entity.ClientProfile, error) { return r.s.clients[id], nil }
func (r payClients) UpdateBalance(id string, balance decimal.Decimal) error {
	r.s.clients[id].Balance = balance
	return nil
}

type payTxRunner struct{ s *payStore }

func (tx payTxRunner) RunPayment(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	clientRepo repository.ClientRepository,
) error) error {
	return fn(payOrders{tx.s}, payPayments{tx.s}, payClients{tx.s})
}

func setup(t *testing.T, total string) (*payments.PaymentUseCase, *payStore) {
	t.Helper()
	s := &payStore{
		orders:  make(map[string]*entity.Order),
		clients: make(map[string]*entity.ClientProfile),
	}
	s.clients["c1"] = &entity.ClientProfile{ID: "c1", Balance: decimal.RequireFromString("100.00")}
	s.orders["o1"] = &entity.Order{
		ID: "o1", ClientID: "c1",
		DateOrdered: time.Now(),
		Status:      entity.OrderStatusPending,
		Total:       decimal.RequireFromString(total),
	}
	return payments.NewPaymentUseCase(payTxRunner{s}), s
}

func record(t *testing.T, uc *payments.PaymentUseCase, method, amount string) error {
	t.Helper()
	_, err := uc.RecordPayment(context.Background(), payments.PaymentInput{
		OrderID: "o1", Method: method, Amount: decimal.RequireFromString(amount),
	})
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordPayment_ParcialesHastaCubrirElTotal(t *testing.T) {
	uc, s := setup(t, "50.00")

	require.NoError(t, record(t, uc, entity.PaymentMethodCard, "20.00"))
	assert.Equal(t, entity.OrderStatusPending, s.orders["o1"].Status,
		"un pago parcial no cambia el estado")

	require.NoError(t, record(t, uc, entity.PaymentMethodMobile, "30.00"))
	assert.Equal(t, entity.OrderStatusEnCours, s.orders["o1"].Status,
		"al cubrirse el total la orden pasa a EN_COURS")
	assert.Len(t, s.payments, 2)
}

func TestRecordPayment_TransicionExactamenteUnaVez(t *testing.T) {
	uc, s := setup(t, "50.00")
	require.NoError(t, record(t, uc, entity.PaymentMethodCard, "50.00"))
	require.Equal(t, entity.OrderStatusEnCours, s.orders["o1"].Status)

	// Simula que un proceso externo avanzó la orden; otro pago jamás la
	// devuelve ni re-dispara la transición.
	s.orders["o1"].Status = entity.OrderStatusDelivered
	err := record(t, uc, entity.PaymentMethodCard, "0.01")
	assert.ErrorIs(t, err, domain.ErrOverpayment)
	assert.Equal(t, entity.OrderStatusDelivered, s.orders["o1"].Status)
}

func TestRecordPayment_SobrepagoPorUnCentavo_Falla(t *testing.T) {
	uc, s := setup(t, "50.00")
	require.NoError(t, record(t, uc, entity.PaymentMethodCard, "30.00"))

	err := record(t, uc, entity.PaymentMethodCard, "20.01")
	require.ErrorIs(t, err, domain.ErrOverpayment)
	assert.Len(t, s.payments, 1, "el pago rechazado no se persiste")

	// El monto exacto restante sí es válido.
	require.NoError(t, record(t, uc, entity.PaymentMethodCard, "20.00"))
	assert.Equal(t, entity.OrderStatusEnCours, s.orders["o1"].Status)
}

func TestRecordPayment_SumaNuncaSuperaElTotal(t *testing.T) {
	uc, s := setup(t, "100.00")
	intentos := []string{"40.00", "40.00", "40.00", "15.00", "5.00", "0.01"}
	for _, monto := range intentos {
		_ = record(t, uc, entity.PaymentMethodCard, monto) // algunos fallarán
	}
	suma := decimal.Zero
	for _, p := range s.payments {
		suma = suma.Add(p.Amount)
	}
	assert.True(t, suma.LessThanOrEqual(s.orders["o1"].Total),
		"la suma de pagos PAID (%s) nunca supera el total (%s)", suma, s.orders["o1"].Total)
}

func TestRecordPayment_OrdenCancelada_Falla(t *testing.T) {
	uc, s := setup(t, "50.00")
	s.orders["o1"].Status = entity.OrderStatusCancelled
	err := record(t, uc, entity.PaymentMethodCard, "10.00")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, s.payments)
}

func TestRecordPayment_Balance_DescuentaSaldo(t *testing.T) {
	uc, s := setup(t, "50.00")
	require.NoError(t, record(t, uc, entity.PaymentMethodBalance, "50.00"))
	assert.True(t, s.clients["c1"].Balance.Equal(decimal.RequireFromString("50.00")),
		"el método BALANCE descuenta del saldo del cliente")
}

func TestRecordPayment_Balance_SaldoInsuficiente(t *testing.T) {
	uc, s := setup(t, "500.00")
	err := record(t, uc, entity.PaymentMethodBalance, "200.00")
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.True(t, s.clients["c1"].Balance.Equal(decimal.RequireFromString("100.00")),
		"el saldo queda intacto tras un intento rechazado")
	assert.Empty(t, s.payments)
}

func TestRecordPayment_EntradasInvalidas(t *testing.T) {
	uc, _ := setup(t, "50.00")

	err := record(t, uc, entity.PaymentMethodCard, "0")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto cero")

	err = record(t, uc, entity.PaymentMethodCard, "-5")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto negativo")

	err = record(t, uc, "CHEQUE", "10.00")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "método no soportado")
}

func TestRecordPayment_OrdenInexistente(t *testing.T) {
	uc, _ := setup(t, "50.00")
	_, err := uc.RecordPayment(context.Background(), payments.PaymentInput{
		OrderID: "fantasma", Method: entity.PaymentMethodCard, Amount: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
