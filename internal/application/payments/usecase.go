package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// PaymentUseCase registra pagos contra una orden y hace cumplir el
// invariante: la suma de montos PAID nunca supera el total de la orden.
// Al cubrirse el total por primera vez, la orden pasa PENDING -> EN_COURS
// exactamente una vez.
type PaymentUseCase struct {
	txRunner TxRunner
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner TxRunner) *PaymentUseCase {
	return &PaymentUseCase{txRunner: txRunner}
}

// PaymentInput entrada para registrar un pago.
type PaymentInput struct {
	OrderID string
	Method  string
	Amount  decimal.Decimal
}

// RecordPayment valida e inserta el pago dentro de una transacción que
// bloquea la fila de la orden (SELECT FOR UPDATE): dos intentos concurrentes
// sobre la misma orden se serializan, de modo que nunca pueden exceder
// juntos el saldo pendiente. Para el método BALANCE también se bloquea el
// perfil del cliente y se descuenta su saldo. En caso de fallo no se
// persiste nada.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, input PaymentInput) (*entity.Payment, error) {
	if !input.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el monto debe ser positivo", domain.ErrInvalidInput)
	}
	if !entity.IsValidPaymentMethod(input.Method) {
		return nil, fmt.Errorf("%w: método de pago '%s'", domain.ErrInvalidInput, input.Method)
	}

	now := time.Now()
	payment := &entity.Payment{
		ID:        uuid.New().String(),
		OrderID:   input.OrderID,
		Method:    input.Method,
		Amount:    input.Amount,
		Status:    entity.PaymentStatusPaid,
		PaidAt:    &now,
		CreatedAt: now,
	}

	err := uc.txRunner.RunPayment(ctx, func(
		orderRepo repository.OrderRepository,
		paymentRepo repository.PaymentRepository,
		clientRepo repository.ClientRepository,
	) error {
		order, err := orderRepo.GetForUpdate(input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusCancelled {
			return domain.ErrConflict
		}

		paid, err := paymentRepo.SumPaidByOrder(order.ID)
		if err != nil {
			return err
		}
		outstanding := order.Total.Sub(paid)
		if input.Amount.GreaterThan(outstanding) {
			return domain.ErrOverpayment
		}

		if input.Method == entity.PaymentMethodBalance {
			client, err := clientRepo.GetForUpdate(order.ClientID)
			if err != nil {
				return err
			}
			if client == nil {
				return domain.ErrNotFound
			}
			if client.Balance.LessThan(input.Amount) {
				return domain.ErrInsufficientBalance
			}
			if err := clientRepo.UpdateBalance(client.ID, client.Balance.Sub(input.Amount)); err != nil {
				return err
			}
		}

		if err := paymentRepo.Create(payment); err != nil {
			return err
		}

		// La transición dispara sólo la primera vez que el acumulado cubre
		// el total: después la orden ya está EN_COURS y no se re-dispara.
		if paid.Add(input.Amount).GreaterThanOrEqual(order.Total) &&
			order.Status == entity.OrderStatusPending {
			return orderRepo.UpdateStatus(order.ID, entity.OrderStatusEnCours)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// ListByOrder devuelve los pagos registrados de una orden.
func (uc *PaymentUseCase) ListByOrder(ctx context.Context, orderID string) ([]*entity.Payment, error) {
	var result []*entity.Payment
	err := uc.txRunner.RunPayment(ctx, func(
		orderRepo repository.OrderRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.ClientRepository,
	) error {
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		result, err = paymentRepo.ListByOrder(orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
