package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Agromercado-api/internal/application/deliveries"
	"github.com/jhoicas/Agromercado-api/internal/application/inventory"
	"github.com/jhoicas/Agromercado-api/internal/application/loyalty"
	"github.com/jhoicas/Agromercado-api/internal/application/orders"
	"github.com/jhoicas/Agromercado-api/internal/application/payments"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// Un único runner satisface los puertos transaccionales de todos los módulos.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)
var _ payments.TxRunner = (*TxRunner)(nil)
var _ loyalty.TxRunner = (*TxRunner)(nil)
var _ deliveries.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del libro de stock y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockLevelRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockMovementRepository(tx), NewStockLevelRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrder inicia una transacción con los repos de órdenes (la orden, sus
// líneas y la livraison inicial se confirman juntas).
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	deliveryRepo repository.DeliveryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx), NewProductRepository(tx), NewDeliveryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPayment inicia una transacción con los repos del flujo de pago.
func (r *TxRunner) RunPayment(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	clientRepo repository.ClientRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx), NewPaymentRepository(tx), NewClientRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLoyalty inicia una transacción con los repos de fidelidad.
func (r *TxRunner) RunLoyalty(ctx context.Context, fn func(
	loyaltyRepo repository.LoyaltyRepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLoyaltyRepository(tx), NewOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDelivery inicia una transacción con los repos de livraisons (marcar
// TERMINEE, pasar la orden a DELIVERED y acreditar fidelidad son una unidad).
func (r *TxRunner) RunDelivery(ctx context.Context, fn func(
	deliveryRepo repository.DeliveryRepository,
	orderRepo repository.OrderRepository,
	loyaltyRepo repository.LoyaltyRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewDeliveryRepository(tx), NewOrderRepository(tx), NewLoyaltyRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
