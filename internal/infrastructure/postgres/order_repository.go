package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)
var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la orden y sus líneas.
func (r *OrderRepo) Create(order *entity.Order) error {
	ctx := context.Background()
	query := `
		INSERT INTO orders (id, client_id, date_ordered, status, total)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.ClientID, order.DateOrdered, order.Status, order.Total,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for i := range order.Lines {
		line := &order.Lines[i]
		line.OrderID = order.ID
		if err := r.AddLine(line); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas cargadas. Devuelve nil, nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT id, client_id, date_ordered, status, total FROM orders WHERE id = $1`
	return r.getOne(query, id, "get order")
}

// GetForUpdate obtiene la orden bloqueando su fila (SELECT FOR UPDATE).
// Es el punto de serialización de pagos y transiciones de estado.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT id, client_id, date_ordered, status, total FROM orders WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id, "get order for update")
}

func (r *OrderRepo) getOne(query, id, op string) (*entity.Order, error) {
	ctx := context.Background()
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.ClientID, &o.DateOrdered, &o.Status, &o.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	lines, err := r.loadLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *OrderRepo) loadLines(ctx context.Context, orderID string) ([]entity.OrderLine, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_lines WHERE order_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// UpdateStatus persiste la transición de estado de la orden.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTotal persiste el total re-derivado de las líneas.
func (r *OrderRepo) UpdateTotal(id string, total decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE orders SET total = $2 WHERE id = $1`, id, total)
	if err != nil {
		return fmt.Errorf("update order total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddLine persiste una línea de la orden.
func (r *OrderRepo) AddLine(line *entity.OrderLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_lines (id, order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.OrderID, line.ProductID, line.Quantity, line.UnitPrice,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// UpdateLine persiste cantidad y precio congelado de una línea.
func (r *OrderRepo) UpdateLine(line *entity.OrderLine) error {
	query := `UPDATE order_lines SET quantity = $2, unit_price = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, line.ID, line.Quantity, line.UnitPrice)
	if err != nil {
		return fmt.Errorf("update order line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLine elimina una línea de la orden.
func (r *OrderRepo) DeleteLine(lineID string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM order_lines WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete order line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByClient lista las órdenes de un cliente con sus líneas, más recientes primero.
func (r *OrderRepo) ListByClient(clientID string, limit, offset int) ([]*entity.Order, error) {
	ctx := context.Background()
	query := `
		SELECT id, client_id, date_ordered, status, total
		FROM orders WHERE client_id = $1
		ORDER BY date_ordered DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders by client: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.ClientID, &o.DateOrdered, &o.Status, &o.Total); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		lines, err := r.loadLines(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Lines = lines
	}
	return list, nil
}

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de pagos. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, method, amount, status, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.OrderID, payment.Method, payment.Amount,
		payment.Status, payment.PaidAt, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// SumPaidByOrder suma los montos PAID de la orden. COALESCE devuelve cero
// si aún no hay pagos.
func (r *PaymentRepo) SumPaidByOrder(orderID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments WHERE order_id = $1 AND status = $2`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, orderID, entity.PaymentStatusPaid).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum paid by order: %w", err)
	}
	return sum, nil
}

// ListByOrder lista los pagos de una orden en orden de creación.
func (r *PaymentRepo) ListByOrder(orderID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, order_id, method, amount, status, paid_at, created_at
		FROM payments WHERE order_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments by order: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Method, &p.Amount, &p.Status, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
