package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación del puerto DeliveryRepository sobre PostgreSQL (usable con pool o tx).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador de livraisons. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create persiste una livraison.
func (r *DeliveryRepo) Create(delivery *entity.Delivery) error {
	query := `
		INSERT INTO deliveries
			(id, deliverer_id, order_id, product_id, type, status, description, estimated_date, actual_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		delivery.ID, delivery.DelivererID, delivery.OrderID, delivery.ProductID,
		delivery.Type, delivery.Status, delivery.Description,
		delivery.EstimatedDate, delivery.ActualDate, delivery.CreatedAt, delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetByID obtiene una livraison por ID. Devuelve nil, nil si no existe.
func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	query := `
		SELECT id, deliverer_id, order_id, product_id, type, status, description, estimated_date, actual_date, created_at, updated_at
		FROM deliveries WHERE id = $1`
	d, err := scanDelivery(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return d, nil
}

// Update persiste estado, fechas y asignación de la livraison.
func (r *DeliveryRepo) Update(delivery *entity.Delivery) error {
	query := `
		UPDATE deliveries
		SET deliverer_id = $2, status = $3, description = $4,
		    estimated_date = $5, actual_date = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		delivery.ID, delivery.DelivererID, delivery.Status, delivery.Description,
		delivery.EstimatedDate, delivery.ActualDate, delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsForOrder indica si la orden ya tiene livraison asociada.
func (r *DeliveryRepo) ExistsForOrder(orderID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM deliveries WHERE order_id = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, orderID).Scan(&exists); err != nil {
		return false, fmt.Errorf("delivery exists for order: %w", err)
	}
	return exists, nil
}

// ListByOrder lista las livraisons de una orden.
func (r *DeliveryRepo) ListByOrder(orderID string) ([]*entity.Delivery, error) {
	query := `
		SELECT id, deliverer_id, order_id, product_id, type, status, description, estimated_date, actual_date, created_at, updated_at
		FROM deliveries WHERE order_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries by order: %w", err)
	}
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDelivery(row pgxScanner) (*entity.Delivery, error) {
	var d entity.Delivery
	err := row.Scan(
		&d.ID, &d.DelivererID, &d.OrderID, &d.ProductID, &d.Type, &d.Status,
		&d.Description, &d.EstimatedDate, &d.ActualDate, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
