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

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)
var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)
var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene el stock actual de un producto en una bodega. Sin fila se
// asume stock cero (equivale a nunca haber recibido producto).
func (r *StockLevelRepo) Get(productID, warehouseID string) (*entity.StockLevel, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_levels WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockLevelRepo) GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_levels WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &s, nil
}

// ApplyDelta aplica el incremento en storage con un UPSERT atómico
// (quantity = quantity + delta) y devuelve la fila resultante.
func (r *StockLevelRepo) ApplyDelta(productID, warehouseID string, delta decimal.Decimal) (*entity.StockLevel, error) {
	query := `
		INSERT INTO stock_levels (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = stock_levels.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING product_id, warehouse_id, quantity, updated_at`
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID, delta).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("apply stock delta: %w", err)
	}
	return &s, nil
}

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL
// (sólo inserción y lectura; los movimientos son inmutables).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, warehouse_id, batch_id, type, quantity, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.WarehouseID, movement.BatchID,
		movement.Type, movement.Quantity, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, warehouse_id, batch_id, type, quantity, created_at, created_by
		FROM stock_movements WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.WarehouseID, &m.BatchID,
			&m.Type, &m.Quantity, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// StockAlertRepo implementación de StockAlertRepository sobre PostgreSQL.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador de alertas. Pasar pool o tx (Querier).
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

// Create persiste una alerta de stock.
func (r *StockAlertRepo) Create(alert *entity.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (id, product_id, threshold, active)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, alert.ID, alert.ProductID, alert.Threshold, alert.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock alert: %w", err)
	}
	return nil
}

// ListActiveByProduct lista las alertas activas de un producto.
func (r *StockAlertRepo) ListActiveByProduct(productID string) ([]*entity.StockAlert, error) {
	query := `SELECT id, product_id, threshold, active FROM stock_alerts WHERE product_id = $1 AND active = true`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		var a entity.StockAlert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Threshold, &a.Active); err != nil {
			return nil, fmt.Errorf("scan stock alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Deactivate desactiva una alerta.
func (r *StockAlertRepo) Deactivate(id string) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE stock_alerts SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate stock alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
