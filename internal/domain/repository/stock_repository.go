package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
)

// StockLevelRepository define el puerto para el stock por producto+bodega.
// Se usa dentro de transacciones para garantizar consistencia.
type StockLevelRepository interface {
	Get(productID, warehouseID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error)
	// ApplyDelta aplica un incremento/decremento atómico en storage
	// (UPSERT con quantity = quantity + delta) y devuelve la fila resultante.
	ApplyDelta(productID, warehouseID string, delta decimal.Decimal) (*entity.StockLevel, error)
}

// StockMovementRepository define el puerto del libro de movimientos
// (registros inmutables, sólo inserción).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
}

// StockAlertRepository define el puerto para alertas de stock.
type StockAlertRepository interface {
	Create(alert *entity.StockAlert) error
	ListActiveByProduct(productID string) ([]*entity.StockAlert, error)
	Deactivate(id string) error
}
