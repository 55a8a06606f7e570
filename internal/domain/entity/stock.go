package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel representa el stock actual de un producto en una bodega
// (única por par producto+bodega). Se actualiza sólo vía movimientos.
type StockLevel struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

// Tipos de movimiento de stock.
const (
	MovementTypeIN     = "IN"     // entrada
	MovementTypeOUT    = "OUT"    // salida
	MovementTypeADJUST = "ADJUST" // ajuste (delta con signo)
)

// StockMovement representa un movimiento de stock inmutable.
// Quantity es no negativa para IN/OUT; para ADJUST es un delta con signo.
type StockMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	BatchID     *string
	Type        string
	Quantity    decimal.Decimal
	CreatedAt   time.Time
	CreatedBy   string // UserID del actor
}

// Delta devuelve el efecto del movimiento sobre StockLevel.Quantity:
// IN suma, OUT resta, ADJUST aplica la cantidad tal cual (con signo).
func (m *StockMovement) Delta() decimal.Decimal {
	switch m.Type {
	case MovementTypeOUT:
		return m.Quantity.Neg()
	default:
		return m.Quantity
	}
}

// StockAlert define un umbral de alerta por producto. Una alerta activa se
// dispara cuando el stock vivo queda en o por debajo del umbral.
type StockAlert struct {
	ID        string
	ProductID string
	Threshold decimal.Decimal
	Active    bool
}

// Triggered indica si la alerta debe dispararse para la cantidad dada.
func (a *StockAlert) Triggered(quantity decimal.Decimal) bool {
	return a.Active && quantity.LessThanOrEqual(a.Threshold)
}
