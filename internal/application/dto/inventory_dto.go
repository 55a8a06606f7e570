package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyMovementRequest body para POST /api/stock/movements.
// Quantity es no negativa para IN/OUT; para ADJUST es un delta con signo.
type ApplyMovementRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	BatchID     *string         `json:"batch_id,omitempty"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// StockLevelResponse stock resultante tras aplicar un movimiento.
type StockLevelResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateStockAlertRequest body para POST /api/stock/alerts.
type CreateStockAlertRequest struct {
	ProductID string          `json:"product_id"`
	Threshold decimal.Decimal `json:"threshold"`
}

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Description    string          `json:"description,omitempty"`
	Unit           string          `json:"unit"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
}

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}
