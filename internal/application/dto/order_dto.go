package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de una orden nueva. El precio unitario no se acepta
// del cliente: se congela del precio de venta vigente del producto.
type OrderLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Lines []OrderLineRequest `json:"lines"`
}

// OrderLineResponse línea en respuestas.
type OrderLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse representación de una orden.
type OrderResponse struct {
	ID          string              `json:"id"`
	ClientID    string              `json:"client_id"`
	DateOrdered time.Time           `json:"date_ordered"`
	Status      string              `json:"status"`
	Total       decimal.Decimal     `json:"total"`
	Lines       []OrderLineResponse `json:"lines"`
}

// AddOrderLineRequest body para POST /api/orders/:id/lines.
type AddOrderLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// RecordPaymentRequest body para POST /api/orders/:id/payments.
type RecordPaymentRequest struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// PaymentResponse representación de un pago.
type PaymentResponse struct {
	ID      string          `json:"id"`
	OrderID string          `json:"order_id"`
	Method  string          `json:"method"`
	Amount  decimal.Decimal `json:"amount"`
	Status  string          `json:"status"`
	PaidAt  *time.Time      `json:"paid_at,omitempty"`
}
