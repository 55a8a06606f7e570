package entity

import "time"

// ProductReview es la reseña de un cliente sobre un producto.
// Única por par (cliente, producto).
type ProductReview struct {
	ID               string
	ClientID         string
	ProductID        string
	Rating           int // 1..5
	Comment          string
	VerifiedPurchase bool
	CreatedAt        time.Time
}

// Estados de una solicitud de reembolso.
const (
	RefundStatusPending  = "PENDING"
	RefundStatusApproved = "APPROVED"
	RefundStatusRejected = "REJECTED"
)

// RefundEligibilityWindow es el plazo máximo desde la fecha de la orden para
// solicitar un reembolso.
const RefundEligibilityWindow = 14 * 24 * time.Hour

// RefundRequest es una solicitud de reembolso sobre una orden entregada.
type RefundRequest struct {
	ID          string
	OrderID     string
	Reason      string
	Status      string
	RequestedAt time.Time
	ProcessedAt *time.Time
}

// RefundEligible indica si la orden admite reembolso: debe estar entregada y
// dentro de la ventana de 14 días desde la fecha de la orden.
func RefundEligible(order *Order, now time.Time) bool {
	return order.Status == OrderStatusDelivered &&
		now.Sub(order.DateOrdered) <= RefundEligibilityWindow
}
