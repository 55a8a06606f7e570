// Package event define los eventos de notificación que emite el núcleo.
// Cada operación de aplicación devuelve la lista de eventos generados; un
// dispatcher externo los entrega (email/SMS/websocket) después del commit.
// Un fallo de entrega nunca revierte la operación que lo originó.
package event

import "time"

// Kind clasifica el evento de notificación.
type Kind string

const (
	KindStockAlert      Kind = "STOCK_ALERT"
	KindNewReview       Kind = "NEW_REVIEW"
	KindRefundRequested Kind = "REFUND_REQUESTED"
	KindDeliveryStatus  Kind = "DELIVERY_STATUS_CHANGED"
	KindNewClient       Kind = "NEW_CLIENT"
)

// Event es una notificación pendiente de despacho.
// Recipient es el UserID destinatario; Context lleva datos auxiliares
// (ids de orden, producto, estado, etc.) para el canal de entrega.
type Event struct {
	Kind       Kind
	Recipient  string
	Message    string
	Context    map[string]string
	OccurredAt time.Time
}

// New construye un evento con el contexto dado.
func New(kind Kind, recipient, message string, ctx map[string]string) Event {
	return Event{
		Kind:       kind,
		Recipient:  recipient,
		Message:    message,
		Context:    ctx,
		OccurredAt: time.Now(),
	}
}
