package entity

import "time"

// LoyaltyAccount es la cuenta de fidelidad de un cliente (una por cliente).
// Transactions es un log ordenado embebido (JSONB en persistencia); cada
// orden aporta a lo sumo una transacción positiva de acumulación.
type LoyaltyAccount struct {
	ID           string
	ClientID     string
	Points       int
	Transactions []LoyaltyTransaction
	LastUpdated  time.Time
}

// LoyaltyTransaction es una entrada del log: delta de puntos con motivo y
// referencia opcional a la orden que lo originó.
type LoyaltyTransaction struct {
	Date    time.Time `json:"date"`
	OrderID string    `json:"order,omitempty"`
	Points  int       `json:"points"`
	Reason  string    `json:"reason,omitempty"`
}

// HasAccrualFor indica si el log ya contiene una acumulación para la orden.
// Recorre el log completo; a la escala actual es aceptable.
func (a *LoyaltyAccount) HasAccrualFor(orderID string) bool {
	for _, txn := range a.Transactions {
		if txn.OrderID == orderID && txn.Points > 0 {
			return true
		}
	}
	return false
}
