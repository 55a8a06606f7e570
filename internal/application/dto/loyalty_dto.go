package dto

import "time"

// UsePointsRequest body para POST /api/loyalty/use.
type UsePointsRequest struct {
	Points  int    `json:"points"`
	Reason  string `json:"reason"`
	OrderID string `json:"order_id,omitempty"`
}

// LoyaltyTransactionResponse entrada del log de fidelidad.
type LoyaltyTransactionResponse struct {
	Date    time.Time `json:"date"`
	OrderID string    `json:"order,omitempty"`
	Points  int       `json:"points"`
	Reason  string    `json:"reason,omitempty"`
}

// LoyaltyAccountResponse representación de la cuenta de fidelidad.
type LoyaltyAccountResponse struct {
	ClientID     string                       `json:"client_id"`
	Points       int                          `json:"points"`
	Transactions []LoyaltyTransactionResponse `json:"transactions"`
	LastUpdated  time.Time                    `json:"last_updated"`
}
