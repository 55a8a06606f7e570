package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientProfile representa el perfil de compra de un usuario cliente.
// Balance es el saldo de cuenta utilizable con el método de pago BALANCE.
type ClientProfile struct {
	ID        string
	UserID    string
	Location  string
	Balance   decimal.Decimal
	CreatedAt time.Time
}
