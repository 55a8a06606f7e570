package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago soportados. BALANCE descuenta del saldo del cliente.
const (
	PaymentMethodCard      = "CARD"
	PaymentMethodBank      = "BANK"
	PaymentMethodMobile    = "MOBILE"
	PaymentMethodPaypal    = "PAYPAL"
	PaymentMethodApplePay  = "APPLE_PAY"
	PaymentMethodGooglePay = "GOOGLE_PAY"
	PaymentMethodBalance   = "BALANCE"
)

// Estados de un pago.
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"
)

// Payment registra un intento de pago contra una orden.
// Invariante: la suma de montos PAID de una orden nunca supera Order.Total.
type Payment struct {
	ID        string
	OrderID   string
	Method    string
	Amount    decimal.Decimal
	Status    string
	PaidAt    *time.Time
	CreatedAt time.Time
}

// IsValidPaymentMethod indica si el método es uno de los soportados.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCard, PaymentMethodBank, PaymentMethodMobile,
		PaymentMethodPaypal, PaymentMethodApplePay, PaymentMethodGooglePay,
		PaymentMethodBalance:
		return true
	}
	return false
}
