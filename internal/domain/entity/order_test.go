package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Order: el total se deriva siempre de las líneas y el recálculo es
// idempotente.
// ──────────────────────────────────────────────────────────────────────────────

func buildOrder() *entity.Order {
	return &entity.Order{
		ID:          "order-1",
		ClientID:    "client-1",
		DateOrdered: time.Now(),
		Status:      entity.OrderStatusPending,
		Lines: []entity.OrderLine{
			{ID: "l1", OrderID: "order-1", ProductID: "p1", Quantity: 3, UnitPrice: decimal.RequireFromString("2.50")},
			{ID: "l2", OrderID: "order-1", ProductID: "p2", Quantity: 1, UnitPrice: decimal.RequireFromString("12.00")},
		},
	}
}

func TestOrder_ComputeTotal_SumaDeSubtotales(t *testing.T) {
	order := buildOrder()
	// 3×2.50 + 1×12.00 = 19.50
	assert.True(t, order.ComputeTotal().Equal(decimal.RequireFromString("19.50")))
}

func TestOrder_ComputeTotal_Idempotente(t *testing.T) {
	order := buildOrder()
	primero := order.ComputeTotal()
	segundo := order.ComputeTotal()
	assert.True(t, primero.Equal(segundo),
		"dos recálculos sin cambios en las líneas deben coincidir")
}

func TestOrder_ComputeTotal_SinLineas_Cero(t *testing.T) {
	order := &entity.Order{ID: "vacía"}
	assert.True(t, order.ComputeTotal().IsZero())
}

func TestOrderLine_Subtotal(t *testing.T) {
	line := entity.OrderLine{Quantity: 4, UnitPrice: decimal.RequireFromString("1.75")}
	assert.True(t, line.Subtotal().Equal(decimal.RequireFromString("7.00")))
}

func TestOrder_IsTerminal(t *testing.T) {
	for estado, quiere := range map[string]bool{
		entity.OrderStatusPending:   false,
		entity.OrderStatusEnCours:   false,
		entity.OrderStatusDelivered: true,
		entity.OrderStatusCancelled: true,
	} {
		order := &entity.Order{Status: estado}
		assert.Equal(t, quiere, order.IsTerminal(), "estado %s", estado)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reembolsos: elegible sólo si la orden está DELIVERED y dentro de los 14
// días desde la fecha de la orden.
// ──────────────────────────────────────────────────────────────────────────────

func TestRefundEligible_DentroDeVentana(t *testing.T) {
	now := time.Now()
	order := &entity.Order{Status: entity.OrderStatusDelivered, DateOrdered: now.AddDate(0, 0, -13)}
	assert.True(t, entity.RefundEligible(order, now))
}

func TestRefundEligible_VentanaExpirada(t *testing.T) {
	now := time.Now()
	order := &entity.Order{Status: entity.OrderStatusDelivered, DateOrdered: now.AddDate(0, 0, -15)}
	assert.False(t, entity.RefundEligible(order, now),
		"a los 15 días la orden ya no es elegible")
}

func TestRefundEligible_OrdenNoEntregada(t *testing.T) {
	now := time.Now()
	order := &entity.Order{Status: entity.OrderStatusEnCours, DateOrdered: now}
	assert.False(t, entity.RefundEligible(order, now))
}
