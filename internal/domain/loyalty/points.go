package loyalty

import "github.com/shopspring/decimal"

var ten = decimal.NewFromInt(10)

// PointsEarned implementa la regla de acumulación (servicio de dominio):
// PuntosGanados = floor(TotalOrden / 10)
func PointsEarned(orderTotal decimal.Decimal) int {
	if orderTotal.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return int(orderTotal.Div(ten).IntPart())
}
