package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Agromercado-api/internal/domain"
)

// Product representa un producto agrícola del catálogo.
// QuantityInStock es el total denormalizado; el stock real se lleva por bodega
// en StockLevel y se actualiza vía movimientos.
type Product struct {
	ID              string
	Name            string
	Category        string // una del catálogo fijo (CategoryMap)
	Description     string
	Unit            string // kg, g, l
	PurchasePrice   decimal.Decimal
	SellingPrice    decimal.Decimal
	QuantityInStock decimal.Decimal
	ExpirationDate  *time.Time
	OwnerID         string // agricultor dueño; destinatario de alertas de stock
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate aplica las reglas de catálogo: categoría obligatoria y del listado,
// nombre permitido para la categoría, unidad válida, precios no negativos y
// fecha de expiración no vencida.
func (p *Product) Validate(now time.Time) error {
	if p.Category == "" || !IsValidCategory(p.Category) {
		return fmt.Errorf("%w: categoría '%s' no reconocida", domain.ErrInvalidInput, p.Category)
	}
	if !IsProductAllowed(p.Category, p.Name) {
		return fmt.Errorf("%w: el producto '%s' no es válido para la categoría '%s'", domain.ErrInvalidInput, p.Name, p.Category)
	}
	if !IsValidUnit(p.Unit) {
		return fmt.Errorf("%w: unidad '%s' no permitida", domain.ErrInvalidInput, p.Unit)
	}
	if p.PurchasePrice.IsNegative() || p.SellingPrice.IsNegative() {
		return fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	if p.ExpirationDate != nil && p.ExpirationDate.Before(now.Truncate(24*time.Hour)) {
		return fmt.Errorf("%w: fecha de expiración vencida", domain.ErrInvalidInput)
	}
	return nil
}
