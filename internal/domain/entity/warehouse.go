package entity

import "time"

// Warehouse representa una bodega o punto de acopio donde se almacena producto.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
}

// Batch representa un lote opcional de producto (trazabilidad por cosecha).
type Batch struct {
	ID         string
	ProductID  string
	LotCode    string
	ExpiryDate *time.Time
	CreatedAt  time.Time
}
