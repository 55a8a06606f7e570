package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// AddToStockTotal ajusta el total denormalizado QuantityInStock con un
	// incremento atómico en storage (nunca leer-modificar-escribir).
	AddToStockTotal(productID string, delta decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
