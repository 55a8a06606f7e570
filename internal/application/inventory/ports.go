package inventory

import (
	"context"

	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de stock:
// el movimiento y la actualización del nivel se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockLevelRepository,
		productRepo repository.ProductRepository,
	) error) error
}
