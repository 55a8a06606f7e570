package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// OrderUseCase gestiona el agregado orden+líneas: creación con precio
// congelado, recálculo idempotente del total y altas/bajas de líneas.
type OrderUseCase struct {
	txRunner   TxRunner
	clientRepo repository.ClientRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner TxRunner, clientRepo repository.ClientRepository) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, clientRepo: clientRepo}
}

// LineInput línea solicitada: producto y cantidad (el precio no se acepta).
type LineInput struct {
	ProductID string
	Quantity  int
}

// CreateOrder crea una orden PENDING con sus líneas y la livraison inicial
// EN_ATTENTE en una sola transacción. El precio unitario de cada línea se
// congela del precio de venta vigente; cambios posteriores de precio no
// afectan órdenes ya creadas. Falla con ErrInvalidInput si no hay líneas o
// alguna cantidad no es positiva, y con ErrNotFound si falta un producto.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, clientID string, lines []LineInput) (*entity.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: la orden requiere al menos una línea", domain.ErrInvalidInput)
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad inválida para producto %s", domain.ErrInvalidInput, l.ProductID)
		}
	}
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.Order{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		DateOrdered: now,
		Status:      entity.OrderStatusPending,
	}

	err = uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		for _, l := range lines {
			product, err := productRepo.GetByID(l.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			order.Lines = append(order.Lines, entity.OrderLine{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  l.Quantity,
				UnitPrice: product.SellingPrice,
			})
		}
		order.Total = order.ComputeTotal()
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		// Livraison automática, aún sin repartidor asignado.
		orderID := order.ID
		return deliveryRepo.Create(&entity.Delivery{
			ID:          uuid.New().String(),
			OrderID:     &orderID,
			Type:        entity.DeliveryTypeLivraison,
			Status:      entity.DeliveryStatusEnAttente,
			Description: fmt.Sprintf("Livraison de la commande %s", order.ID),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// RecomputeTotal re-deriva el total desde las líneas actuales y lo persiste.
// Idempotente: dos llamadas seguidas sin cambios producen el mismo total.
func (uc *OrderUseCase) RecomputeTotal(ctx context.Context, orderID string) (*entity.Order, error) {
	var result *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.ProductRepository,
		_ repository.DeliveryRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		order.Total = order.ComputeTotal()
		if err := orderRepo.UpdateTotal(order.ID, order.Total); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddLine agrega una línea a una orden PENDING con el precio vigente del
// producto y recalcula el total en la misma transacción.
func (uc *OrderUseCase) AddLine(ctx context.Context, orderID string, in LineInput) (*entity.Order, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: cantidad inválida", domain.ErrInvalidInput)
	}
	var result *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		_ repository.DeliveryRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrConflict
		}
		product, err := productRepo.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		line := entity.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  in.Quantity,
			UnitPrice: product.SellingPrice,
		}
		if err := orderRepo.AddLine(&line); err != nil {
			return err
		}
		order.Lines = append(order.Lines, line)
		order.Total = order.ComputeTotal()
		if err := orderRepo.UpdateTotal(order.ID, order.Total); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveLine elimina una línea de una orden PENDING y recalcula el total.
// La orden no puede quedar vacía: la última línea no se puede eliminar.
func (uc *OrderUseCase) RemoveLine(ctx context.Context, orderID, lineID string) (*entity.Order, error) {
	var result *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.ProductRepository,
		_ repository.DeliveryRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrConflict
		}
		idx := -1
		for i, l := range order.Lines {
			if l.ID == lineID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}
		if len(order.Lines) == 1 {
			return fmt.Errorf("%w: la orden no puede quedar sin líneas", domain.ErrInvalidInput)
		}
		if err := orderRepo.DeleteLine(lineID); err != nil {
			return err
		}
		order.Lines = append(order.Lines[:idx], order.Lines[idx+1:]...)
		order.Total = order.ComputeTotal()
		if err := orderRepo.UpdateTotal(order.ID, order.Total); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
