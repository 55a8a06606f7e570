package deliveries

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jhoicas/Agromercado-api/internal/application/loyalty"
	"github.com/jhoicas/Agromercado-api/internal/application/predict"
	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/event"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// DeliveryUseCase gestiona el ciclo de vida de las livraisons:
// EN_ATTENTE -> EN_COURS -> TERMINEE. Marcar TERMINEE pasa la orden a
// DELIVERED y acredita fidelidad en la misma transacción; la estimación de
// fecha se delega al predictor de entregas.
type DeliveryUseCase struct {
	txRunner  TxRunner
	loyaltyUC *loyalty.LoyaltyUseCase
	registry  *predict.Registry
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(txRunner TxRunner, loyaltyUC *loyalty.LoyaltyUseCase, registry *predict.Registry) *DeliveryUseCase {
	return &DeliveryUseCase{txRunner: txRunner, loyaltyUC: loyaltyUC, registry: registry}
}

// MarkDelivered marca la livraison TERMINEE con fecha real, pasa la orden
// enlazada a DELIVERED y acredita los puntos de fidelidad, todo en una sola
// transacción. DELIVERED es terminal: repetir la llamada falla con
// ErrConflict y la acumulación de puntos es idempotente por orden.
func (uc *DeliveryUseCase) MarkDelivered(ctx context.Context, deliveryID string) (*entity.Delivery, []event.Event, error) {
	var (
		result *entity.Delivery
		events []event.Event
	)
	err := uc.txRunner.RunDelivery(ctx, func(
		deliveryRepo repository.DeliveryRepository,
		orderRepo repository.OrderRepository,
		loyaltyRepo repository.LoyaltyRepository,
	) error {
		delivery, err := deliveryRepo.GetByID(deliveryID)
		if err != nil {
			return err
		}
		if delivery == nil {
			return domain.ErrNotFound
		}
		if !delivery.CanTransitionTo(entity.DeliveryStatusTerminee) {
			return domain.ErrConflict
		}
		now := time.Now()
		delivery.Status = entity.DeliveryStatusTerminee
		delivery.ActualDate = &now
		delivery.UpdatedAt = now
		if err := deliveryRepo.Update(delivery); err != nil {
			return err
		}

		if delivery.OrderID != nil {
			order, err := orderRepo.GetForUpdate(*delivery.OrderID)
			if err != nil {
				return err
			}
			if order == nil {
				return domain.ErrNotFound
			}
			if order.IsTerminal() {
				return domain.ErrConflict
			}
			if err := orderRepo.UpdateStatus(order.ID, entity.OrderStatusDelivered); err != nil {
				return err
			}
			order.Status = entity.OrderStatusDelivered
			if _, _, err := uc.loyaltyUC.AccrueInTx(loyaltyRepo, order, now); err != nil {
				return err
			}
			events = append(events, statusEvent(delivery, order.ClientID))
		}
		result = delivery
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, events, nil
}

// UpdateStatus avanza el estado de la livraison (nunca hacia atrás) y emite
// el evento de cambio de estado hacia el cliente de la orden.
func (uc *DeliveryUseCase) UpdateStatus(ctx context.Context, deliveryID, status string) (*entity.Delivery, []event.Event, error) {
	if status == entity.DeliveryStatusTerminee {
		return uc.MarkDelivered(ctx, deliveryID)
	}
	var (
		result *entity.Delivery
		events []event.Event
	)
	err := uc.txRunner.RunDelivery(ctx, func(
		deliveryRepo repository.DeliveryRepository,
		orderRepo repository.OrderRepository,
		_ repository.LoyaltyRepository,
	) error {
		delivery, err := deliveryRepo.GetByID(deliveryID)
		if err != nil {
			return err
		}
		if delivery == nil {
			return domain.ErrNotFound
		}
		if !delivery.CanTransitionTo(status) {
			return domain.ErrConflict
		}
		delivery.Status = status
		delivery.UpdatedAt = time.Now()
		if err := deliveryRepo.Update(delivery); err != nil {
			return err
		}
		if delivery.OrderID != nil {
			order, err := orderRepo.GetByID(*delivery.OrderID)
			if err != nil {
				return err
			}
			if order != nil {
				events = append(events, statusEvent(delivery, order.ClientID))
			}
		}
		result = delivery
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, events, nil
}

// EstimateInput ubicación del cliente para el cálculo de distancia.
type EstimateInput struct {
	Lat float64
	Lng float64
}

// PredictEstimate arma el registro de características (distancia, cantidad
// total de la orden, estación del año), consulta al predictor de entregas y
// fija la fecha estimada = ahora + horas predichas. El núcleo no interpreta
// el modelo: sólo convierte la duración devuelta en un timestamp.
func (uc *DeliveryUseCase) PredictEstimate(ctx context.Context, deliveryID string, in EstimateInput) (*entity.Delivery, *predict.Prediction, error) {
	var delivery *entity.Delivery
	var totalQty int
	err := uc.txRunner.RunDelivery(ctx, func(
		deliveryRepo repository.DeliveryRepository,
		orderRepo repository.OrderRepository,
		_ repository.LoyaltyRepository,
	) error {
		var err error
		delivery, err = deliveryRepo.GetByID(deliveryID)
		if err != nil {
			return err
		}
		if delivery == nil || delivery.OrderID == nil {
			return domain.ErrNotFound
		}
		order, err := orderRepo.GetByID(*delivery.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		for _, l := range order.Lines {
			totalQty += l.Quantity
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	features := predict.Features{
		"distance": math.Sqrt(in.Lat*in.Lat + in.Lng*in.Lng),
		"quantity": float64(totalQty),
		"season":   float64(season(now)),
	}
	prediction, err := uc.registry.Predict(ctx, predict.PredictorDelivery, features)
	if err != nil {
		return nil, nil, err
	}

	estimated := now.Add(time.Duration(prediction.Value * float64(time.Hour)))
	err = uc.txRunner.RunDelivery(ctx, func(
		deliveryRepo repository.DeliveryRepository,
		_ repository.OrderRepository,
		_ repository.LoyaltyRepository,
	) error {
		delivery.EstimatedDate = &estimated
		delivery.UpdatedAt = now
		return deliveryRepo.Update(delivery)
	})
	if err != nil {
		return nil, nil, err
	}
	return delivery, prediction, nil
}

// season devuelve la estación 1..4 a partir del mes.
func season(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

func statusEvent(d *entity.Delivery, clientID string) event.Event {
	orderID := ""
	if d.OrderID != nil {
		orderID = *d.OrderID
	}
	return event.New(
		event.KindDeliveryStatus,
		clientID,
		fmt.Sprintf("Votre livraison pour la commande %s est maintenant : %s", orderID, d.Status),
		map[string]string{
			"delivery_id": d.ID,
			"order_id":    orderID,
			"status":      d.Status,
		},
	)
}
