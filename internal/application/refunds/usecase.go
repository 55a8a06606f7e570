package refunds

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/event"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// RefundUseCase registra solicitudes de reembolso sobre órdenes entregadas
// dentro de la ventana de elegibilidad, y notifica a los administradores.
type RefundUseCase struct {
	refundRepo repository.RefundRepository
	orderRepo  repository.OrderRepository
	userRepo   repository.UserRepository
}

// NewRefundUseCase construye el caso de uso.
func NewRefundUseCase(
	refundRepo repository.RefundRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
) *RefundUseCase {
	return &RefundUseCase{refundRepo: refundRepo, orderRepo: orderRepo, userRepo: userRepo}
}

// CreateRefund valida elegibilidad (orden DELIVERED, dentro de 14 días) y
// persiste la solicitud PENDING con sus eventos de notificación.
func (uc *RefundUseCase) CreateRefund(_ context.Context, orderID, reason string) (*entity.RefundRequest, []event.Event, error) {
	if reason == "" {
		return nil, nil, fmt.Errorf("%w: la razón es obligatoria", domain.ErrInvalidInput)
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	now := time.Now()
	if !entity.RefundEligible(order, now) {
		return nil, nil, fmt.Errorf("%w: la orden no es elegible para reembolso", domain.ErrInvalidInput)
	}

	refund := &entity.RefundRequest{
		ID:          uuid.New().String(),
		OrderID:     orderID,
		Reason:      reason,
		Status:      entity.RefundStatusPending,
		RequestedAt: now,
	}
	if err := uc.refundRepo.Create(refund); err != nil {
		return nil, nil, err
	}

	admins, err := uc.userRepo.ListAdmins()
	if err != nil {
		return refund, nil, nil
	}
	message := fmt.Sprintf("Nouvelle demande de remboursement pour commande %s", orderID)
	var events []event.Event
	for _, admin := range admins {
		events = append(events, event.New(event.KindRefundRequested, admin.ID, message, map[string]string{
			"order_id":  orderID,
			"refund_id": refund.ID,
		}))
	}
	return refund, events, nil
}

// Process aprueba o rechaza una solicitud pendiente.
func (uc *RefundUseCase) Process(_ context.Context, refundID, status string) (*entity.RefundRequest, error) {
	if status != entity.RefundStatusApproved && status != entity.RefundStatusRejected {
		return nil, fmt.Errorf("%w: estado '%s'", domain.ErrInvalidInput, status)
	}
	refund, err := uc.refundRepo.GetByID(refundID)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, domain.ErrNotFound
	}
	if refund.Status != entity.RefundStatusPending {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	refund.Status = status
	refund.ProcessedAt = &now
	if err := uc.refundRepo.Update(refund); err != nil {
		return nil, err
	}
	return refund, nil
}
