package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agromercado-api/internal/application/deliveries"
	"github.com/jhoicas/Agromercado-api/internal/application/dto"
	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
	"github.com/jhoicas/Agromercado-api/internal/infrastructure/notify"
)

// DeliveryHandler maneja las livraisons y su estimación (protegido).
type DeliveryHandler struct {
	uc           *deliveries.DeliveryUseCase
	deliveryRepo repository.DeliveryRepository
	dispatcher   *notify.Dispatcher
}

// NewDeliveryHandler construye el handler de livraisons.
func NewDeliveryHandler(
	uc *deliveries.DeliveryUseCase,
	deliveryRepo repository.DeliveryRepository,
	dispatcher *notify.Dispatcher,
) *DeliveryHandler {
	return &DeliveryHandler{uc: uc, deliveryRepo: deliveryRepo, dispatcher: dispatcher}
}

// GetByID godoc
// @Summary      Obtener livraison
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Delivery ID"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	delivery, err := h.deliveryRepo.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if delivery == nil {
		return writeError(c, domain.ErrNotFound)
	}
	return c.JSON(toDeliveryResponse(delivery))
}

// UpdateStatus godoc
// @Summary      Avanzar el estado de una livraison
// @Description  EN_ATTENTE -> EN_COURS -> TERMINEE, nunca hacia atrás.
//
//	TERMINEE marca además la orden DELIVERED y acredita fidelidad.
//
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Delivery ID"
// @Param        body  body  dto.UpdateDeliveryStatusRequest  true  "status"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/status [patch]
func (h *DeliveryHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateDeliveryStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	delivery, events, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	h.dispatcher.Dispatch(events)
	return c.JSON(toDeliveryResponse(delivery))
}

// PredictEstimate godoc
// @Summary      Estimar fecha de entrega vía modelo de ML
// @Description  Envía distancia, cantidad y estación al predictor de
//
//	entregas y fija estimated_date = ahora + horas predichas.
//
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Delivery ID"
// @Param        body  body  dto.PredictEstimateRequest  true  "lat, lng del cliente"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/estimate [post]
func (h *DeliveryHandler) PredictEstimate(c *fiber.Ctx) error {
	var in dto.PredictEstimateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	delivery, prediction, err := h.uc.PredictEstimate(c.Context(), c.Params("id"), deliveries.EstimateInput{Lat: in.Lat, Lng: in.Lng})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"delivery": toDeliveryResponse(delivery),
		"prediction": dto.PredictionResponse{
			Prediction:   prediction.Value,
			Unit:         prediction.Unit,
			ModelVersion: prediction.ModelVersion,
			Timestamp:    prediction.Timestamp,
		},
	})
}

func toDeliveryResponse(d *entity.Delivery) dto.DeliveryResponse {
	return dto.DeliveryResponse{
		ID:            d.ID,
		OrderID:       d.OrderID,
		DelivererID:   d.DelivererID,
		Type:          d.Type,
		Status:        d.Status,
		Description:   d.Description,
		EstimatedDate: d.EstimatedDate,
		ActualDate:    d.ActualDate,
	}
}
