package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agromercado-api/internal/application/dto"
	"github.com/jhoicas/Agromercado-api/internal/application/payments"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
)

// PaymentHandler maneja los pagos de órdenes (protegido).
type PaymentHandler struct {
	uc *payments.PaymentUseCase
}

// NewPaymentHandler construye el handler de pagos.
func NewPaymentHandler(uc *payments.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar pago parcial o total
// @Description  La suma de pagos PAID nunca supera el total de la orden; al
//
//	completarse el total, la orden PENDING pasa a EN_COURS exactamente una vez.
//
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.RecordPaymentRequest  true  "method, amount"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	payment, err := h.uc.RecordPayment(c.Context(), payments.PaymentInput{
		OrderID: c.Params("id"),
		Method:  in.Method,
		Amount:  in.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPaymentResponse(payment))
}

// ListByOrder godoc
// @Summary      Listar pagos de una orden
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {array}  dto.PaymentResponse
// @Router       /api/orders/{id}/payments [get]
func (h *PaymentHandler) ListByOrder(c *fiber.Ctx) error {
	list, err := h.uc.ListByOrder(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p))
	}
	return c.JSON(out)
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:      p.ID,
		OrderID: p.OrderID,
		Method:  p.Method,
		Amount:  p.Amount,
		Status:  p.Status,
		PaidAt:  p.PaidAt,
	}
}
