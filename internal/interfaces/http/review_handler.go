package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agromercado-api/internal/application/dto"
	"github.com/jhoicas/Agromercado-api/internal/application/refunds"
	"github.com/jhoicas/Agromercado-api/internal/application/reviews"
	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
	"github.com/jhoicas/Agromercado-api/internal/infrastructure/notify"
)

// ReviewHandler maneja reseñas de producto y solicitudes de reembolso.
type ReviewHandler struct {
	reviewUC   *reviews.ReviewUseCase
	refundUC   *refunds.RefundUseCase
	reviewRepo repository.ReviewRepository
	clientRepo repository.ClientRepository
	dispatcher *notify.Dispatcher
}

// NewReviewHandler construye el handler.
func NewReviewHandler(
	reviewUC *reviews.ReviewUseCase,
	refundUC *refunds.RefundUseCase,
	reviewRepo repository.ReviewRepository,
	clientRepo repository.ClientRepository,
	dispatcher *notify.Dispatcher,
) *ReviewHandler {
	return &ReviewHandler{
		reviewUC:   reviewUC,
		refundUC:   refundUC,
		reviewRepo: reviewRepo,
		clientRepo: clientRepo,
		dispatcher: dispatcher,
	}
}

func (h *ReviewHandler) clientID(c *fiber.Ctx) (string, error) {
	client, err := h.clientRepo.GetByUserID(GetUserID(c))
	if err != nil {
		return "", err
	}
	if client == nil {
		return "", domain.ErrForbidden
	}
	return client.ID, nil
}

// CreateReview godoc
// @Summary      Crear reseña de producto
// @Description  Una reseña por par (cliente, producto); nota 1..5.
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Product ID"
// @Param        body  body  dto.CreateReviewRequest  true  "rating, comment"
// @Success      201   {object}  entity.ProductReview
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	var in dto.CreateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	clientID, err := h.clientID(c)
	if err != nil {
		return writeError(c, err)
	}
	review, events, err := h.reviewUC.CreateReview(c.Context(), clientID, c.Params("id"), in.Rating, in.Comment)
	if err != nil {
		return writeError(c, err)
	}
	h.dispatcher.Dispatch(events)
	return c.Status(fiber.StatusCreated).JSON(review)
}

// ListReviews godoc
// @Summary      Listar reseñas de un producto
// @Tags         reviews
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {array}  entity.ProductReview
// @Router       /api/products/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.reviewRepo.ListByProduct(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	if list == nil {
		list = []*entity.ProductReview{}
	}
	return c.JSON(list)
}

// CreateRefund godoc
// @Summary      Solicitar reembolso de una orden entregada
// @Description  Elegible sólo dentro de los 14 días desde la fecha de la orden.
// @Tags         refunds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.CreateRefundRequest  true  "reason"
// @Success      201   {object}  entity.RefundRequest
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/refunds [post]
func (h *ReviewHandler) CreateRefund(c *fiber.Ctx) error {
	var in dto.CreateRefundRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	refund, events, err := h.refundUC.CreateRefund(c.Context(), c.Params("id"), in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	h.dispatcher.Dispatch(events)
	return c.Status(fiber.StatusCreated).JSON(refund)
}

type processRefundRequest struct {
	Status string `json:"status"` // APPROVED | REJECTED
}

// ProcessRefund godoc
// @Summary      Aprobar o rechazar una solicitud de reembolso (admin)
// @Tags         refunds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Refund ID"
// @Param        body  body  processRefundRequest  true  "status"
// @Success      200   {object}  entity.RefundRequest
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/refunds/{id} [patch]
func (h *ReviewHandler) ProcessRefund(c *fiber.Ctx) error {
	var in processRefundRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	refund, err := h.refundUC.Process(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(refund)
}
