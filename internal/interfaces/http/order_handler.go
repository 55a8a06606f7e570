package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agromercado-api/internal/application/dto"
	"github.com/jhoicas/Agromercado-api/internal/application/invoices"
	"github.com/jhoicas/Agromercado-api/internal/application/orders"
	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// OrderHandler maneja órdenes, líneas y el recibo PDF (protegido).
type OrderHandler struct {
	uc         *orders.OrderUseCase
	invoiceUC  *invoices.InvoiceUseCase
	orderRepo  repository.OrderRepository
	clientRepo repository.ClientRepository
}

// NewOrderHandler construye el handler de órdenes.
func NewOrderHandler(
	uc *orders.OrderUseCase,
	invoiceUC *invoices.InvoiceUseCase,
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
) *OrderHandler {
	return &OrderHandler{uc: uc, invoiceUC: invoiceUC, orderRepo: orderRepo, clientRepo: clientRepo}
}

// clientID resuelve el perfil de cliente del usuario autenticado.
func (h *OrderHandler) clientID(c *fiber.Ctx) (string, error) {
	client, err := h.clientRepo.GetByUserID(GetUserID(c))
	if err != nil {
		return "", err
	}
	if client == nil {
		return "", domain.ErrForbidden
	}
	return client.ID, nil
}

// Create godoc
// @Summary      Crear orden
// @Description  Crea la orden PENDING con precio congelado por línea y su
//
//	livraison inicial EN_ATTENTE.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "lines"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	clientID, err := h.clientID(c)
	if err != nil {
		return writeError(c, err)
	}
	lines := make([]orders.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, orders.LineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	order, err := h.uc.CreateOrder(c.Context(), clientID, lines)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// GetByID godoc
// @Summary      Obtener orden con sus líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.orderRepo.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if order == nil {
		return writeError(c, domain.ErrNotFound)
	}
	return c.JSON(toOrderResponse(order))
}

// ListMine godoc
// @Summary      Listar mis órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	clientID, err := h.clientID(c)
	if err != nil {
		return writeError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.orderRepo.ListByClient(clientID, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(out)
}

// AddLine godoc
// @Summary      Agregar línea a una orden PENDING
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.AddOrderLineRequest  true  "product_id, quantity"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/lines [post]
func (h *OrderHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddOrderLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.AddLine(c.Context(), c.Params("id"), orders.LineInput{ProductID: in.ProductID, Quantity: in.Quantity})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// RemoveLine godoc
// @Summary      Quitar línea de una orden PENDING
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "Order ID"
// @Param        lineId  path  string  true  "Line ID"
// @Success      200     {object}  dto.OrderResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/lines/{lineId} [delete]
func (h *OrderHandler) RemoveLine(c *fiber.Ctx) error {
	order, err := h.uc.RemoveLine(c.Context(), c.Params("id"), c.Params("lineId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// RecomputeTotal godoc
// @Summary      Re-derivar el total desde las líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse
// @Router       /api/orders/{id}/recompute-total [post]
func (h *OrderHandler) RecomputeTotal(c *fiber.Ctx) error {
	order, err := h.uc.RecomputeTotal(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// Receipt godoc
// @Summary      Recibo PDF de la orden
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Order ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.invoiceUC.RenderOrderReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="recu-commande.pdf"`)
	return c.Send(pdfBytes)
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return dto.OrderResponse{
		ID:          o.ID,
		ClientID:    o.ClientID,
		DateOrdered: o.DateOrdered,
		Status:      o.Status,
		Total:       o.Total,
		Lines:       lines,
	}
}
