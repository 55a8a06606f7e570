package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agromercado-api/internal/application/dto"
	"github.com/jhoicas/Agromercado-api/internal/application/inventory"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
	"github.com/jhoicas/Agromercado-api/internal/infrastructure/notify"
)

// InventoryHandler maneja el libro de stock: movimientos y alertas (protegido).
type InventoryHandler struct {
	uc         *inventory.ApplyMovementUseCase
	movRepo    repository.StockMovementRepository
	stockRepo  repository.StockLevelRepository
	dispatcher *notify.Dispatcher
}

// NewInventoryHandler construye el handler de stock.
func NewInventoryHandler(
	uc *inventory.ApplyMovementUseCase,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockLevelRepository,
	dispatcher *notify.Dispatcher,
) *InventoryHandler {
	return &InventoryHandler{uc: uc, movRepo: movRepo, stockRepo: stockRepo, dispatcher: dispatcher}
}

// ApplyMovement godoc
// @Summary      Aplicar movimiento de stock
// @Description  IN suma, OUT resta, ADJUST aplica un delta con signo. El
//
//	nivel nunca queda negativo; una salida mayor al disponible falla con 409.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "product_id, warehouse_id, type, quantity"
// @Success      201   {object}  dto.StockLevelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	level, events, err := h.uc.ApplyMovement(c.Context(), inventory.MovementInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		BatchID:     in.BatchID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		ActorID:     GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	h.dispatcher.Dispatch(events)
	return c.Status(fiber.StatusCreated).JSON(dto.StockLevelResponse{
		ProductID:   level.ProductID,
		WarehouseID: level.WarehouseID,
		Quantity:    level.Quantity,
		UpdatedAt:   level.UpdatedAt,
	})
}

// GetStockLevel godoc
// @Summary      Stock actual de un producto en una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true  "Product ID"
// @Param        warehouse_id  query  string  true  "Warehouse ID"
// @Success      200  {object}  dto.StockLevelResponse
// @Router       /api/stock/levels [get]
func (h *InventoryHandler) GetStockLevel(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	level, err := h.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockLevelResponse{
		ProductID:   level.ProductID,
		WarehouseID: level.WarehouseID,
		Quantity:    level.Quantity,
		UpdatedAt:   level.UpdatedAt,
	})
}

// ListMovements godoc
// @Summary      Histórico de movimientos de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "Product ID"
// @Success      200  {array}  entity.StockMovement
// @Router       /api/stock/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.movRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	if list == nil {
		list = []*entity.StockMovement{}
	}
	return c.JSON(list)
}

// CreateAlert godoc
// @Summary      Crear alerta de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockAlertRequest  true  "product_id, threshold"
// @Success      201   {object}  entity.StockAlert
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/alerts [post]
func (h *InventoryHandler) CreateAlert(c *fiber.Ctx) error {
	var in dto.CreateStockAlertRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	alert, err := h.uc.CreateAlert(c.Context(), in.ProductID, in.Threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(alert)
}
