package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agromercado-api/internal/application/dto"
	"github.com/jhoicas/Agromercado-api/internal/application/loyalty"
	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// LoyaltyHandler maneja la cuenta de fidelidad del cliente autenticado.
type LoyaltyHandler struct {
	uc         *loyalty.LoyaltyUseCase
	clientRepo repository.ClientRepository
}

// NewLoyaltyHandler construye el handler de fidelidad.
func NewLoyaltyHandler(uc *loyalty.LoyaltyUseCase, clientRepo repository.ClientRepository) *LoyaltyHandler {
	return &LoyaltyHandler{uc: uc, clientRepo: clientRepo}
}

func (h *LoyaltyHandler) clientID(c *fiber.Ctx) (string, error) {
	client, err := h.clientRepo.GetByUserID(GetUserID(c))
	if err != nil {
		return "", err
	}
	if client == nil {
		return "", domain.ErrForbidden
	}
	return client.ID, nil
}

// GetAccount godoc
// @Summary      Mi cuenta de fidelidad
// @Tags         loyalty
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LoyaltyAccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loyalty [get]
func (h *LoyaltyHandler) GetAccount(c *fiber.Ctx) error {
	clientID, err := h.clientID(c)
	if err != nil {
		return writeError(c, err)
	}
	account, err := h.uc.GetAccount(c.Context(), clientID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toLoyaltyResponse(account))
}

// UsePoints godoc
// @Summary      Canjear puntos de fidelidad
// @Tags         loyalty
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UsePointsRequest  true  "points, reason"
// @Success      200   {object}  dto.LoyaltyAccountResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/loyalty/use [post]
func (h *LoyaltyHandler) UsePoints(c *fiber.Ctx) error {
	var in dto.UsePointsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	clientID, err := h.clientID(c)
	if err != nil {
		return writeError(c, err)
	}
	if _, err := h.uc.UsePoints(c.Context(), clientID, in.Points, in.Reason, in.OrderID); err != nil {
		return writeError(c, err)
	}
	account, err := h.uc.GetAccount(c.Context(), clientID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toLoyaltyResponse(account))
}

func toLoyaltyResponse(a *entity.LoyaltyAccount) dto.LoyaltyAccountResponse {
	txns := make([]dto.LoyaltyTransactionResponse, 0, len(a.Transactions))
	for _, t := range a.Transactions {
		txns = append(txns, dto.LoyaltyTransactionResponse{
			Date:    t.Date,
			OrderID: t.OrderID,
			Points:  t.Points,
			Reason:  t.Reason,
		})
	}
	return dto.LoyaltyAccountResponse{
		ClientID:     a.ClientID,
		Points:       a.Points,
		Transactions: txns,
		LastUpdated:  a.LastUpdated,
	}
}
