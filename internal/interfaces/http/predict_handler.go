package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agromercado-api/internal/application/dto"
	"github.com/jhoicas/Agromercado-api/internal/application/predict"
)

// PredictHandler expone los predictores registrados (protegido).
type PredictHandler struct {
	registry *predict.Registry
}

// NewPredictHandler construye el handler de predicción.
func NewPredictHandler(registry *predict.Registry) *PredictHandler {
	return &PredictHandler{registry: registry}
}

// Predict godoc
// @Summary      Consultar un predictor por nombre
// @Description  El modelo es una caja negra: recibe un registro plano de
//
//	características numéricas y devuelve un valor con su unidad.
//
// @Tags         predict
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "sales | inventory | delivery"
// @Param        body  body  dto.PredictRequest  true  "features"
// @Success      200   {object}  dto.PredictionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/predict/{name} [post]
func (h *PredictHandler) Predict(c *fiber.Ctx) error {
	var in dto.PredictRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	prediction, err := h.registry.Predict(c.Context(), c.Params("name"), predict.Features(in.Features))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PredictionResponse{
		Prediction:   prediction.Value,
		Unit:         prediction.Unit,
		ModelVersion: prediction.ModelVersion,
		Timestamp:    prediction.Timestamp,
	})
}
