// Package predictor implementa los puertos de predicción contra un servidor
// de modelos externo. Los modelos son cajas negras HTTP: POST con las
// características numéricas, respuesta con el valor estimado.
package predictor

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/Agromercado-api/internal/application/predict"
	"github.com/jhoicas/Agromercado-api/pkg/config"
)

var _ predict.Predictor = (*HTTPPredictor)(nil)

// HTTPPredictor llama a un modelo publicado en el servidor de modelos.
type HTTPPredictor struct {
	client *resty.Client
	model  string
	unit   string
}

type predictRequest struct {
	Features predict.Features `json:"features"`
}

type predictResponse struct {
	Value        float64 `json:"value"`
	ModelVersion string  `json:"model_version"`
	Error        string  `json:"error,omitempty"`
}

// NewHTTPPredictor construye el cliente para un modelo concreto.
// unit etiqueta el valor devuelto ("unidades", "horas", "score").
func NewHTTPPredictor(cfg config.ModelConfig, model, unit string) *HTTPPredictor {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSec) * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	return &HTTPPredictor{client: client, model: model, unit: unit}
}

// Predict envía las características al modelo y devuelve la estimación.
func (p *HTTPPredictor) Predict(ctx context.Context, features predict.Features) (*predict.Prediction, error) {
	var out predictResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(predictRequest{Features: features}).
		SetResult(&out).
		Post(fmt.Sprintf("/models/%s/predict", p.model))
	if err != nil {
		return nil, fmt.Errorf("predictor %s: %w", p.model, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("predictor %s: HTTP %d: %s", p.model, resp.StatusCode(), out.Error)
	}
	return &predict.Prediction{
		Value:        out.Value,
		Unit:         p.unit,
		ModelVersion: out.ModelVersion,
		Timestamp:    time.Now(),
	}, nil
}
