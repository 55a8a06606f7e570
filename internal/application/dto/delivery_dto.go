package dto

import "time"

// UpdateDeliveryStatusRequest body para PATCH /api/deliveries/:id/status.
type UpdateDeliveryStatusRequest struct {
	Status string `json:"status"`
}

// PredictEstimateRequest body para POST /api/deliveries/:id/estimate.
// Lat/Lng es la ubicación del cliente para el cálculo de distancia.
type PredictEstimateRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DeliveryResponse representación de una livraison.
type DeliveryResponse struct {
	ID            string     `json:"id"`
	OrderID       *string    `json:"order_id,omitempty"`
	DelivererID   *string    `json:"deliverer_id,omitempty"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Description   string     `json:"description,omitempty"`
	EstimatedDate *time.Time `json:"estimated_date,omitempty"`
	ActualDate    *time.Time `json:"actual_date,omitempty"`
}

// CreateReviewRequest body para POST /api/products/:id/reviews.
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// CreateRefundRequest body para POST /api/orders/:id/refunds.
type CreateRefundRequest struct {
	Reason string `json:"reason"`
}

// PredictRequest registro plano de características para un predictor.
type PredictRequest struct {
	Features map[string]float64 `json:"features"`
}

// PredictionResponse resultado de un predictor.
type PredictionResponse struct {
	Prediction   float64   `json:"prediction"`
	Unit         string    `json:"unit,omitempty"`
	ModelVersion string    `json:"model_version,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
