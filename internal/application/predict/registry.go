// Package predict define el contrato con los predictores de ML externos.
// Los modelos son cajas negras: reciben un registro plano de características
// numéricas y devuelven un valor; el núcleo sólo consume ese valor.
package predict

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Agromercado-api/internal/domain"
)

// Nombres de predictores registrados en el arranque.
const (
	PredictorSales     = "sales"     // ventas estimadas
	PredictorInventory = "inventory" // riesgo de quiebre de stock
	PredictorDelivery  = "delivery"  // duración de entrega en horas
)

// Features es el registro plano de características numéricas para el modelo.
type Features map[string]float64

// Prediction resultado de un predictor.
type Prediction struct {
	Value        float64
	Unit         string
	ModelVersion string
	Timestamp    time.Time
}

// Predictor es el puerto hacia un estimador externo.
type Predictor interface {
	Predict(ctx context.Context, features Features) (*Prediction, error)
}

// Registry mantiene los predictores disponibles. Se construye una única vez
// en el arranque y se inyecta por referencia a los handlers: no hay
// singletons globales por proceso.
type Registry struct {
	predictors map[string]Predictor
}

// NewRegistry construye un registro vacío.
func NewRegistry() *Registry {
	return &Registry{predictors: make(map[string]Predictor)}
}

// Register asocia un predictor a un nombre. Sólo se llama durante el
// arranque, antes de servir peticiones.
func (r *Registry) Register(name string, p Predictor) {
	r.predictors[name] = p
}

// Get devuelve el predictor registrado con ese nombre.
func (r *Registry) Get(name string) (Predictor, error) {
	p, ok := r.predictors[name]
	if !ok {
		return nil, fmt.Errorf("%w: predictor '%s'", domain.ErrNotFound, name)
	}
	return p, nil
}

// Predict resuelve el predictor y delega la predicción.
func (r *Registry) Predict(ctx context.Context, name string, features Features) (*Prediction, error) {
	p, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return p.Predict(ctx, features)
}
