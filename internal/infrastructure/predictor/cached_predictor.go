package predictor

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/Agromercado-api/internal/application/predict"
)

var _ predict.Predictor = (*CachedPredictor)(nil)

// CachedPredictor memoiza las predicciones por (modelo, features). Las
// features idénticas producen la misma estimación durante el TTL, lo que
// evita pagar la latencia del servidor de modelos en consultas repetidas.
type CachedPredictor struct {
	inner predict.Predictor
	model string
	cache *gocache.Cache
}

// NewCachedPredictor envuelve un predictor con caché en memoria.
func NewCachedPredictor(inner predict.Predictor, model string, ttl time.Duration) *CachedPredictor {
	return &CachedPredictor{
		inner: inner,
		model: model,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Predict devuelve la predicción cacheada o delega en el predictor interno.
// Los errores no se cachean.
func (p *CachedPredictor) Predict(ctx context.Context, features predict.Features) (*predict.Prediction, error) {
	key := p.cacheKey(features)
	if cached, ok := p.cache.Get(key); ok {
		return cached.(*predict.Prediction), nil
	}
	prediction, err := p.inner.Predict(ctx, features)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, prediction, gocache.DefaultExpiration)
	return prediction, nil
}

// cacheKey serializa las features en orden estable de claves.
func (p *CachedPredictor) cacheKey(features predict.Features) string {
	keys := make([]string, 0, len(features))
	for k := range features {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(p.model)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%g", k, features[k])
	}
	return b.String()
}
