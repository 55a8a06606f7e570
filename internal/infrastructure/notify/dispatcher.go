package notify

import (
	"context"
	"time"

	"github.com/jhoicas/Agromercado-api/internal/domain/event"
	"github.com/jhoicas/Agromercado-api/pkg/logger"
)

// Dispatcher entrega los eventos devueltos por los casos de uso a los
// canales configurados. Se invoca después del commit; la entrega corre en
// una goroutine propia con timeout para no bloquear la respuesta HTTP.
type Dispatcher struct {
	channels []Notifier
	log      *logger.Logger
}

// NewDispatcher construye el dispatcher con los canales dados.
func NewDispatcher(log *logger.Logger, channels ...Notifier) *Dispatcher {
	return &Dispatcher{channels: channels, log: log}
}

// Dispatch entrega los eventos en segundo plano. Los fallos se loguean con
// nivel warn y se descartan.
func (d *Dispatcher) Dispatch(events []event.Event) {
	if len(events) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		for _, ev := range events {
			for _, ch := range d.channels {
				if err := ch.Notify(ctx, ev); err != nil {
					d.log.Warn().
						Err(err).
						Str("kind", string(ev.Kind)).
						Str("recipient", ev.Recipient).
						Msg("notificación descartada")
				}
			}
		}
	}()
}
