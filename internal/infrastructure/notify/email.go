package notify

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/jhoicas/Agromercado-api/internal/domain/event"
	"github.com/jhoicas/Agromercado-api/pkg/config"
	"github.com/jhoicas/Agromercado-api/pkg/logger"
)

var _ Notifier = (*EmailNotifier)(nil)

// Asuntos por tipo de evento (plataforma en francés de cara al usuario).
var subjects = map[event.Kind]string{
	event.KindStockAlert:      "Alerte de stock",
	event.KindNewReview:       "Nouvel avis produit",
	event.KindRefundRequested: "Demande de remboursement",
	event.KindDeliveryStatus:  "Mise à jour de votre livraison",
	event.KindNewClient:       "Bienvenue !",
}

// EmailNotifier entrega eventos por SMTP usando gomail. Con SMTP_HOST vacío
// trabaja en modo degradado: sólo loguea el contenido (útil en development).
type EmailNotifier struct {
	cfg      config.SMTPConfig
	dialer   *gomail.Dialer
	resolver RecipientResolver
	log      *logger.Logger
}

// NewEmailNotifier construye el canal de email.
func NewEmailNotifier(cfg config.SMTPConfig, resolver RecipientResolver, log *logger.Logger) *EmailNotifier {
	n := &EmailNotifier{cfg: cfg, resolver: resolver, log: log}
	if cfg.Host != "" {
		n.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return n
}

// Notify resuelve el email del destinatario y envía el mensaje.
func (n *EmailNotifier) Notify(_ context.Context, ev event.Event) error {
	to, err := n.resolver.EmailFor(ev.Recipient)
	if err != nil {
		return fmt.Errorf("resolver destinatario: %w", err)
	}
	subject, ok := subjects[ev.Kind]
	if !ok {
		subject = "Notification"
	}

	if n.dialer == nil {
		n.log.Info().
			Str("to", to).
			Str("subject", subject).
			Str("body", ev.Message).
			Msg("SMTP no configurado: email sólo logueado")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", ev.Message)
	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar email: %w", err)
	}
	return nil
}
