// Package notify entrega los eventos de notificación que emite el núcleo.
// La entrega es best-effort: un fallo se registra y se descarta, nunca
// revierte la operación de negocio que generó el evento.
package notify

import (
	"context"

	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/event"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// Notifier es el canal de entrega de una notificación (email, SMS, etc.).
type Notifier interface {
	Notify(ctx context.Context, ev event.Event) error
}

// RecipientResolver resuelve la dirección de entrega de un destinatario.
type RecipientResolver interface {
	EmailFor(userID string) (string, error)
}

var _ RecipientResolver = (*UserEmailResolver)(nil)

// UserEmailResolver resuelve emails consultando el repositorio de usuarios.
type UserEmailResolver struct {
	users repository.UserRepository
}

// NewUserEmailResolver construye el resolver.
func NewUserEmailResolver(users repository.UserRepository) *UserEmailResolver {
	return &UserEmailResolver{users: users}
}

// EmailFor devuelve el email del usuario destinatario.
func (r *UserEmailResolver) EmailFor(userID string) (string, error) {
	user, err := r.users.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	return user.Email, nil
}
