package reviews

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/event"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// ReviewUseCase registra reseñas de producto (única por cliente+producto) y
// notifica a los administradores.
type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	userRepo    repository.UserRepository
}

// NewReviewUseCase construye el caso de uso.
func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
	}
}

// CreateReview valida y persiste la reseña, y genera un evento NEW_REVIEW
// por cada administrador activo.
func (uc *ReviewUseCase) CreateReview(_ context.Context, clientID, productID string, rating int, comment string) (*entity.ProductReview, []event.Event, error) {
	if rating < 1 || rating > 5 {
		return nil, nil, fmt.Errorf("%w: la nota debe estar entre 1 y 5", domain.ErrInvalidInput)
	}
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return nil, nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	exists, err := uc.reviewRepo.ExistsByClientAndProduct(clientID, productID)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, domain.ErrDuplicate
	}

	review := &entity.ProductReview{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if err := uc.reviewRepo.Create(review); err != nil {
		return nil, nil, err
	}

	admins, err := uc.userRepo.ListAdmins()
	if err != nil {
		// La notificación no revierte la reseña ya persistida.
		return review, nil, nil
	}
	message := fmt.Sprintf("Nouvel avis sur « %s » : %d/5", product.Name, rating)
	var events []event.Event
	for _, admin := range admins {
		events = append(events, event.New(event.KindNewReview, admin.ID, message, map[string]string{
			"product_id": productID,
			"review_id":  review.ID,
		}))
	}
	return review, events, nil
}
