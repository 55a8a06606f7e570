package repository

import "github.com/jhoicas/Agromercado-api/internal/domain/entity"

// DeliveryRepository define el puerto de persistencia para livraisons.
type DeliveryRepository interface {
	Create(delivery *entity.Delivery) error
	GetByID(id string) (*entity.Delivery, error)
	Update(delivery *entity.Delivery) error
	ExistsForOrder(orderID string) (bool, error)
	ListByOrder(orderID string) ([]*entity.Delivery, error)
}

// ReviewRepository define el puerto de persistencia para reseñas.
type ReviewRepository interface {
	Create(review *entity.ProductReview) error
	ExistsByClientAndProduct(clientID, productID string) (bool, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.ProductReview, error)
}

// RefundRepository define el puerto de persistencia para reembolsos.
type RefundRepository interface {
	Create(refund *entity.RefundRequest) error
	GetByID(id string) (*entity.RefundRequest, error)
	Update(refund *entity.RefundRequest) error
}
