package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)
var _ repository.RefundRepository = (*RefundRepo)(nil)

// ReviewRepo implementación del puerto ReviewRepository sobre PostgreSQL.
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construye el adaptador de reseñas. Pasar pool o tx (Querier).
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

// Create persiste una reseña. La unicidad por (cliente, producto) la
// garantiza además un constraint único en la tabla.
func (r *ReviewRepo) Create(review *entity.ProductReview) error {
	query := `
		INSERT INTO product_reviews (id, client_id, product_id, rating, comment, verified_purchase, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		review.ID, review.ClientID, review.ProductID, review.Rating,
		review.Comment, review.VerifiedPurchase, review.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// ExistsByClientAndProduct indica si el cliente ya reseñó el producto.
func (r *ReviewRepo) ExistsByClientAndProduct(clientID, productID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM product_reviews WHERE client_id = $1 AND product_id = $2)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, clientID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("review exists: %w", err)
	}
	return exists, nil
}

// ListByProduct lista reseñas de un producto, más recientes primero.
func (r *ReviewRepo) ListByProduct(productID string, limit, offset int) ([]*entity.ProductReview, error) {
	query := `
		SELECT id, client_id, product_id, rating, comment, verified_purchase, created_at
		FROM product_reviews WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductReview
	for rows.Next() {
		var rev entity.ProductReview
		if err := rows.Scan(&rev.ID, &rev.ClientID, &rev.ProductID, &rev.Rating,
			&rev.Comment, &rev.VerifiedPurchase, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, &rev)
	}
	return list, rows.Err()
}

// RefundRepo implementación del puerto RefundRepository sobre PostgreSQL.
type RefundRepo struct {
	q Querier
}

// NewRefundRepository construye el adaptador de reembolsos. Pasar pool o tx (Querier).
func NewRefundRepository(q Querier) *RefundRepo {
	return &RefundRepo{q: q}
}

// Create persiste una solicitud de reembolso.
func (r *RefundRepo) Create(refund *entity.RefundRequest) error {
	query := `
		INSERT INTO refund_requests (id, order_id, reason, status, requested_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		refund.ID, refund.OrderID, refund.Reason, refund.Status,
		refund.RequestedAt, refund.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert refund request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID. Devuelve nil, nil si no existe.
func (r *RefundRepo) GetByID(id string) (*entity.RefundRequest, error) {
	query := `
		SELECT id, order_id, reason, status, requested_at, processed_at
		FROM refund_requests WHERE id = $1`
	var rf entity.RefundRequest
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rf.ID, &rf.OrderID, &rf.Reason, &rf.Status, &rf.RequestedAt, &rf.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get refund request: %w", err)
	}
	return &rf, nil
}

// Update persiste la resolución de la solicitud.
func (r *RefundRepo) Update(refund *entity.RefundRequest) error {
	query := `UPDATE refund_requests SET status = $2, processed_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, refund.ID, refund.Status, refund.ProcessedAt)
	if err != nil {
		return fmt.Errorf("update refund request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
