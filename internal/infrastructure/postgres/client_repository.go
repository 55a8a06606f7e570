package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de perfiles de cliente. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un perfil de cliente.
func (r *ClientRepo) Create(client *entity.ClientProfile) error {
	query := `
		INSERT INTO clients (id, user_id, location, balance, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.UserID, client.Location, client.Balance, client.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID. Devuelve nil, nil si no existe.
func (r *ClientRepo) GetByID(id string) (*entity.ClientProfile, error) {
	query := `SELECT id, user_id, location, balance, created_at FROM clients WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get client")
}

// GetByUserID obtiene el perfil asociado a un usuario.
func (r *ClientRepo) GetByUserID(userID string) (*entity.ClientProfile, error) {
	query := `SELECT id, user_id, location, balance, created_at FROM clients WHERE user_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, userID), "get client by user")
}

// GetForUpdate obtiene el perfil y bloquea la fila (SELECT FOR UPDATE);
// serializa los pagos BALANCE sobre el mismo saldo.
func (r *ClientRepo) GetForUpdate(id string) (*entity.ClientProfile, error) {
	query := `SELECT id, user_id, location, balance, created_at FROM clients WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get client for update")
}

// UpdateBalance persiste el nuevo saldo del cliente.
func (r *ClientRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE clients SET balance = $2 WHERE id = $1`, id, balance)
	if err != nil {
		return fmt.Errorf("update client balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepo) scanOne(row pgxScanner, op string) (*entity.ClientProfile, error) {
	var c entity.ClientProfile
	err := row.Scan(&c.ID, &c.UserID, &c.Location, &c.Balance, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
