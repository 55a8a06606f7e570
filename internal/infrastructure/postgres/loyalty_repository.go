package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

var _ repository.LoyaltyRepository = (*LoyaltyRepo)(nil)

// LoyaltyRepo implementación del puerto LoyaltyRepository sobre PostgreSQL
// (usable con pool o tx). El log de transacciones se persiste como JSONB en
// la misma fila de la cuenta: puntos y log se escriben juntos.
type LoyaltyRepo struct {
	q Querier
}

// NewLoyaltyRepository construye el adaptador de fidelidad. Pasar pool o tx (Querier).
func NewLoyaltyRepository(q Querier) *LoyaltyRepo {
	return &LoyaltyRepo{q: q}
}

// Create persiste una cuenta de fidelidad nueva (una por cliente).
func (r *LoyaltyRepo) Create(account *entity.LoyaltyAccount) error {
	raw, err := marshalTransactions(account.Transactions)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO loyalty_accounts (id, client_id, points, transactions, last_updated)
		VALUES ($1, $2, $3, $4, $5)`
	_, err = r.q.Exec(context.Background(), query,
		account.ID, account.ClientID, account.Points, raw, account.LastUpdated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert loyalty account: %w", err)
	}
	return nil
}

// GetByClientID obtiene la cuenta de un cliente. Devuelve nil, nil si no existe.
func (r *LoyaltyRepo) GetByClientID(clientID string) (*entity.LoyaltyAccount, error) {
	query := `
		SELECT id, client_id, points, transactions, last_updated
		FROM loyalty_accounts WHERE client_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, clientID), "get loyalty account")
}

// GetForUpdate obtiene la cuenta bloqueando su fila (SELECT FOR UPDATE);
// serializa acumulación y canje sobre la misma cuenta.
func (r *LoyaltyRepo) GetForUpdate(clientID string) (*entity.LoyaltyAccount, error) {
	query := `
		SELECT id, client_id, points, transactions, last_updated
		FROM loyalty_accounts WHERE client_id = $1
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, clientID), "get loyalty account for update")
}

// Update persiste puntos y log como una sola escritura.
func (r *LoyaltyRepo) Update(account *entity.LoyaltyAccount) error {
	raw, err := marshalTransactions(account.Transactions)
	if err != nil {
		return err
	}
	query := `
		UPDATE loyalty_accounts
		SET points = $2, transactions = $3, last_updated = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, account.ID, account.Points, raw, account.LastUpdated)
	if err != nil {
		return fmt.Errorf("update loyalty account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LoyaltyRepo) scanOne(row pgxScanner, op string) (*entity.LoyaltyAccount, error) {
	var a entity.LoyaltyAccount
	var raw []byte
	err := row.Scan(&a.ID, &a.ClientID, &a.Points, &raw, &a.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &a.Transactions); err != nil {
			return nil, fmt.Errorf("%s: decode transactions: %w", op, err)
		}
	}
	return &a, nil
}

func marshalTransactions(txns []entity.LoyaltyTransaction) ([]byte, error) {
	if txns == nil {
		txns = []entity.LoyaltyTransaction{}
	}
	raw, err := json.Marshal(txns)
	if err != nil {
		return nil, fmt.Errorf("encode loyalty transactions: %w", err)
	}
	return raw, nil
}
