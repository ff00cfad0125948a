package store

import (
	"context"

	"homeacc/internal/models"

	"github.com/lib/pq"
)

type AccountStore struct {
	db DB
}

// Balances are never stored; they are folded from payments on every read.
const accountBalanceExpr = `COALESCE((
		SELECT SUM(CASE WHEN p.direction THEN p.amount ELSE -p.amount END)
		FROM payments p
		WHERE p.account_id = a.id
	), 0)`

func NewAccountStore(db DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Create(ctx context.Context, tx Execer, account models.Account) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO accounts (id, customer_id, name, description, type, currency)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, account.ID, account.CustomerID, account.Name, account.Description, account.Type, account.Currency)
	return err
}

func (s *AccountStore) ListByCustomer(ctx context.Context, customerID string) ([]models.Account, error) {
	var rows []models.Account
	err := s.db.SelectContext(ctx, &rows, `
		SELECT a.id, a.customer_id, a.name, a.description, a.type, a.currency, a.created_at,
		       `+accountBalanceExpr+` AS balance
		FROM accounts a
		WHERE a.customer_id = $1
		ORDER BY a.name
	`, customerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AccountStore) GetByID(ctx context.Context, accountID string) (models.Account, error) {
	var row models.Account
	err := s.db.GetContext(ctx, &row, `
		SELECT a.id, a.customer_id, a.name, a.description, a.type, a.currency, a.created_at,
		       `+accountBalanceExpr+` AS balance
		FROM accounts a
		WHERE a.id = $1
	`, accountID)
	return row, err
}

func (s *AccountStore) GetByName(ctx context.Context, q Getter, customerID, name string) (models.Account, error) {
	var row models.Account
	err := q.GetContext(ctx, &row, `
		SELECT a.id, a.customer_id, a.name, a.description, a.type, a.currency, a.created_at,
		       `+accountBalanceExpr+` AS balance
		FROM accounts a
		WHERE a.customer_id = $1 AND a.name = $2
	`, customerID, name)
	return row, err
}

// GetForUpdate row-locks the account for the rest of the transaction.
func (s *AccountStore) GetForUpdate(ctx context.Context, tx Getter, accountID string) (models.Account, error) {
	var row models.Account
	err := tx.GetContext(ctx, &row, `
		SELECT a.id, a.customer_id, a.name, a.description, a.type, a.currency, a.created_at,
		       `+accountBalanceExpr+` AS balance
		FROM accounts a
		WHERE a.id = $1
		FOR UPDATE OF a
	`, accountID)
	return row, err
}

func (s *AccountStore) Balance(ctx context.Context, q Getter, accountID string) (int64, error) {
	var sum int64
	err := q.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(CASE WHEN direction THEN amount ELSE -amount END), 0)
		FROM payments
		WHERE account_id = $1
	`, accountID)
	return sum, err
}

func (s *AccountStore) HasPayments(ctx context.Context, q Getter, accountID string) (bool, error) {
	var exists bool
	err := q.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM payments WHERE account_id = $1)`, accountID)
	return exists, err
}

func (s *AccountStore) Update(ctx context.Context, tx Execer, account models.Account) (int64, error) {
	return execAffected(ctx, tx, `
		UPDATE accounts
		SET name = $3, description = $4, type = $5, currency = $6
		WHERE id = $1 AND customer_id = $2
	`, account.ID, account.CustomerID, account.Name, account.Description, account.Type, account.Currency)
}

// Delete removes the customer's listed accounts; their payments cascade.
func (s *AccountStore) Delete(ctx context.Context, tx Execer, customerID string, ids []string) (int64, error) {
	return execAffected(ctx, tx, `
		DELETE FROM accounts WHERE customer_id = $1 AND id = ANY($2)
	`, customerID, pq.Array(ids))
}
