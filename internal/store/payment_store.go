package store

import (
	"context"
	"time"

	"homeacc/internal/models"

	"github.com/lib/pq"
)

type PaymentStore struct {
	db DB
}

// LedgerQuery restricts payments to the listed values of each dimension and
// to occurred_at within [From, To).
type LedgerQuery struct {
	CustomerID string
	Currencies []string
	Directions []bool
	Statuses   []bool
	From       time.Time
	To         time.Time
}

type CurrencySum struct {
	Currency string `db:"currency"`
	Sum      int64  `db:"sum"`
}

const paymentSelect = `
		SELECT p.id, p.customer_id, p.account_id, a.name AS account_name, p.category_id,
		       pc.name AS category_name, p.pair_id, p.occurred_at, p.direction, p.status,
		       p.amount, p.currency, p.description
		FROM payments p
		JOIN accounts a ON a.id = p.account_id
		LEFT JOIN payment_categories pc ON pc.id = p.category_id`

func NewPaymentStore(db DB) *PaymentStore {
	return &PaymentStore{db: db}
}

// InsertPayments writes every row through tx; callers wrap multi-leg writes
// in one transaction so that either all rows land or none do.
func (s *PaymentStore) InsertPayments(ctx context.Context, tx Execer, payments []models.Payment) error {
	query := `
		INSERT INTO payments (id, customer_id, account_id, category_id, pair_id, occurred_at,
		                      direction, status, amount, currency, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for _, p := range payments {
		if _, err := tx.ExecContext(ctx, query, p.ID, p.CustomerID, p.AccountID, p.CategoryID, p.PairID,
			p.OccurredAt, p.Direction, p.Status, p.Amount, p.Currency, p.Description); err != nil {
			return err
		}
	}
	return nil
}

func (s *PaymentStore) GetByID(ctx context.Context, id string) (models.Payment, error) {
	var row models.Payment
	err := s.db.GetContext(ctx, &row, paymentSelect+` WHERE p.id = $1`, id)
	return row, err
}

func (s *PaymentStore) ListFiltered(ctx context.Context, q LedgerQuery) ([]models.Payment, error) {
	var rows []models.Payment
	err := s.db.SelectContext(ctx, &rows, paymentSelect+`
		WHERE p.customer_id = $1
		  AND p.currency = ANY($2)
		  AND p.direction = ANY($3)
		  AND p.status = ANY($4)
		  AND p.occurred_at >= $5 AND p.occurred_at < $6
		ORDER BY p.occurred_at, p.direction, p.id
	`, q.CustomerID, pq.Array(q.Currencies), pq.Array(q.Directions), pq.Array(q.Statuses), q.From, q.To)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SumByCurrency folds signed amounts per currency. Nil bounds leave that side open.
func (s *PaymentStore) SumByCurrency(ctx context.Context, customerID string, from, to *time.Time) ([]CurrencySum, error) {
	var rows []CurrencySum
	err := s.db.SelectContext(ctx, &rows, `
		SELECT currency, COALESCE(SUM(CASE WHEN direction THEN amount ELSE -amount END), 0) AS sum
		FROM payments
		WHERE customer_id = $1
		  AND ($2::timestamp IS NULL OR occurred_at >= $2)
		  AND ($3::timestamp IS NULL OR occurred_at < $3)
		GROUP BY currency
	`, customerID, from, to)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *PaymentStore) Update(ctx context.Context, tx Execer, p models.Payment) (int64, error) {
	return execAffected(ctx, tx, `
		UPDATE payments
		SET account_id = $3, category_id = $4, occurred_at = $5, direction = $6, status = $7,
		    amount = $8, currency = $9, description = $10
		WHERE id = $1 AND customer_id = $2
	`, p.ID, p.CustomerID, p.AccountID, p.CategoryID, p.OccurredAt, p.Direction, p.Status,
		p.Amount, p.Currency, p.Description)
}

func (s *PaymentStore) Delete(ctx context.Context, tx Execer, customerID string, ids []string) (int64, error) {
	return execAffected(ctx, tx, `
		DELETE FROM payments WHERE customer_id = $1 AND id = ANY($2)
	`, customerID, pq.Array(ids))
}
