package store

import (
	"context"
	"time"

	"homeacc/internal/models"
)

type RateStore struct {
	db DB
}

func NewRateStore(db DB) *RateStore {
	return &RateStore{db: db}
}

func (s *RateStore) ExistsForDate(ctx context.Context, date time.Time) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM currency_rates WHERE rate_date = $1)
	`, date.Format("2006-01-02"))
	return exists, err
}

func (s *RateStore) ListByDate(ctx context.Context, date time.Time) ([]models.RateSnapshot, error) {
	var rows []models.RateSnapshot
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, currency, base_currency, buy_rate::text AS buy_rate, sell_rate::text AS sell_rate, rate_date
		FROM currency_rates
		WHERE rate_date = $1
		ORDER BY currency
	`, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert skips currencies that already have a snapshot for the date.
func (s *RateStore) Insert(ctx context.Context, tx Execer, snapshots []models.RateSnapshot) (int64, error) {
	var inserted int64
	for _, snap := range snapshots {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO currency_rates (id, currency, base_currency, buy_rate, sell_rate, rate_date)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (currency, rate_date) DO NOTHING
		`, snap.ID, snap.Currency, snap.BaseCurrency, snap.BuyRate, snap.SellRate, snap.RateDate.Format("2006-01-02"))
		if err != nil {
			return inserted, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += n
	}
	return inserted, nil
}
