package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"homeacc/internal/db"
	"homeacc/internal/models"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// RateService keeps one snapshot per tracked currency per day. Snapshots never
// change once stored, so a day is cached as soon as it has any.
type RateService struct {
	txRunner db.TxRunner
	store    RateStore
	provider RateProvider
	cache    *ristretto.Cache
	pivot    string
	tracked  map[string]bool
	now      func() time.Time
}

func NewRateService(txRunner db.TxRunner, rateStore RateStore, provider RateProvider, pivot string, cacheEntries int64) (*RateService, error) {
	if cacheEntries <= 0 {
		cacheEntries = 365
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        cacheEntries * 10,
		MaxCost:            cacheEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("rate cache: %w", err)
	}
	tracked := make(map[string]bool, len(models.Currencies))
	for _, c := range models.Currencies {
		if c != pivot {
			tracked[c] = true
		}
	}
	return &RateService{
		txRunner: txRunner,
		store:    rateStore,
		provider: provider,
		cache:    cache,
		pivot:    pivot,
		tracked:  tracked,
		now:      time.Now,
	}, nil
}

// SyncToday stores today's quotes unless they are already stored. It returns
// how many snapshots were written.
func (s *RateService) SyncToday(ctx context.Context) (int64, error) {
	today := models.StartOfDay(s.now())
	exists, err := s.store.ExistsForDate(ctx, today)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}
	quotes, err := s.provider.FetchToday(ctx)
	if err != nil {
		return 0, err
	}
	snapshots := make([]models.RateSnapshot, 0, len(quotes))
	for _, q := range quotes {
		if q.BaseCurrency != s.pivot || !s.tracked[q.Currency] {
			continue
		}
		if !q.Buy.IsPositive() || !q.Sell.IsPositive() {
			continue
		}
		snapshots = append(snapshots, models.RateSnapshot{
			ID:           uuid.NewString(),
			Currency:     q.Currency,
			BaseCurrency: q.BaseCurrency,
			BuyRate:      q.Buy.String(),
			SellRate:     q.Sell.String(),
			RateDate:     today,
		})
	}
	if len(snapshots) == 0 {
		return 0, ErrRatesUnavailable
	}
	var inserted int64
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		inserted, err = s.store.Insert(ctx, tx, snapshots)
		return err
	})
	return inserted, err
}

func (s *RateService) RatesFor(ctx context.Context, date time.Time) ([]models.RateSnapshot, error) {
	key := date.Format("2006-01-02")
	if cached, ok := s.cache.Get(key); ok {
		if snapshots, ok := cached.([]models.RateSnapshot); ok {
			return snapshots, nil
		}
	}
	snapshots, err := s.store.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, ErrRatesUnavailable
	}
	s.cache.Set(key, snapshots, 1)
	return snapshots, nil
}

// Run syncs immediately and then on every tick until ctx ends.
func (s *RateService) Run(ctx context.Context, interval time.Duration) {
	s.syncAndLog(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.syncAndLog(ctx)
		}
	}
}

func (s *RateService) syncAndLog(ctx context.Context) {
	n, err := s.SyncToday(ctx)
	if err != nil {
		log.Printf("rates sync failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("rates sync stored %d snapshots", n)
	}
}

func (s *RateService) Close() {
	s.cache.Close()
}
