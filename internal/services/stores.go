package services

import (
	"context"
	"time"

	"homeacc/internal/models"
	"homeacc/internal/rates"
	"homeacc/internal/store"
	"homeacc/internal/websocket"
)

type AccountStore interface {
	Create(ctx context.Context, tx store.Execer, account models.Account) error
	ListByCustomer(ctx context.Context, customerID string) ([]models.Account, error)
	GetByID(ctx context.Context, accountID string) (models.Account, error)
	GetByName(ctx context.Context, q store.Getter, customerID, name string) (models.Account, error)
	GetForUpdate(ctx context.Context, tx store.Getter, accountID string) (models.Account, error)
	Balance(ctx context.Context, q store.Getter, accountID string) (int64, error)
	HasPayments(ctx context.Context, q store.Getter, accountID string) (bool, error)
	Update(ctx context.Context, tx store.Execer, account models.Account) (int64, error)
	Delete(ctx context.Context, tx store.Execer, customerID string, ids []string) (int64, error)
}

type CategoryStore interface {
	Create(ctx context.Context, tx store.Execer, category models.PaymentCategory) error
	CreateIfMissing(ctx context.Context, tx store.Execer, category models.PaymentCategory) (int64, error)
	SeedFromTemplate(ctx context.Context, tx store.Execer, customerID, templateLogin string) (int64, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.PaymentCategory, error)
	GetByID(ctx context.Context, id string) (models.PaymentCategory, error)
	GetByName(ctx context.Context, q store.Getter, customerID, name string) (models.PaymentCategory, error)
	Update(ctx context.Context, tx store.Execer, category models.PaymentCategory) (int64, error)
	Delete(ctx context.Context, tx store.Execer, customerID string, ids, protected []string) (int64, error)
}

type PaymentStore interface {
	InsertPayments(ctx context.Context, tx store.Execer, payments []models.Payment) error
	GetByID(ctx context.Context, id string) (models.Payment, error)
	ListFiltered(ctx context.Context, q store.LedgerQuery) ([]models.Payment, error)
	SumByCurrency(ctx context.Context, customerID string, from, to *time.Time) ([]store.CurrencySum, error)
	Update(ctx context.Context, tx store.Execer, payment models.Payment) (int64, error)
	Delete(ctx context.Context, tx store.Execer, customerID string, ids []string) (int64, error)
}

type CustomerStore interface {
	Create(ctx context.Context, tx store.Execer, customer models.Customer) error
	GetByID(ctx context.Context, id string) (models.Customer, error)
	GetByEmail(ctx context.Context, email string) (models.Customer, error)
	GetByLogin(ctx context.Context, login string) (models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
	UpdateProfile(ctx context.Context, tx store.Execer, customer models.Customer) (int64, error)
	SetRole(ctx context.Context, tx store.Execer, id, role string) error
	SetPeriod(ctx context.Context, id string, start, end time.Time) error
	SetFilters(ctx context.Context, id string, filters models.Filters) error
	Delete(ctx context.Context, tx store.Execer, ids []string, keepID string) (int64, error)
}

// CustomerReader is the slice of CustomerStore the payment engine needs.
type CustomerReader interface {
	GetByID(ctx context.Context, id string) (models.Customer, error)
}

type RateStore interface {
	ExistsForDate(ctx context.Context, date time.Time) (bool, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.RateSnapshot, error)
	Insert(ctx context.Context, tx store.Execer, snapshots []models.RateSnapshot) (int64, error)
}

type TokenStore interface {
	Add(ctx context.Context, token string, expiresAt time.Time) error
	Exists(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, customerID, action, entityType, entityID, data string) error
}

type RateProvider interface {
	FetchToday(ctx context.Context) ([]rates.Quote, error)
}

// RateBook returns the snapshots in force on a calendar date.
type RateBook interface {
	RatesFor(ctx context.Context, date time.Time) ([]models.RateSnapshot, error)
}

type BalanceHub interface {
	BroadcastBalance(customerID string, update websocket.BalanceUpdate)
}
