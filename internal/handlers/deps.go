package handlers

import (
	"context"
	"time"

	"homeacc/internal/models"
	"homeacc/internal/services"
)

type CustomerService interface {
	Register(ctx context.Context, in services.RegisterInput) (models.Customer, error)
	Login(ctx context.Context, email, password string) (services.Session, error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error
	Current(ctx context.Context, customerID string) (models.Customer, error)
	IsAdmin(ctx context.Context, customerID string) (bool, error)
	Period(ctx context.Context, customerID string) (models.Period, error)
	SetPeriod(ctx context.Context, customerID string, period models.Period) error
	SetPeriodToday(ctx context.Context, customerID string) (models.Period, error)
	SetPeriodMonth(ctx context.Context, customerID string) (models.Period, error)
	Filters(ctx context.Context, customerID string) (models.Filters, error)
	SetFilters(ctx context.Context, customerID string, filters models.Filters) error
	List(ctx context.Context) ([]models.Customer, error)
	UpdateProfile(ctx context.Context, customerID string, in services.ProfileInput) (models.Customer, error)
	Delete(ctx context.Context, actorID string, ids []string) (int64, error)
}

type AccountService interface {
	List(ctx context.Context, customerID string) ([]models.Account, error)
	Get(ctx context.Context, customerID, accountID string) (models.Account, error)
	Create(ctx context.Context, customerID string, in services.AccountInput) (models.Account, error)
	Update(ctx context.Context, customerID, accountID string, in services.AccountInput) (models.Account, error)
	Delete(ctx context.Context, customerID string, ids []string) (int64, error)
	DeleteOne(ctx context.Context, customerID, accountID string) error
}

type CategoryService interface {
	List(ctx context.Context, customerID string) ([]models.PaymentCategory, error)
	Create(ctx context.Context, customerID, name, description string) (models.PaymentCategory, error)
	Update(ctx context.Context, customerID, categoryID, name, description string) (models.PaymentCategory, error)
	Delete(ctx context.Context, customerID string, ids []string) (int64, error)
	Reseed(ctx context.Context, customerID string) (int64, error)
	InitTemplateCatalog(ctx context.Context) (int64, error)
}

type PaymentService interface {
	Record(ctx context.Context, customerID string, in services.PaymentInput) (models.Payment, error)
	Update(ctx context.Context, customerID, paymentID string, in services.PaymentInput) (models.Payment, error)
	Delete(ctx context.Context, customerID string, ids []string) (int64, error)
	RecordExchange(ctx context.Context, req services.MoveRequest) (services.MoveResult, error)
	RecordTransfer(ctx context.Context, req services.MoveRequest) (services.MoveResult, error)
	FilteredLedger(ctx context.Context, customerID string) ([]models.Payment, error)
	Statistics(ctx context.Context, customerID string) ([]models.CurrencyStats, error)
}

type RateService interface {
	RatesFor(ctx context.Context, date time.Time) ([]models.RateSnapshot, error)
	SyncToday(ctx context.Context) (int64, error)
}

type AuditStore interface {
	List(ctx context.Context, limit, offset int) ([]models.AuditLog, error)
}

type TokenBlacklist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}
