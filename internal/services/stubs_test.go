package services

import (
	"context"
	"database/sql"
	"time"

	"homeacc/internal/models"
	"homeacc/internal/rates"
	"homeacc/internal/store"
	"homeacc/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	err error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type stubAccountStore struct {
	createFn       func(ctx context.Context, tx store.Execer, account models.Account) error
	listFn         func(ctx context.Context, customerID string) ([]models.Account, error)
	getByIDFn      func(ctx context.Context, accountID string) (models.Account, error)
	getByNameFn    func(ctx context.Context, q store.Getter, customerID, name string) (models.Account, error)
	getForUpdateFn func(ctx context.Context, tx store.Getter, accountID string) (models.Account, error)
	balanceFn      func(ctx context.Context, q store.Getter, accountID string) (int64, error)
	hasPaymentsFn  func(ctx context.Context, q store.Getter, accountID string) (bool, error)
	updateFn       func(ctx context.Context, tx store.Execer, account models.Account) (int64, error)
	deleteFn       func(ctx context.Context, tx store.Execer, customerID string, ids []string) (int64, error)
}

func (s stubAccountStore) Create(ctx context.Context, tx store.Execer, account models.Account) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, account)
}

func (s stubAccountStore) ListByCustomer(ctx context.Context, customerID string) ([]models.Account, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, customerID)
}

func (s stubAccountStore) GetByID(ctx context.Context, accountID string) (models.Account, error) {
	if s.getByIDFn == nil {
		return models.Account{}, sql.ErrNoRows
	}
	return s.getByIDFn(ctx, accountID)
}

func (s stubAccountStore) GetByName(ctx context.Context, q store.Getter, customerID, name string) (models.Account, error) {
	if s.getByNameFn == nil {
		return models.Account{}, sql.ErrNoRows
	}
	return s.getByNameFn(ctx, q, customerID, name)
}

func (s stubAccountStore) GetForUpdate(ctx context.Context, tx store.Getter, accountID string) (models.Account, error) {
	return s.getForUpdateFn(ctx, tx, accountID)
}

func (s stubAccountStore) Balance(ctx context.Context, q store.Getter, accountID string) (int64, error) {
	if s.balanceFn == nil {
		return 0, nil
	}
	return s.balanceFn(ctx, q, accountID)
}

func (s stubAccountStore) HasPayments(ctx context.Context, q store.Getter, accountID string) (bool, error) {
	if s.hasPaymentsFn == nil {
		return false, nil
	}
	return s.hasPaymentsFn(ctx, q, accountID)
}

func (s stubAccountStore) Update(ctx context.Context, tx store.Execer, account models.Account) (int64, error) {
	if s.updateFn == nil {
		return 1, nil
	}
	return s.updateFn(ctx, tx, account)
}

func (s stubAccountStore) Delete(ctx context.Context, tx store.Execer, customerID string, ids []string) (int64, error) {
	if s.deleteFn == nil {
		return int64(len(ids)), nil
	}
	return s.deleteFn(ctx, tx, customerID, ids)
}

type stubCategoryStore struct {
	createFn          func(ctx context.Context, tx store.Execer, category models.PaymentCategory) error
	createIfMissingFn func(ctx context.Context, tx store.Execer, category models.PaymentCategory) (int64, error)
	seedFn            func(ctx context.Context, tx store.Execer, customerID, templateLogin string) (int64, error)
	listFn            func(ctx context.Context, customerID string) ([]models.PaymentCategory, error)
	getByIDFn         func(ctx context.Context, id string) (models.PaymentCategory, error)
	getByNameFn       func(ctx context.Context, q store.Getter, customerID, name string) (models.PaymentCategory, error)
	updateFn          func(ctx context.Context, tx store.Execer, category models.PaymentCategory) (int64, error)
	deleteFn          func(ctx context.Context, tx store.Execer, customerID string, ids, protected []string) (int64, error)
}

func (s stubCategoryStore) Create(ctx context.Context, tx store.Execer, category models.PaymentCategory) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, category)
}

func (s stubCategoryStore) CreateIfMissing(ctx context.Context, tx store.Execer, category models.PaymentCategory) (int64, error) {
	if s.createIfMissingFn == nil {
		return 1, nil
	}
	return s.createIfMissingFn(ctx, tx, category)
}

func (s stubCategoryStore) SeedFromTemplate(ctx context.Context, tx store.Execer, customerID, templateLogin string) (int64, error) {
	if s.seedFn == nil {
		return 0, nil
	}
	return s.seedFn(ctx, tx, customerID, templateLogin)
}

func (s stubCategoryStore) ListByCustomer(ctx context.Context, customerID string) ([]models.PaymentCategory, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, customerID)
}

func (s stubCategoryStore) GetByID(ctx context.Context, id string) (models.PaymentCategory, error) {
	if s.getByIDFn == nil {
		return models.PaymentCategory{}, sql.ErrNoRows
	}
	return s.getByIDFn(ctx, id)
}

func (s stubCategoryStore) GetByName(ctx context.Context, q store.Getter, customerID, name string) (models.PaymentCategory, error) {
	if s.getByNameFn == nil {
		return models.PaymentCategory{ID: "cat-" + name, CustomerID: customerID, Name: name}, nil
	}
	return s.getByNameFn(ctx, q, customerID, name)
}

func (s stubCategoryStore) Update(ctx context.Context, tx store.Execer, category models.PaymentCategory) (int64, error) {
	if s.updateFn == nil {
		return 1, nil
	}
	return s.updateFn(ctx, tx, category)
}

func (s stubCategoryStore) Delete(ctx context.Context, tx store.Execer, customerID string, ids, protected []string) (int64, error) {
	if s.deleteFn == nil {
		return int64(len(ids)), nil
	}
	return s.deleteFn(ctx, tx, customerID, ids, protected)
}

type stubPaymentStore struct {
	insertFn  func(ctx context.Context, tx store.Execer, payments []models.Payment) error
	getByIDFn func(ctx context.Context, id string) (models.Payment, error)
	listFn    func(ctx context.Context, q store.LedgerQuery) ([]models.Payment, error)
	sumFn     func(ctx context.Context, customerID string, from, to *time.Time) ([]store.CurrencySum, error)
	updateFn  func(ctx context.Context, tx store.Execer, payment models.Payment) (int64, error)
	deleteFn  func(ctx context.Context, tx store.Execer, customerID string, ids []string) (int64, error)
}

func (s stubPaymentStore) InsertPayments(ctx context.Context, tx store.Execer, payments []models.Payment) error {
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, tx, payments)
}

func (s stubPaymentStore) GetByID(ctx context.Context, id string) (models.Payment, error) {
	if s.getByIDFn == nil {
		return models.Payment{}, sql.ErrNoRows
	}
	return s.getByIDFn(ctx, id)
}

func (s stubPaymentStore) ListFiltered(ctx context.Context, q store.LedgerQuery) ([]models.Payment, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, q)
}

func (s stubPaymentStore) SumByCurrency(ctx context.Context, customerID string, from, to *time.Time) ([]store.CurrencySum, error) {
	if s.sumFn == nil {
		return nil, nil
	}
	return s.sumFn(ctx, customerID, from, to)
}

func (s stubPaymentStore) Update(ctx context.Context, tx store.Execer, payment models.Payment) (int64, error) {
	if s.updateFn == nil {
		return 1, nil
	}
	return s.updateFn(ctx, tx, payment)
}

func (s stubPaymentStore) Delete(ctx context.Context, tx store.Execer, customerID string, ids []string) (int64, error) {
	if s.deleteFn == nil {
		return int64(len(ids)), nil
	}
	return s.deleteFn(ctx, tx, customerID, ids)
}

type stubCustomerStore struct {
	createFn        func(ctx context.Context, tx store.Execer, customer models.Customer) error
	getByIDFn       func(ctx context.Context, id string) (models.Customer, error)
	getByEmailFn    func(ctx context.Context, email string) (models.Customer, error)
	getByLoginFn    func(ctx context.Context, login string) (models.Customer, error)
	listFn          func(ctx context.Context) ([]models.Customer, error)
	updateProfileFn func(ctx context.Context, tx store.Execer, customer models.Customer) (int64, error)
	setRoleFn       func(ctx context.Context, tx store.Execer, id, role string) error
	setPeriodFn     func(ctx context.Context, id string, start, end time.Time) error
	setFiltersFn    func(ctx context.Context, id string, filters models.Filters) error
	deleteFn        func(ctx context.Context, tx store.Execer, ids []string, keepID string) (int64, error)
}

func (s stubCustomerStore) Create(ctx context.Context, tx store.Execer, customer models.Customer) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, customer)
}

func (s stubCustomerStore) GetByID(ctx context.Context, id string) (models.Customer, error) {
	if s.getByIDFn == nil {
		return models.Customer{}, sql.ErrNoRows
	}
	return s.getByIDFn(ctx, id)
}

func (s stubCustomerStore) GetByEmail(ctx context.Context, email string) (models.Customer, error) {
	if s.getByEmailFn == nil {
		return models.Customer{}, sql.ErrNoRows
	}
	return s.getByEmailFn(ctx, email)
}

func (s stubCustomerStore) GetByLogin(ctx context.Context, login string) (models.Customer, error) {
	if s.getByLoginFn == nil {
		return models.Customer{}, sql.ErrNoRows
	}
	return s.getByLoginFn(ctx, login)
}

func (s stubCustomerStore) List(ctx context.Context) ([]models.Customer, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubCustomerStore) UpdateProfile(ctx context.Context, tx store.Execer, customer models.Customer) (int64, error) {
	if s.updateProfileFn == nil {
		return 1, nil
	}
	return s.updateProfileFn(ctx, tx, customer)
}

func (s stubCustomerStore) SetRole(ctx context.Context, tx store.Execer, id, role string) error {
	if s.setRoleFn == nil {
		return nil
	}
	return s.setRoleFn(ctx, tx, id, role)
}

func (s stubCustomerStore) SetPeriod(ctx context.Context, id string, start, end time.Time) error {
	if s.setPeriodFn == nil {
		return nil
	}
	return s.setPeriodFn(ctx, id, start, end)
}

func (s stubCustomerStore) SetFilters(ctx context.Context, id string, filters models.Filters) error {
	if s.setFiltersFn == nil {
		return nil
	}
	return s.setFiltersFn(ctx, id, filters)
}

func (s stubCustomerStore) Delete(ctx context.Context, tx store.Execer, ids []string, keepID string) (int64, error) {
	if s.deleteFn == nil {
		return int64(len(ids)), nil
	}
	return s.deleteFn(ctx, tx, ids, keepID)
}

type stubRateStore struct {
	existsFn func(ctx context.Context, date time.Time) (bool, error)
	listFn   func(ctx context.Context, date time.Time) ([]models.RateSnapshot, error)
	insertFn func(ctx context.Context, tx store.Execer, snapshots []models.RateSnapshot) (int64, error)
}

func (s stubRateStore) ExistsForDate(ctx context.Context, date time.Time) (bool, error) {
	if s.existsFn == nil {
		return false, nil
	}
	return s.existsFn(ctx, date)
}

func (s stubRateStore) ListByDate(ctx context.Context, date time.Time) ([]models.RateSnapshot, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, date)
}

func (s stubRateStore) Insert(ctx context.Context, tx store.Execer, snapshots []models.RateSnapshot) (int64, error) {
	if s.insertFn == nil {
		return int64(len(snapshots)), nil
	}
	return s.insertFn(ctx, tx, snapshots)
}

type stubTokenStore struct {
	addFn           func(ctx context.Context, token string, expiresAt time.Time) error
	existsFn        func(ctx context.Context, token string) (bool, error)
	deleteExpiredFn func(ctx context.Context, now time.Time) (int64, error)
}

func (s stubTokenStore) Add(ctx context.Context, token string, expiresAt time.Time) error {
	if s.addFn == nil {
		return nil
	}
	return s.addFn(ctx, token, expiresAt)
}

func (s stubTokenStore) Exists(ctx context.Context, token string) (bool, error) {
	if s.existsFn == nil {
		return false, nil
	}
	return s.existsFn(ctx, token)
}

func (s stubTokenStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if s.deleteExpiredFn == nil {
		return 0, nil
	}
	return s.deleteExpiredFn(ctx, now)
}

type stubAuditStore struct {
	logFn func(ctx context.Context, tx store.Execer, customerID, action, entityType, entityID, data string) error
}

func (s stubAuditStore) Log(ctx context.Context, tx store.Execer, customerID, action, entityType, entityID, data string) error {
	if s.logFn == nil {
		return nil
	}
	return s.logFn(ctx, tx, customerID, action, entityType, entityID, data)
}

type stubRateProvider struct {
	fetchFn func(ctx context.Context) ([]rates.Quote, error)
}

func (s stubRateProvider) FetchToday(ctx context.Context) ([]rates.Quote, error) {
	return s.fetchFn(ctx)
}

type stubRateBook struct {
	snapshots []models.RateSnapshot
	err       error
}

func (s stubRateBook) RatesFor(context.Context, time.Time) ([]models.RateSnapshot, error) {
	return s.snapshots, s.err
}

type stubHub struct {
	customers []string
	calls     []websocket.BalanceUpdate
}

func (s *stubHub) BroadcastBalance(customerID string, update websocket.BalanceUpdate) {
	s.customers = append(s.customers, customerID)
	s.calls = append(s.calls, update)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func errNoRows() error {
	return sql.ErrNoRows
}
