package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"homeacc/internal/auth"
	"homeacc/internal/config"
	"homeacc/internal/models"
	"homeacc/internal/services"
	"homeacc/internal/websocket"
)

type stubCustomerService struct {
	registerFn       func(ctx context.Context, in services.RegisterInput) (models.Customer, error)
	loginFn          func(ctx context.Context, email, password string) (services.Session, error)
	logoutFn         func(ctx context.Context, token string, expiresAt time.Time) error
	currentFn        func(ctx context.Context, customerID string) (models.Customer, error)
	isAdminFn        func(ctx context.Context, customerID string) (bool, error)
	periodFn         func(ctx context.Context, customerID string) (models.Period, error)
	setPeriodFn      func(ctx context.Context, customerID string, period models.Period) error
	filtersFn        func(ctx context.Context, customerID string) (models.Filters, error)
	setFiltersFn     func(ctx context.Context, customerID string, filters models.Filters) error
	listFn           func(ctx context.Context) ([]models.Customer, error)
	updateProfileFn  func(ctx context.Context, customerID string, in services.ProfileInput) (models.Customer, error)
	deleteFn         func(ctx context.Context, actorID string, ids []string) (int64, error)
	setPeriodMonthFn func(ctx context.Context, customerID string) (models.Period, error)
}

func (s stubCustomerService) Register(ctx context.Context, in services.RegisterInput) (models.Customer, error) {
	return s.registerFn(ctx, in)
}

func (s stubCustomerService) Login(ctx context.Context, email, password string) (services.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s stubCustomerService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, token, expiresAt)
}

func (s stubCustomerService) Current(ctx context.Context, customerID string) (models.Customer, error) {
	if s.currentFn == nil {
		return models.Customer{ID: customerID}, nil
	}
	return s.currentFn(ctx, customerID)
}

func (s stubCustomerService) IsAdmin(ctx context.Context, customerID string) (bool, error) {
	if s.isAdminFn == nil {
		return false, nil
	}
	return s.isAdminFn(ctx, customerID)
}

func (s stubCustomerService) Period(ctx context.Context, customerID string) (models.Period, error) {
	return s.periodFn(ctx, customerID)
}

func (s stubCustomerService) SetPeriod(ctx context.Context, customerID string, period models.Period) error {
	if s.setPeriodFn == nil {
		return nil
	}
	return s.setPeriodFn(ctx, customerID, period)
}

func (s stubCustomerService) SetPeriodToday(ctx context.Context, customerID string) (models.Period, error) {
	today := models.StartOfDay(time.Now())
	return models.Period{Start: today, End: today}, nil
}

func (s stubCustomerService) SetPeriodMonth(ctx context.Context, customerID string) (models.Period, error) {
	return s.setPeriodMonthFn(ctx, customerID)
}

func (s stubCustomerService) Filters(ctx context.Context, customerID string) (models.Filters, error) {
	if s.filtersFn == nil {
		return models.AllFilters(), nil
	}
	return s.filtersFn(ctx, customerID)
}

func (s stubCustomerService) SetFilters(ctx context.Context, customerID string, filters models.Filters) error {
	if s.setFiltersFn == nil {
		return nil
	}
	return s.setFiltersFn(ctx, customerID, filters)
}

func (s stubCustomerService) List(ctx context.Context) ([]models.Customer, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubCustomerService) UpdateProfile(ctx context.Context, customerID string, in services.ProfileInput) (models.Customer, error) {
	return s.updateProfileFn(ctx, customerID, in)
}

func (s stubCustomerService) Delete(ctx context.Context, actorID string, ids []string) (int64, error) {
	if s.deleteFn == nil {
		return int64(len(ids)), nil
	}
	return s.deleteFn(ctx, actorID, ids)
}

type stubAccountService struct {
	listFn      func(ctx context.Context, customerID string) ([]models.Account, error)
	getFn       func(ctx context.Context, customerID, accountID string) (models.Account, error)
	createFn    func(ctx context.Context, customerID string, in services.AccountInput) (models.Account, error)
	updateFn    func(ctx context.Context, customerID, accountID string, in services.AccountInput) (models.Account, error)
	deleteFn    func(ctx context.Context, customerID string, ids []string) (int64, error)
	deleteOneFn func(ctx context.Context, customerID, accountID string) error
}

func (s stubAccountService) List(ctx context.Context, customerID string) ([]models.Account, error) {
	return s.listFn(ctx, customerID)
}

func (s stubAccountService) Get(ctx context.Context, customerID, accountID string) (models.Account, error) {
	return s.getFn(ctx, customerID, accountID)
}

func (s stubAccountService) Create(ctx context.Context, customerID string, in services.AccountInput) (models.Account, error) {
	return s.createFn(ctx, customerID, in)
}

func (s stubAccountService) Update(ctx context.Context, customerID, accountID string, in services.AccountInput) (models.Account, error) {
	return s.updateFn(ctx, customerID, accountID, in)
}

func (s stubAccountService) Delete(ctx context.Context, customerID string, ids []string) (int64, error) {
	return s.deleteFn(ctx, customerID, ids)
}

func (s stubAccountService) DeleteOne(ctx context.Context, customerID, accountID string) error {
	return s.deleteOneFn(ctx, customerID, accountID)
}

type stubCategoryService struct {
	listFn   func(ctx context.Context, customerID string) ([]models.PaymentCategory, error)
	createFn func(ctx context.Context, customerID, name, description string) (models.PaymentCategory, error)
	updateFn func(ctx context.Context, customerID, categoryID, name, description string) (models.PaymentCategory, error)
	deleteFn func(ctx context.Context, customerID string, ids []string) (int64, error)
	reseedFn func(ctx context.Context, customerID string) (int64, error)
	initFn   func(ctx context.Context) (int64, error)
}

func (s stubCategoryService) List(ctx context.Context, customerID string) ([]models.PaymentCategory, error) {
	return s.listFn(ctx, customerID)
}

func (s stubCategoryService) Create(ctx context.Context, customerID, name, description string) (models.PaymentCategory, error) {
	return s.createFn(ctx, customerID, name, description)
}

func (s stubCategoryService) Update(ctx context.Context, customerID, categoryID, name, description string) (models.PaymentCategory, error) {
	return s.updateFn(ctx, customerID, categoryID, name, description)
}

func (s stubCategoryService) Delete(ctx context.Context, customerID string, ids []string) (int64, error) {
	return s.deleteFn(ctx, customerID, ids)
}

func (s stubCategoryService) Reseed(ctx context.Context, customerID string) (int64, error) {
	return s.reseedFn(ctx, customerID)
}

func (s stubCategoryService) InitTemplateCatalog(ctx context.Context) (int64, error) {
	return s.initFn(ctx)
}

type stubPaymentService struct {
	recordFn   func(ctx context.Context, customerID string, in services.PaymentInput) (models.Payment, error)
	updateFn   func(ctx context.Context, customerID, paymentID string, in services.PaymentInput) (models.Payment, error)
	deleteFn   func(ctx context.Context, customerID string, ids []string) (int64, error)
	exchangeFn func(ctx context.Context, req services.MoveRequest) (services.MoveResult, error)
	transferFn func(ctx context.Context, req services.MoveRequest) (services.MoveResult, error)
	ledgerFn   func(ctx context.Context, customerID string) ([]models.Payment, error)
	statsFn    func(ctx context.Context, customerID string) ([]models.CurrencyStats, error)
}

func (s stubPaymentService) Record(ctx context.Context, customerID string, in services.PaymentInput) (models.Payment, error) {
	return s.recordFn(ctx, customerID, in)
}

func (s stubPaymentService) Update(ctx context.Context, customerID, paymentID string, in services.PaymentInput) (models.Payment, error) {
	return s.updateFn(ctx, customerID, paymentID, in)
}

func (s stubPaymentService) Delete(ctx context.Context, customerID string, ids []string) (int64, error) {
	return s.deleteFn(ctx, customerID, ids)
}

func (s stubPaymentService) RecordExchange(ctx context.Context, req services.MoveRequest) (services.MoveResult, error) {
	return s.exchangeFn(ctx, req)
}

func (s stubPaymentService) RecordTransfer(ctx context.Context, req services.MoveRequest) (services.MoveResult, error) {
	return s.transferFn(ctx, req)
}

func (s stubPaymentService) FilteredLedger(ctx context.Context, customerID string) ([]models.Payment, error) {
	return s.ledgerFn(ctx, customerID)
}

func (s stubPaymentService) Statistics(ctx context.Context, customerID string) ([]models.CurrencyStats, error) {
	return s.statsFn(ctx, customerID)
}

type stubRateService struct {
	ratesForFn func(ctx context.Context, date time.Time) ([]models.RateSnapshot, error)
	syncFn     func(ctx context.Context) (int64, error)
}

func (s stubRateService) RatesFor(ctx context.Context, date time.Time) ([]models.RateSnapshot, error) {
	return s.ratesForFn(ctx, date)
}

func (s stubRateService) SyncToday(ctx context.Context) (int64, error) {
	return s.syncFn(ctx)
}

type stubAuditStore struct {
	listFn func(ctx context.Context, limit, offset int) ([]models.AuditLog, error)
}

func (s stubAuditStore) List(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	return s.listFn(ctx, limit, offset)
}

type stubBlacklist map[string]bool

func (s stubBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	return s[token], nil
}

type testDeps struct {
	customers  stubCustomerService
	accounts   stubAccountService
	categories stubCategoryService
	payments   stubPaymentService
	rates      stubRateService
	audit      stubAuditStore
	blacklist  stubBlacklist
}

func newTestHandler(deps testDeps) *Handler {
	cfg := config.Config{
		AppEnv:         "test",
		Port:           "0",
		JWTSecret:      "secret",
		TokenTTL:       time.Minute,
		AllowedOrigins: "*",
	}
	if deps.blacklist == nil {
		deps.blacklist = stubBlacklist{}
	}
	h := New(cfg, deps.customers, deps.accounts, deps.categories, deps.payments, deps.rates, deps.audit, deps.blacklist, websocket.NewHub())
	h.loc = time.UTC
	h.now = func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }
	return h
}

func testToken(t *testing.T, customerID, role string) string {
	t.Helper()
	token, err := auth.GenerateToken("secret", customerID, role, time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// serve sends a request through the full router; an empty token sends none.
func serve(t *testing.T, h *Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(dest); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rr.Code, rr.Body.String())
	}
}

func expectErrorBody(t *testing.T, rr *httptest.ResponseRecorder, status int) errorResponse {
	t.Helper()
	expectStatus(t, rr, status)
	var body errorResponse
	decodeBody(t, rr, &body)
	if body.Message == "" || body.Timestamp == "" {
		t.Fatalf("expected message and timestamp, got %+v", body)
	}
	return body
}
