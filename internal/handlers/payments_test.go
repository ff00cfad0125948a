package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"homeacc/internal/models"
	"homeacc/internal/services"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func TestCreatePaymentParsesInput(t *testing.T) {
	var got services.PaymentInput
	h := newTestHandler(testDeps{
		payments: stubPaymentService{
			recordFn: func(_ context.Context, _ string, in services.PaymentInput) (models.Payment, error) {
				got = in
				return models.Payment{
					ID:           "p1",
					OccurredAt:   in.DateTime,
					Direction:    in.Direction,
					Status:       in.Status,
					Amount:       in.AmountMinor,
					Currency:     "UAH",
					AccountName:  in.AccountName,
					CategoryName: strPtr(in.CategoryName),
				}, nil
			},
		},
	})

	rr := serve(t, h, http.MethodPost, "/payments/new", testToken(t, "c1", models.RoleUser),
		`{"dateTime":"01-03-2024 08:05","direction":false,"status":true,"amount":"250.5","accountName":"Wallet","paymentCategoryName":"Food"}`)
	expectStatus(t, rr, http.StatusCreated)

	if got.AmountMinor != 25050 || got.AccountName != "Wallet" || got.CategoryName != "Food" {
		t.Fatalf("unexpected input %+v", got)
	}
	if !got.DateTime.Equal(time.Date(2024, 3, 1, 8, 5, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", got.DateTime)
	}
	var body paymentDTO
	decodeBody(t, rr, &body)
	if body.Amount != "250.50" || body.DateTime != "01-03-2024 08:05" || body.PaymentCategoryName != "Food" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestCreatePaymentDefaultsDateToNow(t *testing.T) {
	var got services.PaymentInput
	h := newTestHandler(testDeps{
		payments: stubPaymentService{
			recordFn: func(_ context.Context, _ string, in services.PaymentInput) (models.Payment, error) {
				got = in
				return models.Payment{ID: "p1", OccurredAt: in.DateTime}, nil
			},
		},
	})
	rr := serve(t, h, http.MethodPost, "/payments/new", testToken(t, "c1", models.RoleUser), `{"amount":0,"accountName":"Wallet"}`)
	expectStatus(t, rr, http.StatusCreated)
	if !got.DateTime.Equal(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("expected handler clock, got %v", got.DateTime)
	}
}

func TestCreatePaymentRejectsBadInput(t *testing.T) {
	h := newTestHandler(testDeps{})
	token := testToken(t, "c1", models.RoleUser)
	bodies := []string{
		`{"amount":"1.234","accountName":"Wallet"}`,
		`{"amount":-3,"accountName":"Wallet"}`,
		`{"amount":5,"dateTime":"2024-03-01","accountName":"Wallet"}`,
	}
	for _, body := range bodies {
		rr := serve(t, h, http.MethodPost, "/payments/new", token, body)
		expectErrorBody(t, rr, http.StatusBadRequest)
	}
}

func TestExchangeResponse(t *testing.T) {
	var got services.MoveRequest
	h := newTestHandler(testDeps{
		payments: stubPaymentService{
			exchangeFn: func(_ context.Context, req services.MoveRequest) (services.MoveResult, error) {
				got = req
				at := req.DateTime
				return services.MoveResult{
					PairID: "pair-1",
					Rate:   decimal.RequireFromString("43.5"),
					Src:    models.Payment{ID: "p1", OccurredAt: at, Amount: 10000, Currency: "EUR", CategoryName: strPtr(models.CategoryExchange), PairID: strPtr("pair-1")},
					Dst:    models.Payment{ID: "p2", OccurredAt: at, Direction: true, Amount: 435000, Currency: "UAH", CategoryName: strPtr(models.CategoryExchange), PairID: strPtr("pair-1")},
				}, nil
			},
		},
	})

	rr := serve(t, h, http.MethodPost, "/payments/exchange", testToken(t, "c1", models.RoleUser), moveRequest{
		SrcAccountID: "eur",
		DstAccountID: "uah",
		Amount:       "100",
		DateTime:     "10-03-2024 12:00",
	})
	expectStatus(t, rr, http.StatusCreated)
	if got.CustomerID != "c1" || got.AmountMinor != 10000 || got.SrcAccountID != "eur" {
		t.Fatalf("unexpected request %+v", got)
	}
	var body moveResponse
	decodeBody(t, rr, &body)
	if body.PairID != "pair-1" || body.Rate != "43.5" || len(body.Legs) != 2 {
		t.Fatalf("unexpected body %+v", body)
	}
	if body.Legs[1].Amount != "4350.00" || !body.Legs[1].Direction || body.Legs[1].PairID != "pair-1" {
		t.Fatalf("unexpected destination leg %+v", body.Legs[1])
	}
}

func TestMoveErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		amount string
		err    error
		status int
	}{
		{"exchange same currency", "/payments/exchange", "10", services.ErrSameCurrency, http.StatusBadRequest},
		{"exchange no rates", "/payments/exchange", "10", services.ErrRatesUnavailable, http.StatusBadRequest},
		{"transfer mismatch", "/payments/transfer", "10", services.ErrCurrencyMismatch, http.StatusBadRequest},
		{"transfer foreign", "/payments/transfer", "10", services.ErrAccessDenied, http.StatusForbidden},
		{"transfer zero", "/payments/transfer", "0", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fail := func(context.Context, services.MoveRequest) (services.MoveResult, error) {
				if tt.err == nil {
					t.Fatal("service should not be called")
				}
				return services.MoveResult{}, tt.err
			}
			h := newTestHandler(testDeps{payments: stubPaymentService{exchangeFn: fail, transferFn: fail}})
			rr := serve(t, h, http.MethodPost, tt.path, testToken(t, "c1", models.RoleUser), `{"srcAccountId":"a","dstAccountId":"b","amount":`+tt.amount+`}`)
			expectErrorBody(t, rr, tt.status)
		})
	}
}

func TestStatisticsKeys(t *testing.T) {
	h := newTestHandler(testDeps{
		payments: stubPaymentService{
			statsFn: func(context.Context, string) ([]models.CurrencyStats, error) {
				return []models.CurrencyStats{
					{Currency: "UAH", Total: 100000, OnScreen: -2550, Daily: 0},
					{Currency: "EUR", Total: 5000, OnScreen: 5000, Daily: 1000},
				}, nil
			},
		},
	})
	rr := serve(t, h, http.MethodGet, "/payments/statistics", testToken(t, "c1", models.RoleUser), nil)
	expectStatus(t, rr, http.StatusOK)
	var body map[string]any
	decodeBody(t, rr, &body)
	want := map[string]string{
		"totalSumUAH":    "1000.00",
		"onScreenSumUAH": "-25.50",
		"dailySumUAH":    "0.00",
		"dailySumEUR":    "10.00",
	}
	for key, value := range want {
		if body[key] != value {
			t.Fatalf("%s: expected %s, got %v", key, value, body[key])
		}
	}
	if list, ok := body["currencies"].([]any); !ok || len(list) != 2 {
		t.Fatalf("expected currencies list, got %v", body["currencies"])
	}
}

func TestListPaymentsEmpty(t *testing.T) {
	h := newTestHandler(testDeps{
		payments: stubPaymentService{
			ledgerFn: func(context.Context, string) ([]models.Payment, error) { return nil, nil },
		},
	})
	rr := serve(t, h, http.MethodGet, "/payments", testToken(t, "c1", models.RoleUser), nil)
	expectStatus(t, rr, http.StatusOK)
	if got := rr.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestDeletePaymentNotFound(t *testing.T) {
	h := newTestHandler(testDeps{
		payments: stubPaymentService{
			deleteFn: func(context.Context, string, []string) (int64, error) { return 0, nil },
		},
	})
	rr := serve(t, h, http.MethodDelete, "/payments/delete/p9", testToken(t, "c1", models.RoleUser), nil)
	expectErrorBody(t, rr, http.StatusNotFound)
}
