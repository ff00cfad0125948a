package services

import (
	"context"
	"errors"
	"testing"

	"homeacc/internal/models"
	"homeacc/internal/store"
	"homeacc/internal/validator"

	"github.com/lib/pq"
)

func TestAccountCreateValidates(t *testing.T) {
	service := NewAccountService(fakeTxRunner{}, stubAccountStore{
		createFn: func(context.Context, store.Execer, models.Account) error {
			t.Fatal("unexpected create")
			return nil
		},
	})
	_, err := service.Create(context.Background(), "c1", AccountInput{Name: "Card", Type: "CARD", Currency: "GBP"})
	if !errors.Is(err, validator.ErrInvalidCurrency) {
		t.Fatalf("expected ErrInvalidCurrency, got %v", err)
	}
}

func TestAccountCreateDuplicateName(t *testing.T) {
	service := NewAccountService(fakeTxRunner{}, stubAccountStore{
		createFn: func(context.Context, store.Execer, models.Account) error {
			return &pq.Error{Code: "23505"}
		},
	})
	_, err := service.Create(context.Background(), "c1", AccountInput{Name: " Card ", Type: "CARD", Currency: "UAH"})
	if !errors.Is(err, ErrAccountNameTaken) {
		t.Fatalf("expected ErrAccountNameTaken, got %v", err)
	}
}

func TestAccountGetForeign(t *testing.T) {
	service := NewAccountService(fakeTxRunner{}, stubAccountStore{
		getByIDFn: func(context.Context, string) (models.Account, error) {
			return models.Account{ID: "a1", CustomerID: "c2"}, nil
		},
	})
	if _, err := service.Get(context.Background(), "c1", "a1"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if _, err := NewAccountService(fakeTxRunner{}, stubAccountStore{}).Get(context.Background(), "c1", "a1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAccountUpdateCurrencyLocked(t *testing.T) {
	service := NewAccountService(fakeTxRunner{}, stubAccountStore{
		getForUpdateFn: func(context.Context, store.Getter, string) (models.Account, error) {
			return models.Account{ID: "a1", CustomerID: "c1", Name: "Card", Type: "CARD", Currency: "UAH"}, nil
		},
		hasPaymentsFn: func(context.Context, store.Getter, string) (bool, error) {
			return true, nil
		},
		updateFn: func(context.Context, store.Execer, models.Account) (int64, error) {
			t.Fatal("unexpected update")
			return 0, nil
		},
	})
	_, err := service.Update(context.Background(), "c1", "a1", AccountInput{Name: "Card", Type: "CARD", Currency: "USD"})
	if !errors.Is(err, ErrCurrencyLocked) {
		t.Fatalf("expected ErrCurrencyLocked, got %v", err)
	}
}

func TestAccountUpdateKeepsCurrency(t *testing.T) {
	var saved models.Account
	service := NewAccountService(fakeTxRunner{}, stubAccountStore{
		getForUpdateFn: func(context.Context, store.Getter, string) (models.Account, error) {
			return models.Account{ID: "a1", CustomerID: "c1", Name: "Card", Type: "CARD", Currency: "UAH"}, nil
		},
		hasPaymentsFn: func(context.Context, store.Getter, string) (bool, error) {
			t.Fatal("currency unchanged, no payment check expected")
			return false, nil
		},
		updateFn: func(_ context.Context, _ store.Execer, account models.Account) (int64, error) {
			saved = account
			return 1, nil
		},
	})
	updated, err := service.Update(context.Background(), "c1", "a1", AccountInput{Name: "Salary card", Description: "main", Type: "BANK", Currency: "UAH"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Name != "Salary card" || updated.Type != "BANK" {
		t.Fatalf("unexpected update: %+v", saved)
	}
}

func TestAccountDeleteOneMissing(t *testing.T) {
	service := NewAccountService(fakeTxRunner{}, stubAccountStore{
		deleteFn: func(_ context.Context, _ store.Execer, customerID string, ids []string) (int64, error) {
			if customerID != "c1" || len(ids) != 1 {
				t.Fatalf("unexpected delete args %s %v", customerID, ids)
			}
			return 0, nil
		},
	})
	if err := service.DeleteOne(context.Background(), "c1", "a1"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountListNeverNil(t *testing.T) {
	accounts, err := NewAccountService(fakeTxRunner{}, stubAccountStore{}).List(context.Background(), "c1")
	if err != nil || accounts == nil {
		t.Fatalf("expected empty list, got %v, %v", accounts, err)
	}
}
