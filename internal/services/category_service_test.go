package services

import (
	"context"
	"errors"
	"testing"

	"homeacc/internal/models"
	"homeacc/internal/store"
)

func TestCategoryUpdateReservedRename(t *testing.T) {
	service := NewCategoryService(fakeTxRunner{}, stubCategoryStore{
		getByIDFn: func(context.Context, string) (models.PaymentCategory, error) {
			return models.PaymentCategory{ID: "x", CustomerID: "c1", Name: models.CategoryExchange}, nil
		},
		updateFn: func(context.Context, store.Execer, models.PaymentCategory) (int64, error) {
			t.Fatal("unexpected update")
			return 0, nil
		},
	}, stubCustomerStore{}, "admin")

	_, err := service.Update(context.Background(), "c1", "x", "MONEY", "")
	if !errors.Is(err, ErrReservedCategory) {
		t.Fatalf("expected ErrReservedCategory, got %v", err)
	}
}

func TestCategoryUpdateReservedDescription(t *testing.T) {
	service := NewCategoryService(fakeTxRunner{}, stubCategoryStore{
		getByIDFn: func(context.Context, string) (models.PaymentCategory, error) {
			return models.PaymentCategory{ID: "x", CustomerID: "c1", Name: models.CategoryTransfer}, nil
		},
	}, stubCustomerStore{}, "admin")

	updated, err := service.Update(context.Background(), "c1", "x", models.CategoryTransfer, "between my accounts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Description != "between my accounts" {
		t.Fatalf("unexpected description %q", updated.Description)
	}
}

func TestCategoryDeleteProtectsReserved(t *testing.T) {
	var protected []string
	service := NewCategoryService(fakeTxRunner{}, stubCategoryStore{
		deleteFn: func(_ context.Context, _ store.Execer, _ string, ids, names []string) (int64, error) {
			protected = names
			return int64(len(ids)), nil
		},
	}, stubCustomerStore{}, "admin")

	if _, err := service.Delete(context.Background(), "c1", []string{"a", "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(protected) != 2 || protected[0] != models.CategoryExchange || protected[1] != models.CategoryTransfer {
		t.Fatalf("unexpected protected names %v", protected)
	}
}

func TestCategoryInitTemplateCatalog(t *testing.T) {
	names := map[string]bool{}
	service := NewCategoryService(fakeTxRunner{}, stubCategoryStore{
		createIfMissingFn: func(_ context.Context, _ store.Execer, c models.PaymentCategory) (int64, error) {
			if c.CustomerID != "tmpl" {
				t.Fatalf("unexpected owner %s", c.CustomerID)
			}
			if names[c.Name] {
				return 0, nil
			}
			names[c.Name] = true
			return 1, nil
		},
	}, stubCustomerStore{getByLoginFn: func(_ context.Context, login string) (models.Customer, error) {
		if login != "admin" {
			t.Fatalf("unexpected login %s", login)
		}
		return models.Customer{ID: "tmpl"}, nil
	}}, "admin")

	created, err := service.InitTemplateCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != int64(len(DefaultCategories)) {
		t.Fatalf("expected %d categories, got %d", len(DefaultCategories), created)
	}
	if !names[models.CategoryExchange] || !names[models.CategoryTransfer] {
		t.Fatal("expected reserved categories in template catalog")
	}
	again, err := service.InitTemplateCatalog(context.Background())
	if err != nil || again != 0 {
		t.Fatalf("expected idempotent init, got %d, %v", again, err)
	}
}

func TestCategoryInitTemplateCatalogWithoutTemplate(t *testing.T) {
	service := NewCategoryService(fakeTxRunner{}, stubCategoryStore{}, stubCustomerStore{}, "admin")
	if _, err := service.InitTemplateCatalog(context.Background()); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCategoryReseedUsesTemplateLogin(t *testing.T) {
	service := NewCategoryService(fakeTxRunner{}, stubCategoryStore{
		seedFn: func(_ context.Context, _ store.Execer, customerID, templateLogin string) (int64, error) {
			if customerID != "c1" || templateLogin != "admin" {
				t.Fatalf("unexpected seed args %s %s", customerID, templateLogin)
			}
			return 3, nil
		},
	}, stubCustomerStore{}, "admin")
	n, err := service.Reseed(context.Background(), "c1")
	if err != nil || n != 3 {
		t.Fatalf("expected 3 seeded, got %d, %v", n, err)
	}
}
