package services

import (
	"context"
	"strings"

	"homeacc/internal/db"
	"homeacc/internal/models"
	"homeacc/internal/store"
	"homeacc/internal/validator"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type AccountService struct {
	txRunner db.TxRunner
	accounts AccountStore
}

func NewAccountService(txRunner db.TxRunner, accounts AccountStore) *AccountService {
	return &AccountService{txRunner: txRunner, accounts: accounts}
}

type AccountInput struct {
	Name        string
	Description string
	Type        string
	Currency    string
}

func (in AccountInput) validate() error {
	if err := validator.ValidateName(in.Name); err != nil {
		return err
	}
	if err := validator.ValidateAccountType(in.Type); err != nil {
		return err
	}
	return validator.ValidateCurrency(in.Currency)
}

func (s *AccountService) List(ctx context.Context, customerID string) ([]models.Account, error) {
	accounts, err := s.accounts.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts, nil
}

// Get returns an owned account with its derived balance.
func (s *AccountService) Get(ctx context.Context, customerID, accountID string) (models.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if store.IsNotFound(err) {
			return models.Account{}, ErrAccountNotFound
		}
		return models.Account{}, err
	}
	if account.CustomerID != customerID {
		return models.Account{}, ErrAccessDenied
	}
	return account, nil
}

func (s *AccountService) Create(ctx context.Context, customerID string, in AccountInput) (models.Account, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.validate(); err != nil {
		return models.Account{}, err
	}
	account := models.Account{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Currency:    in.Currency,
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.accounts.Create(ctx, tx, account)
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return models.Account{}, ErrAccountNameTaken
		}
		return models.Account{}, err
	}
	return account, nil
}

// Update edits an owned account. Changing the currency is refused once any
// payment references the account, since payments carry a copy of it.
func (s *AccountService) Update(ctx context.Context, customerID, accountID string, in AccountInput) (models.Account, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.validate(); err != nil {
		return models.Account{}, err
	}
	var updated models.Account
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := s.accounts.GetForUpdate(ctx, tx, accountID)
		if err != nil {
			if store.IsNotFound(err) {
				return ErrAccountNotFound
			}
			return err
		}
		if current.CustomerID != customerID {
			return ErrAccessDenied
		}
		if current.Currency != in.Currency {
			used, err := s.accounts.HasPayments(ctx, tx, accountID)
			if err != nil {
				return err
			}
			if used {
				return ErrCurrencyLocked
			}
		}
		updated = current
		updated.Name = in.Name
		updated.Description = in.Description
		updated.Type = in.Type
		updated.Currency = in.Currency
		affected, err := s.accounts.Update(ctx, tx, updated)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrAccountNotFound
		}
		return nil
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return models.Account{}, ErrAccountNameTaken
		}
		return models.Account{}, err
	}
	return updated, nil
}

// Delete removes owned accounts among ids together with their payments.
func (s *AccountService) Delete(ctx context.Context, customerID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var deleted int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		deleted, err = s.accounts.Delete(ctx, tx, customerID, ids)
		return err
	})
	return deleted, err
}

// DeleteOne is Delete for a single id that must exist.
func (s *AccountService) DeleteOne(ctx context.Context, customerID, accountID string) error {
	deleted, err := s.Delete(ctx, customerID, []string{accountID})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrAccountNotFound
	}
	return nil
}
