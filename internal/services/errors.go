package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateName    = errors.New("already exists")
	ErrSameCurrency     = errors.New("accounts share a currency, use a transfer instead")
	ErrCurrencyMismatch = errors.New("accounts have different currencies, use an exchange instead")
	ErrRatesUnavailable = errors.New("exchange rates are not available for the requested date")
	ErrCategoryMissing  = errors.New("reserved payment category is missing")
	ErrUnauthorized     = errors.New("wrong e-mail or password")
	ErrPasswordMismatch = errors.New("passwords do not match")

	ErrInvalidAmount    = errors.New("invalid amount")
	ErrSameAccount      = errors.New("cannot transfer to the same account")
	ErrAccessDenied     = errors.New("resource belongs to another customer")
	ErrCurrencyLocked   = errors.New("account currency cannot change once payments exist")
	ErrReservedCategory = errors.New("reserved category cannot be renamed or deleted")
)

var (
	ErrAccountNotFound  = fmt.Errorf("account %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("payment category %w", ErrNotFound)
	ErrPaymentNotFound  = fmt.Errorf("payment %w", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)

	ErrAccountNameTaken  = fmt.Errorf("account with this name %w", ErrDuplicateName)
	ErrCategoryNameTaken = fmt.Errorf("payment category with this name %w", ErrDuplicateName)
	ErrEmailTaken        = fmt.Errorf("customer with specified e-mail %w", ErrDuplicateName)
	ErrLoginTaken        = fmt.Errorf("customer with specified login %w", ErrDuplicateName)
)
