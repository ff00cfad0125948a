package validator

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"homeacc/internal/models"
)

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidLogin       = errors.New("invalid login")
	ErrInvalidPassword    = errors.New("password must be at least 8 characters")
	ErrInvalidName        = errors.New("name must be 1-64 characters")
	ErrInvalidCurrency    = errors.New("unknown currency")
	ErrInvalidAccountType = errors.New("unknown account type")
	ErrInvalidDate        = errors.New("date must be dd-MM-yyyy")
	ErrInvalidDateTime    = errors.New("date and time must be dd-MM-yyyy HH:mm")
	ErrInvalidPeriod      = errors.New("period start must not be after its end")
)

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	loginRegex = regexp.MustCompile(`^[a-zA-Z0-9_.@-]{3,64}$`)
)

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidateLogin(login string) error {
	if !loginRegex.MatchString(login) {
		return ErrInvalidLogin
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidPassword
	}
	return nil
}

// ValidateName checks account and category names.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len(trimmed) > 64 {
		return ErrInvalidName
	}
	return nil
}

func ValidateCurrency(currency string) error {
	for _, c := range models.Currencies {
		if c == currency {
			return nil
		}
	}
	return ErrInvalidCurrency
}

func ValidateAccountType(accountType string) error {
	for _, t := range models.AccountTypes {
		if t == accountType {
			return nil
		}
	}
	return ErrInvalidAccountType
}

func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation(models.DateLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

func ParseDateTime(raw string, loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation(models.DateTimeLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateTime
	}
	return parsed, nil
}

// ParsePeriod parses both ends and rejects a start after the end.
func ParsePeriod(start, end string, loc *time.Location) (models.Period, error) {
	from, err := ParseDate(start, loc)
	if err != nil {
		return models.Period{}, err
	}
	to, err := ParseDate(end, loc)
	if err != nil {
		return models.Period{}, err
	}
	if from.After(to) {
		return models.Period{}, ErrInvalidPeriod
	}
	return models.Period{Start: from, End: to}, nil
}
