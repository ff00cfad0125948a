package handlers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"homeacc/internal/money"
	"homeacc/internal/validator"
)

var errInvalidAmount = errors.New("invalid amount")

// parseAmountMinor accepts a JSON number or numeric string with at most two
// fraction digits. Zero passes only when allowZero is set.
func parseAmountMinor(raw json.Number, allowZero bool) (int64, error) {
	amount, err := money.ParseMinor(raw.String())
	if err != nil {
		return 0, err
	}
	if amount < 0 || (amount == 0 && !allowZero) {
		return 0, errInvalidAmount
	}
	return amount, nil
}

// parseDateTime reads "dd-MM-yyyy HH:mm" in loc; an empty value means now.
func parseDateTime(raw string, loc *time.Location, now time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return now.In(loc).Truncate(time.Minute), nil
	}
	return validator.ParseDateTime(raw, loc)
}
