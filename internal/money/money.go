package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrTooManyDecimals = errors.New("amount has too many decimal places")
)

// maxWhole is the largest whole part whose hundredths still fit in int64.
const maxWhole = (math.MaxInt64 - 99) / 100

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// ParseMinor turns a decimal string with at most two fraction digits into
// hundredths: "12.5" -> 1250.
func ParseMinor(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, ErrInvalidAmount
	}
	sign := int64(1)
	switch trimmed[0] {
	case '-':
		sign = -1
		trimmed = trimmed[1:]
	case '+':
		trimmed = trimmed[1:]
	}
	parts := strings.SplitN(trimmed, ".", 2)
	wholePart := parts[0]
	if wholePart == "" {
		wholePart = "0"
	}
	if !isDigits(wholePart) {
		return 0, ErrInvalidAmount
	}
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if len(fracPart) > 2 {
		return 0, ErrTooManyDecimals
	}
	if fracPart != "" && !isDigits(fracPart) {
		return 0, ErrInvalidAmount
	}
	whole, err := strconv.ParseInt(wholePart, 10, 64)
	if err != nil || whole > maxWhole {
		return 0, ErrInvalidAmount
	}
	frac := int64(0)
	if len(fracPart) == 1 {
		frac = int64(fracPart[0]-'0') * 10
	} else if len(fracPart) == 2 {
		value, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		frac = value
	}
	minor := whole*100 + frac
	return sign * minor, nil
}

func FormatMinor(value int64) string {
	negative := value < 0
	if negative {
		value = -value
	}
	whole := value / 100
	frac := value % 100
	formatted := fmt.Sprintf("%d.%02d", whole, frac)
	if negative {
		return "-" + formatted
	}
	return formatted
}

// Signed returns the amount with the sign implied by the payment direction:
// income adds, expense subtracts.
func Signed(income bool, amountMinor int64) int64 {
	if income {
		return amountMinor
	}
	return -amountMinor
}

// ConvertMinor multiplies an amount in minor units by rate, rounding half to
// even at the minor unit. Results outside int64 are rejected.
func ConvertMinor(amountMinor int64, rate decimal.Decimal) (int64, error) {
	converted := decimal.NewFromInt(amountMinor).Mul(rate).RoundBank(0)
	if converted.GreaterThan(maxMinor) || converted.LessThan(minMinor) {
		return 0, ErrInvalidAmount
	}
	return converted.IntPart(), nil
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
