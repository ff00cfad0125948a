package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"homeacc/internal/money"
	"homeacc/internal/services"
	"homeacc/internal/validator"
)

var errInvalidPayload = errors.New("invalid payload")

type errorResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message, Timestamp: time.Now().Format(time.RFC3339)})
}

func respondMessage(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, map[string]string{"message": message})
}

var badRequestErrors = []error{
	errInvalidPayload,
	errInvalidAmount,
	money.ErrInvalidAmount,
	money.ErrTooManyDecimals,
	validator.ErrInvalidEmail,
	validator.ErrInvalidLogin,
	validator.ErrInvalidPassword,
	validator.ErrInvalidName,
	validator.ErrInvalidCurrency,
	validator.ErrInvalidAccountType,
	validator.ErrInvalidDate,
	validator.ErrInvalidDateTime,
	validator.ErrInvalidPeriod,
	services.ErrInvalidAmount,
	services.ErrSameCurrency,
	services.ErrCurrencyMismatch,
	services.ErrSameAccount,
	services.ErrRatesUnavailable,
	services.ErrCategoryMissing,
	services.ErrPasswordMismatch,
	services.ErrCurrencyLocked,
	services.ErrReservedCategory,
}

// statusFor maps a service or validation error to its HTTP status.
func statusFor(err error) int {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateName):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)
		respondError(w, status, "internal error")
		return
	}
	respondError(w, status, err.Error())
}

func decodeJSON(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return errInvalidPayload
	}
	return nil
}
