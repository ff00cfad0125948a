package handlers

import (
	"net/http"

	"homeacc/internal/models"
	"homeacc/internal/money"
	"homeacc/internal/services"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context(), customerID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	out := make([]accountDTO, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, toAccountDTO(account))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	account, err := h.accounts.Create(r.Context(), customerID(r), req.input())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toAccountDTO(account))
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	account, err := h.accounts.Update(r.Context(), customerID(r), chi.URLParam(r, "id"), req.input())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toAccountDTO(account))
}

func (h *Handler) DeleteAccounts(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := decodeJSON(r, &ids); err != nil {
		respondServiceError(w, r, err)
		return
	}
	deleted, err := h.accounts.Delete(r.Context(), customerID(r), ids)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.DeleteOne(r.Context(), customerID(r), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondMessage(w, "account deleted")
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.Get(r.Context(), customerID(r), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"accountId":    account.ID,
		"balance":      money.FormatMinor(account.Balance),
		"currencyName": account.Currency,
	})
}

func (h *Handler) AccountTypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.AccountTypes)
}

func (h *Handler) Currencies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.Currencies)
}

func (req accountRequest) input() services.AccountInput {
	return services.AccountInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Currency:    req.CurrencyName,
	}
}
