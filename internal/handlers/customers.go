package handlers

import (
	"net/http"

	"homeacc/internal/models"
	"homeacc/internal/services"
	"homeacc/internal/validator"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.customers.Period(r.Context(), customerID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toPeriodDTO(period))
}

func (h *Handler) SetPeriod(w http.ResponseWriter, r *http.Request) {
	var req periodDTO
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	period, err := validator.ParsePeriod(req.StartDate, req.EndDate, h.loc)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := h.customers.SetPeriod(r.Context(), customerID(r), period); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toPeriodDTO(period))
}

func (h *Handler) SetPeriodToday(w http.ResponseWriter, r *http.Request) {
	period, err := h.customers.SetPeriodToday(r.Context(), customerID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toPeriodDTO(period))
}

func (h *Handler) SetPeriodMonth(w http.ResponseWriter, r *http.Request) {
	period, err := h.customers.SetPeriodMonth(r.Context(), customerID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toPeriodDTO(period))
}

func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := h.customers.Filters(r.Context(), customerID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, filters)
}

// SetFilters replaces all seven flags; omitted flags become false.
func (h *Handler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var filters models.Filters
	if err := decodeJSON(r, &filters); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := h.customers.SetFilters(r.Context(), customerID(r), filters); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, filters)
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	out := make([]customerDTO, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerDTO(c))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	customer, err := h.customers.UpdateProfile(r.Context(), chi.URLParam(r, "id"), services.ProfileInput{
		Login:     req.Login,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCustomerDTO(customer))
}

func (h *Handler) DeleteCustomers(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := decodeJSON(r, &ids); err != nil {
		respondServiceError(w, r, err)
		return
	}
	deleted, err := h.customers.Delete(r.Context(), customerID(r), ids)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
