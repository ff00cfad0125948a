package handlers

import (
	"net/http"

	"homeacc/internal/middleware"
	"homeacc/internal/services"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	customer, err := h.customers.Register(r.Context(), services.RegisterInput{
		Login:           req.Login,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCustomerDTO(customer))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	session, err := h.customers.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, jwtResponse{User: toCustomerDTO(session.Customer), Token: session.Token})
}

// Logout blacklists the presented token for the rest of its lifetime.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.customers.Logout(r.Context(), token.Raw, token.ExpiresAt); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondMessage(w, "logged out")
}

func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.Current(r.Context(), customerID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCustomerDTO(customer))
}
