package handlers

import (
	"context"
	"net/http"

	"homeacc/internal/models"
	"homeacc/internal/services"

	"github.com/go-chi/chi/v5"
)

// ListPayments returns the caller's filtered ledger.
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.FilteredLedger(r.Context(), customerID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toPaymentDTOs(payments))
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	in, err := h.paymentInput(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	payment, err := h.payments.Record(r.Context(), customerID(r), in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toPaymentDTO(payment))
}

func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	in, err := h.paymentInput(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	payment, err := h.payments.Update(r.Context(), customerID(r), chi.URLParam(r, "id"), in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toPaymentDTO(payment))
}

func (h *Handler) DeletePayments(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := decodeJSON(r, &ids); err != nil {
		respondServiceError(w, r, err)
		return
	}
	deleted, err := h.payments.Delete(r.Context(), customerID(r), ids)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.payments.Delete(r.Context(), customerID(r), []string{chi.URLParam(r, "id")})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if deleted == 0 {
		respondServiceError(w, r, services.ErrPaymentNotFound)
		return
	}
	respondMessage(w, "payment deleted")
}

func (h *Handler) Exchange(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.payments.RecordExchange)
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.payments.RecordTransfer)
}

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.payments.Statistics(r.Context(), customerID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, statisticsResponse(stats))
}

func (h *Handler) move(w http.ResponseWriter, r *http.Request, record func(ctx context.Context, req services.MoveRequest) (services.MoveResult, error)) {
	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	amount, err := parseAmountMinor(req.Amount, false)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	at, err := parseDateTime(req.DateTime, h.loc, h.now())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	result, err := record(r.Context(), services.MoveRequest{
		CustomerID:   customerID(r),
		SrcAccountID: req.SrcAccountID,
		DstAccountID: req.DstAccountID,
		AmountMinor:  amount,
		DateTime:     at,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, moveResponse{
		PairID: result.PairID,
		Rate:   result.Rate.String(),
		Legs:   toPaymentDTOs([]models.Payment{result.Src, result.Dst}),
	})
}

func (h *Handler) paymentInput(r *http.Request) (services.PaymentInput, error) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		return services.PaymentInput{}, err
	}
	amount, err := parseAmountMinor(req.Amount, true)
	if err != nil {
		return services.PaymentInput{}, err
	}
	at, err := parseDateTime(req.DateTime, h.loc, h.now())
	if err != nil {
		return services.PaymentInput{}, err
	}
	return services.PaymentInput{
		DateTime:     at,
		Direction:    req.Direction,
		Status:       req.Status,
		AmountMinor:  amount,
		Description:  req.Description,
		AccountName:  req.AccountName,
		CategoryName: req.PaymentCategoryName,
	}, nil
}
