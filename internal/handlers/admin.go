package handlers

import (
	"net/http"
	"strconv"

	"homeacc/internal/models"
	"homeacc/internal/validator"
	"homeacc/internal/websocket"
)

// ListRates returns the snapshots for ?date=dd-MM-yyyy, today by default.
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	date := models.StartOfDay(h.now().In(h.loc))
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := validator.ParseDate(raw, h.loc)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		date = parsed
	}
	snapshots, err := h.rates.RatesFor(r.Context(), date)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	out := make([]rateDTO, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, toRateDTO(s))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) SyncRates(w http.ResponseWriter, r *http.Request) {
	stored, err := h.rates.SyncToday(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"stored": stored})
}

func (h *Handler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50)
	offset := parseQueryInt(r, "offset", 0)
	logs, err := h.audit.List(r.Context(), limit, offset)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	respondJSON(w, http.StatusOK, logs)
}

func (h *Handler) WSBalances(w http.ResponseWriter, r *http.Request) {
	websocket.ServeWS(w, r, h.upgrader, h.hub, customerID(r))
}

func parseQueryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	if key == "limit" && value > 200 {
		return 200
	}
	return value
}
