package handlers

import (
	"net/http"
	"strings"
	"time"

	"homeacc/internal/config"
	"homeacc/internal/middleware"
	"homeacc/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	gorilla "github.com/gorilla/websocket"
)

type Handler struct {
	cfg        config.Config
	customers  CustomerService
	accounts   AccountService
	categories CategoryService
	payments   PaymentService
	rates      RateService
	audit      AuditStore
	blacklist  TokenBlacklist
	hub        *websocket.Hub
	upgrader   *gorilla.Upgrader
	loc        *time.Location
	now        func() time.Time
}

func New(cfg config.Config, customers CustomerService, accounts AccountService, categories CategoryService, payments PaymentService, rates RateService, audit AuditStore, blacklist TokenBlacklist, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:        cfg,
		customers:  customers,
		accounts:   accounts,
		categories: categories,
		payments:   payments,
		rates:      rates,
		audit:      audit,
		blacklist:  blacklist,
		hub:        hub,
		upgrader:   websocket.NewUpgrader(allowedOrigins(cfg.AllowedOrigins)),
		loc:        time.Local,
		now:        time.Now,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(h.cfg.AllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Auth(h.cfg.JWTSecret, h.blacklist)
	requireAdmin := middleware.RequireAdmin(h.customers)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(authenticate).Get("/logout", h.Logout)
		r.With(authenticate).Get("/current", h.Current)
	})
	router.With(authenticate).Get("/ws/balances", h.WSBalances)

	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/accounts", h.ListAccounts)
		r.Post("/accounts", h.CreateAccount)
		r.Delete("/accounts", h.DeleteAccounts)
		r.Get("/accounts/types", h.AccountTypes)
		r.Get("/accounts/currencies", h.Currencies)
		r.Put("/accounts/{id}", h.UpdateAccount)
		r.Delete("/accounts/{id}", h.DeleteAccount)
		r.Get("/accounts/{id}/balance", h.GetBalance)

		r.Get("/categories", h.ListCategories)
		r.Post("/categories", h.CreateCategory)
		r.Delete("/categories", h.DeleteCategories)
		r.Get("/categories/init", h.ReseedCategories)
		r.With(requireAdmin).Get("/categories/init/admin", h.InitTemplateCategories)
		r.Put("/categories/{id}", h.UpdateCategory)

		r.Get("/payments", h.ListPayments)
		r.Post("/payments/new", h.CreatePayment)
		r.Put("/payments/update/{id}", h.UpdatePayment)
		r.Post("/payments/delete", h.DeletePayments)
		r.Delete("/payments/delete/{id}", h.DeletePayment)
		r.Post("/payments/exchange", h.Exchange)
		r.Post("/payments/transfer", h.Transfer)
		r.Get("/payments/statistics", h.Statistics)

		r.Get("/period", h.GetPeriod)
		r.Post("/period", h.SetPeriod)
		r.Get("/period/today", h.SetPeriodToday)
		r.Get("/period/month", h.SetPeriodMonth)
		r.Get("/filters", h.GetFilters)
		r.Post("/filters", h.SetFilters)

		r.Get("/rates", h.ListRates)
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate, requireAdmin)
		r.Get("/customers", h.ListCustomers)
		r.Put("/customers/{id}", h.UpdateCustomer)
		r.Delete("/customers", h.DeleteCustomers)
		r.Post("/admin/rates/sync", h.SyncRates)
		r.Get("/admin/audit", h.ListAuditLogs)
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}

// allowedOrigins splits the comma separated ALLOWED_ORIGINS value.
func allowedOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func customerID(r *http.Request) string {
	id, _ := middleware.UserIDFromContext(r.Context())
	return id
}
