package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"homeacc/internal/config"
	"homeacc/internal/db"
	"homeacc/internal/handlers"
	"homeacc/internal/rates"
	"homeacc/internal/services"
	"homeacc/internal/store"
	"homeacc/internal/websocket"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	customerStore := store.NewCustomerStore(database)
	accountStore := store.NewAccountStore(database)
	categoryStore := store.NewCategoryStore(database)
	paymentStore := store.NewPaymentStore(database)
	rateStore := store.NewRateStore(database)
	tokenStore := store.NewTokenStore(database)
	auditStore := store.NewAuditStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()

	rateService, err := services.NewRateService(txRunner, rateStore, rates.NewClient(cfg.RatesURL, nil), cfg.PivotCurrency, cfg.RatesCacheEntries)
	if err != nil {
		log.Fatalf("failed to build rate service: %v", err)
	}
	defer rateService.Close()

	blacklist := services.NewTokenBlacklist(tokenStore)
	categoryService := services.NewCategoryService(txRunner, categoryStore, customerStore, cfg.AdminLogin)
	customerService := services.NewCustomerService(txRunner, customerStore, categoryService, blacklist, auditStore, cfg.JWTSecret, cfg.TokenTTL, cfg.AdminLogin)
	accountService := services.NewAccountService(txRunner, accountStore)
	paymentService := services.NewPaymentService(txRunner, accountStore, categoryStore, paymentStore, customerStore, rateService, auditStore, hub, cfg.PivotCurrency)

	if _, err := customerService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to bootstrap admin: %v", err)
	}

	go rateService.Run(ctx, cfg.RatesSyncInterval)
	go blacklist.Run(ctx, cfg.BlacklistSweepEvery)

	handler := handlers.New(cfg, customerService, accountService, categoryService, paymentService, rateService, auditStore, blacklist, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("homeacc API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
