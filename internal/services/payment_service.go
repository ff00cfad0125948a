package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"homeacc/internal/db"
	"homeacc/internal/models"
	"homeacc/internal/money"
	"homeacc/internal/store"
	"homeacc/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type PaymentService struct {
	txRunner   db.TxRunner
	accounts   AccountStore
	categories CategoryStore
	payments   PaymentStore
	customers  CustomerReader
	rates      RateBook
	audit      AuditStore
	hub        BalanceHub
	pivot      string
	now        func() time.Time
}

func NewPaymentService(txRunner db.TxRunner, accounts AccountStore, categories CategoryStore, payments PaymentStore, customers CustomerReader, rates RateBook, audit AuditStore, hub BalanceHub, pivot string) *PaymentService {
	return &PaymentService{
		txRunner:   txRunner,
		accounts:   accounts,
		categories: categories,
		payments:   payments,
		customers:  customers,
		rates:      rates,
		audit:      audit,
		hub:        hub,
		pivot:      pivot,
		now:        time.Now,
	}
}

// PaymentInput describes a single payment. Account and category are looked up
// by name within the customer's own catalog; an empty category leaves it unset.
type PaymentInput struct {
	DateTime     time.Time
	Direction    bool
	Status       bool
	AmountMinor  int64
	Description  string
	AccountName  string
	CategoryName string
}

// MoveRequest is the input of an exchange or a transfer.
type MoveRequest struct {
	CustomerID   string
	SrcAccountID string
	DstAccountID string
	AmountMinor  int64
	DateTime     time.Time
}

// MoveResult reports both legs of an exchange or transfer.
type MoveResult struct {
	PairID string
	Rate   decimal.Decimal
	Src    models.Payment
	Dst    models.Payment
}

func (s *PaymentService) Record(ctx context.Context, customerID string, in PaymentInput) (models.Payment, error) {
	if in.AmountMinor < 0 {
		return models.Payment{}, ErrInvalidAmount
	}
	var payment models.Payment
	var balance int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		account, categoryID, err := s.resolveRefs(ctx, tx, customerID, in)
		if err != nil {
			return err
		}
		payment = models.Payment{
			ID:           uuid.NewString(),
			CustomerID:   customerID,
			AccountID:    account.ID,
			AccountName:  account.Name,
			CategoryID:   categoryID,
			CategoryName: optionalName(in.CategoryName),
			OccurredAt:   in.DateTime,
			Direction:    in.Direction,
			Status:       in.Status,
			Amount:       in.AmountMinor,
			Currency:     account.Currency,
			Description:  in.Description,
		}
		if err := s.payments.InsertPayments(ctx, tx, []models.Payment{payment}); err != nil {
			return err
		}
		balance = account.Balance + money.Signed(payment.Direction, payment.Amount)
		return nil
	})
	if err != nil {
		return models.Payment{}, err
	}
	s.broadcast(customerID, payment, balance)
	return payment, nil
}

// Update rewrites a payment. The currency is re-copied from the account the
// payment ends up linked to.
func (s *PaymentService) Update(ctx context.Context, customerID, paymentID string, in PaymentInput) (models.Payment, error) {
	if in.AmountMinor < 0 {
		return models.Payment{}, ErrInvalidAmount
	}
	existing, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if store.IsNotFound(err) {
			return models.Payment{}, ErrPaymentNotFound
		}
		return models.Payment{}, err
	}
	if existing.CustomerID != customerID {
		return models.Payment{}, ErrAccessDenied
	}
	var updated models.Payment
	var balance, oldBalance int64
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		account, categoryID, err := s.resolveRefs(ctx, tx, customerID, in)
		if err != nil {
			return err
		}
		updated = existing
		updated.AccountID = account.ID
		updated.AccountName = account.Name
		updated.CategoryID = categoryID
		updated.CategoryName = optionalName(in.CategoryName)
		updated.OccurredAt = in.DateTime
		updated.Direction = in.Direction
		updated.Status = in.Status
		updated.Amount = in.AmountMinor
		updated.Currency = account.Currency
		updated.Description = in.Description
		affected, err := s.payments.Update(ctx, tx, updated)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrPaymentNotFound
		}
		balance, err = s.accounts.Balance(ctx, tx, account.ID)
		if err != nil || existing.AccountID == account.ID {
			return err
		}
		oldBalance, err = s.accounts.Balance(ctx, tx, existing.AccountID)
		return err
	})
	if err != nil {
		return models.Payment{}, err
	}
	if existing.AccountID != updated.AccountID {
		s.broadcast(customerID, existing, oldBalance)
	}
	s.broadcast(customerID, updated, balance)
	return updated, nil
}

// Delete removes the customer's payments among ids and reports how many went.
func (s *PaymentService) Delete(ctx context.Context, customerID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var deleted int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		deleted, err = s.payments.Delete(ctx, tx, customerID, ids)
		return err
	})
	return deleted, err
}

// RecordExchange moves money between accounts of different currencies using
// the rates in force on the request's calendar date.
func (s *PaymentService) RecordExchange(ctx context.Context, req MoveRequest) (MoveResult, error) {
	if req.AmountMinor <= 0 {
		return MoveResult{}, ErrInvalidAmount
	}
	if req.SrcAccountID == req.DstAccountID {
		return MoveResult{}, ErrSameCurrency
	}
	var result MoveResult
	var srcBalance, dstBalance int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		src, dst, err := s.lockOwnedPair(ctx, tx, req)
		if err != nil {
			return err
		}
		if src.Currency == dst.Currency {
			return ErrSameCurrency
		}
		snapshots, err := s.rates.RatesFor(ctx, models.StartOfDay(req.DateTime))
		if err != nil {
			return err
		}
		rate, err := ExchangeRate(snapshots, src.Currency, dst.Currency, s.pivot)
		if err != nil {
			return err
		}
		category, err := s.reservedCategory(ctx, tx, req.CustomerID, models.CategoryExchange)
		if err != nil {
			return err
		}
		dstAmount, err := money.ConvertMinor(req.AmountMinor, rate)
		if err != nil {
			return ErrInvalidAmount
		}
		srcAmountText := money.FormatMinor(req.AmountMinor)
		dstAmountText := money.FormatMinor(dstAmount)
		result = s.legs(req, category, src, dst, dstAmount,
			fmt.Sprintf("Exchange %s %s --> %s %s (account: '%s')", srcAmountText, src.Currency, dstAmountText, dst.Currency, dst.Name),
			fmt.Sprintf("Exchange %s %s <-- %s %s (account: '%s')", dstAmountText, dst.Currency, srcAmountText, src.Currency, src.Name),
		)
		result.Rate = rate
		if err := s.payments.InsertPayments(ctx, tx, []models.Payment{result.Src, result.Dst}); err != nil {
			return err
		}
		srcBalance = src.Balance - req.AmountMinor
		dstBalance = dst.Balance + dstAmount
		data, _ := json.Marshal(map[string]string{
			"src_account_id": src.ID,
			"dst_account_id": dst.ID,
			"src_amount":     srcAmountText,
			"dst_amount":     dstAmountText,
			"rate":           rate.StringFixedBank(6),
		})
		return s.audit.Log(ctx, tx, req.CustomerID, "exchange", "payment_pair", result.PairID, string(data))
	})
	if err != nil {
		return MoveResult{}, err
	}
	s.broadcast(req.CustomerID, result.Src, srcBalance)
	s.broadcast(req.CustomerID, result.Dst, dstBalance)
	return result, nil
}

// RecordTransfer moves money between two accounts of the same currency.
func (s *PaymentService) RecordTransfer(ctx context.Context, req MoveRequest) (MoveResult, error) {
	if req.AmountMinor <= 0 {
		return MoveResult{}, ErrInvalidAmount
	}
	if req.SrcAccountID == req.DstAccountID {
		return MoveResult{}, ErrSameAccount
	}
	var result MoveResult
	var srcBalance, dstBalance int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		src, dst, err := s.lockOwnedPair(ctx, tx, req)
		if err != nil {
			return err
		}
		if src.Currency != dst.Currency {
			return ErrCurrencyMismatch
		}
		category, err := s.reservedCategory(ctx, tx, req.CustomerID, models.CategoryTransfer)
		if err != nil {
			return err
		}
		result = s.legs(req, category, src, dst, req.AmountMinor,
			fmt.Sprintf("Send to account '%s'", dst.Name),
			fmt.Sprintf("Receive from account '%s'", src.Name),
		)
		result.Rate = decimal.NewFromInt(1)
		if err := s.payments.InsertPayments(ctx, tx, []models.Payment{result.Src, result.Dst}); err != nil {
			return err
		}
		srcBalance = src.Balance - req.AmountMinor
		dstBalance = dst.Balance + req.AmountMinor
		data, _ := json.Marshal(map[string]string{
			"src_account_id": src.ID,
			"dst_account_id": dst.ID,
			"amount":         money.FormatMinor(req.AmountMinor),
		})
		return s.audit.Log(ctx, tx, req.CustomerID, "transfer", "payment_pair", result.PairID, string(data))
	})
	if err != nil {
		return MoveResult{}, err
	}
	s.broadcast(req.CustomerID, result.Src, srcBalance)
	s.broadcast(req.CustomerID, result.Dst, dstBalance)
	return result, nil
}

// FilteredLedger lists the customer's payments admitted by their display
// filters and reporting period, oldest first.
func (s *PaymentService) FilteredLedger(ctx context.Context, customerID string) ([]models.Payment, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	query := store.LedgerQuery{
		CustomerID: customerID,
		Currencies: customer.Filters.CurrencySet(),
		Directions: customer.Filters.DirectionSet(),
		Statuses:   customer.Filters.StatusSet(),
	}
	if len(query.Currencies) == 0 || len(query.Directions) == 0 || len(query.Statuses) == 0 {
		return []models.Payment{}, nil
	}
	query.From, query.To = PeriodOf(customer, s.now()).Bounds()
	payments, err := s.payments.ListFiltered(ctx, query)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}

// Statistics returns, per currency, the signed sum of all payments, of the
// filtered ledger, and of payments dated today.
func (s *PaymentService) Statistics(ctx context.Context, customerID string) ([]models.CurrencyStats, error) {
	onScreen, err := s.FilteredLedger(ctx, customerID)
	if err != nil {
		return nil, err
	}
	totals, err := s.payments.SumByCurrency(ctx, customerID, nil, nil)
	if err != nil {
		return nil, err
	}
	dayStart := models.StartOfDay(s.now())
	dayEnd := dayStart.AddDate(0, 0, 1)
	daily, err := s.payments.SumByCurrency(ctx, customerID, &dayStart, &dayEnd)
	if err != nil {
		return nil, err
	}
	stats := make([]models.CurrencyStats, 0, len(models.Currencies))
	index := make(map[string]int, len(models.Currencies))
	for i, currency := range models.Currencies {
		stats = append(stats, models.CurrencyStats{Currency: currency})
		index[currency] = i
	}
	for _, row := range totals {
		if i, ok := index[row.Currency]; ok {
			stats[i].Total = row.Sum
		}
	}
	for _, row := range daily {
		if i, ok := index[row.Currency]; ok {
			stats[i].Daily = row.Sum
		}
	}
	for _, p := range onScreen {
		if i, ok := index[p.Currency]; ok {
			stats[i].OnScreen += money.Signed(p.Direction, p.Amount)
		}
	}
	return stats, nil
}

// ExchangeRate resolves how many dst units one src unit buys. Snapshots quote
// currencies against pivot.
func ExchangeRate(snapshots []models.RateSnapshot, src, dst, pivot string) (decimal.Decimal, error) {
	quotes := make(map[string]models.RateSnapshot, len(snapshots))
	for _, snap := range snapshots {
		if snap.BaseCurrency == pivot {
			quotes[snap.Currency] = snap
		}
	}
	buy := func(currency string) (decimal.Decimal, error) {
		snap, ok := quotes[currency]
		if !ok {
			return decimal.Zero, ErrRatesUnavailable
		}
		return parsePositive(snap.BuyRate)
	}
	sell := func(currency string) (decimal.Decimal, error) {
		snap, ok := quotes[currency]
		if !ok {
			return decimal.Zero, ErrRatesUnavailable
		}
		return parsePositive(snap.SellRate)
	}
	switch {
	case src == pivot:
		sellDst, err := sell(dst)
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromInt(1).Div(sellDst), nil
	case dst == pivot:
		return buy(src)
	default:
		// TODO: cross rates divide src buy by dst sell; confirm against bank cross-rate conventions.
		buySrc, err := buy(src)
		if err != nil {
			return decimal.Zero, err
		}
		sellDst, err := sell(dst)
		if err != nil {
			return decimal.Zero, err
		}
		return buySrc.Div(sellDst), nil
	}
}

// PeriodOf returns the customer's reporting period, defaulting each unset end to today.
func PeriodOf(customer models.Customer, now time.Time) models.Period {
	today := models.StartOfDay(now)
	period := models.Period{Start: today, End: today}
	if customer.StartDate != nil {
		period.Start = inLocation(*customer.StartDate, now.Location())
	}
	if customer.EndDate != nil {
		period.End = inLocation(*customer.EndDate, now.Location())
	}
	return period
}

func (s *PaymentService) resolveRefs(ctx context.Context, tx store.Getter, customerID string, in PaymentInput) (models.Account, *string, error) {
	account, err := s.accounts.GetByName(ctx, tx, customerID, in.AccountName)
	if err != nil {
		if store.IsNotFound(err) {
			return models.Account{}, nil, ErrAccountNotFound
		}
		return models.Account{}, nil, err
	}
	if strings.TrimSpace(in.CategoryName) == "" {
		return account, nil, nil
	}
	category, err := s.categories.GetByName(ctx, tx, customerID, in.CategoryName)
	if err != nil {
		if store.IsNotFound(err) {
			return models.Account{}, nil, ErrCategoryNotFound
		}
		return models.Account{}, nil, err
	}
	return account, &category.ID, nil
}

func (s *PaymentService) lockOwnedPair(ctx context.Context, tx store.Getter, req MoveRequest) (models.Account, models.Account, error) {
	src, dst, err := lockTwoAccounts(ctx, tx, s.accounts, req.SrcAccountID, req.DstAccountID)
	if err != nil {
		if store.IsNotFound(err) {
			return models.Account{}, models.Account{}, ErrAccountNotFound
		}
		return models.Account{}, models.Account{}, err
	}
	if src.CustomerID != req.CustomerID || dst.CustomerID != req.CustomerID {
		return models.Account{}, models.Account{}, ErrAccessDenied
	}
	return src, dst, nil
}

func (s *PaymentService) reservedCategory(ctx context.Context, tx store.Getter, customerID, name string) (models.PaymentCategory, error) {
	category, err := s.categories.GetByName(ctx, tx, customerID, name)
	if err != nil {
		if store.IsNotFound(err) {
			return models.PaymentCategory{}, fmt.Errorf("%w: %s", ErrCategoryMissing, name)
		}
		return models.PaymentCategory{}, err
	}
	return category, nil
}

// legs builds the expense leg on src and the income leg on dst. Both share
// the timestamp, category and pair id.
func (s *PaymentService) legs(req MoveRequest, category models.PaymentCategory, src, dst models.Account, dstAmount int64, srcDescription, dstDescription string) MoveResult {
	pairID := uuid.NewString()
	categoryName := category.Name
	leg := func(account models.Account, income bool, amount int64, description string) models.Payment {
		return models.Payment{
			ID:           uuid.NewString(),
			CustomerID:   req.CustomerID,
			AccountID:    account.ID,
			AccountName:  account.Name,
			CategoryID:   &category.ID,
			CategoryName: &categoryName,
			PairID:       &pairID,
			OccurredAt:   req.DateTime,
			Direction:    income,
			Status:       true,
			Amount:       amount,
			Currency:     account.Currency,
			Description:  description,
		}
	}
	return MoveResult{
		PairID: pairID,
		Src:    leg(src, false, req.AmountMinor, srcDescription),
		Dst:    leg(dst, true, dstAmount, dstDescription),
	}
}

func (s *PaymentService) broadcast(customerID string, payment models.Payment, balance int64) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastBalance(customerID, websocket.BalanceUpdate{
		AccountID:   payment.AccountID,
		AccountName: payment.AccountName,
		Balance:     money.FormatMinor(balance),
		Currency:    payment.Currency,
	})
}

func lockTwoAccounts(ctx context.Context, tx store.Getter, accountStore AccountStore, firstID, secondID string) (models.Account, models.Account, error) {
	leftID, rightID := orderedIDs(firstID, secondID)
	leftAccount, err := accountStore.GetForUpdate(ctx, tx, leftID)
	if err != nil {
		return models.Account{}, models.Account{}, err
	}
	rightAccount, err := accountStore.GetForUpdate(ctx, tx, rightID)
	if err != nil {
		return models.Account{}, models.Account{}, err
	}
	if firstID == leftID {
		return leftAccount, rightAccount, nil
	}
	return rightAccount, leftAccount, nil
}

func orderedIDs(firstID, secondID string) (string, string) {
	if firstID <= secondID {
		return firstID, secondID
	}
	return secondID, firstID
}

func parsePositive(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil || !value.IsPositive() {
		return decimal.Zero, ErrRatesUnavailable
	}
	return value, nil
}

func optionalName(name string) *string {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	return &name
}

// inLocation reinterprets a DATE column value as a calendar day in loc.
func inLocation(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
