package models

import "time"

const (
	DateLayout     = "02-01-2006"
	DateTimeLayout = "02-01-2006 15:04"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	CurrencyUAH = "UAH"
	CurrencyEUR = "EUR"
	CurrencyUSD = "USD"
)

// Currencies lists every currency an account may be denominated in.
var Currencies = []string{CurrencyUAH, CurrencyEUR, CurrencyUSD}

var AccountTypes = []string{"CASH", "BANK", "CARD", "OTHER"}

// Reserved category names written by exchanges and transfers.
const (
	CategoryExchange = "EXCHANGE"
	CategoryTransfer = "TRANSFER"
)

// Filters selects which payments appear in the filtered ledger. An empty
// dimension excludes everything rather than acting as a wildcard.
type Filters struct {
	UAH       bool `db:"show_uah" json:"isUAH"`
	EUR       bool `db:"show_eur" json:"isEUR"`
	USD       bool `db:"show_usd" json:"isUSD"`
	Income    bool `db:"show_in" json:"isIN"`
	Expense   bool `db:"show_out" json:"isOUT"`
	Completed bool `db:"show_completed" json:"isCompleted"`
	Scheduled bool `db:"show_scheduled" json:"isScheduled"`
}

func AllFilters() Filters {
	return Filters{UAH: true, EUR: true, USD: true, Income: true, Expense: true, Completed: true, Scheduled: true}
}

func (f Filters) CurrencySet() []string {
	set := make([]string, 0, 3)
	if f.UAH {
		set = append(set, CurrencyUAH)
	}
	if f.EUR {
		set = append(set, CurrencyEUR)
	}
	if f.USD {
		set = append(set, CurrencyUSD)
	}
	return set
}

func (f Filters) DirectionSet() []bool {
	set := make([]bool, 0, 2)
	if f.Income {
		set = append(set, true)
	}
	if f.Expense {
		set = append(set, false)
	}
	return set
}

func (f Filters) StatusSet() []bool {
	set := make([]bool, 0, 2)
	if f.Completed {
		set = append(set, true)
	}
	if f.Scheduled {
		set = append(set, false)
	}
	return set
}

// Period is an inclusive range of calendar dates.
type Period struct {
	Start time.Time
	End   time.Time
}

// Bounds returns the half-open instant range [start 00:00, end+1day 00:00).
func (p Period) Bounds() (time.Time, time.Time) {
	return StartOfDay(p.Start), StartOfDay(p.End).AddDate(0, 0, 1)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type Customer struct {
	ID           string     `db:"id"`
	Login        string     `db:"login"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Phone        string     `db:"phone"`
	Address      string     `db:"address"`
	StartDate    *time.Time `db:"start_date"`
	EndDate      *time.Time `db:"end_date"`
	Filters
	CreatedAt time.Time `db:"created_at"`
}

type Account struct {
	ID          string    `db:"id"`
	CustomerID  string    `db:"customer_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Type        string    `db:"type"`
	Currency    string    `db:"currency"`
	Balance     int64     `db:"balance"`
	CreatedAt   time.Time `db:"created_at"`
}

type PaymentCategory struct {
	ID          string `db:"id"`
	CustomerID  string `db:"customer_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

// Payment is one ledger row. Direction true is income, Status true is completed.
type Payment struct {
	ID           string    `db:"id"`
	CustomerID   string    `db:"customer_id"`
	AccountID    string    `db:"account_id"`
	AccountName  string    `db:"account_name"`
	CategoryID   *string   `db:"category_id"`
	CategoryName *string   `db:"category_name"`
	PairID       *string   `db:"pair_id"`
	OccurredAt   time.Time `db:"occurred_at"`
	Direction    bool      `db:"direction"`
	Status       bool      `db:"status"`
	Amount       int64     `db:"amount"`
	Currency     string    `db:"currency"`
	Description  string    `db:"description"`
}

// RateSnapshot holds one day's cash rates of Currency against BaseCurrency.
type RateSnapshot struct {
	ID           string    `db:"id"`
	Currency     string    `db:"currency"`
	BaseCurrency string    `db:"base_currency"`
	BuyRate      string    `db:"buy_rate"`
	SellRate     string    `db:"sell_rate"`
	RateDate     time.Time `db:"rate_date"`
}

type CurrencyStats struct {
	Currency string
	Total    int64
	OnScreen int64
	Daily    int64
}

type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	CustomerID *string   `db:"customer_id" json:"customerId"`
	Action     string    `db:"action" json:"action"`
	EntityType string    `db:"entity_type" json:"entityType"`
	EntityID   string    `db:"entity_id" json:"entityId"`
	Data       string    `db:"data" json:"data"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
