package handlers

import (
	"encoding/json"

	"homeacc/internal/models"
	"homeacc/internal/money"
)

type customerDTO struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Role      string `json:"role"`
}

func toCustomerDTO(c models.Customer) customerDTO {
	return customerDTO{
		ID:        c.ID,
		Login:     c.Login,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Address:   c.Address,
		Role:      c.Role,
	}
}

type registerRequest struct {
	Login           string `json:"login"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type jwtResponse struct {
	User  customerDTO `json:"user"`
	Token string      `json:"token"`
}

type profileRequest struct {
	Login     string `json:"login"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type accountDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	CurrencyName string `json:"currencyName"`
	Balance      string `json:"balance"`
}

func toAccountDTO(a models.Account) accountDTO {
	return accountDTO{
		ID:           a.ID,
		Name:         a.Name,
		Description:  a.Description,
		Type:         a.Type,
		CurrencyName: a.Currency,
		Balance:      money.FormatMinor(a.Balance),
	}
}

type accountRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	CurrencyName string `json:"currencyName"`
}

type categoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toCategoryDTO(c models.PaymentCategory) categoryDTO {
	return categoryDTO{ID: c.ID, Name: c.Name, Description: c.Description}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type paymentDTO struct {
	ID                  string `json:"id"`
	DateTime            string `json:"dateTime"`
	Direction           bool   `json:"direction"`
	Status              bool   `json:"status"`
	Amount              string `json:"amount"`
	CurrencyName        string `json:"currencyName"`
	Description         string `json:"description"`
	PaymentCategoryName string `json:"paymentCategoryName"`
	AccountName         string `json:"accountName"`
	PairID              string `json:"pairId,omitempty"`
}

func toPaymentDTO(p models.Payment) paymentDTO {
	dto := paymentDTO{
		ID:           p.ID,
		DateTime:     p.OccurredAt.Format(models.DateTimeLayout),
		Direction:    p.Direction,
		Status:       p.Status,
		Amount:       money.FormatMinor(p.Amount),
		CurrencyName: p.Currency,
		Description:  p.Description,
		AccountName:  p.AccountName,
	}
	if p.CategoryName != nil {
		dto.PaymentCategoryName = *p.CategoryName
	}
	if p.PairID != nil {
		dto.PairID = *p.PairID
	}
	return dto
}

func toPaymentDTOs(payments []models.Payment) []paymentDTO {
	out := make([]paymentDTO, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentDTO(p))
	}
	return out
}

type paymentRequest struct {
	DateTime            string      `json:"dateTime"`
	Direction           bool        `json:"direction"`
	Status              bool        `json:"status"`
	Amount              json.Number `json:"amount"`
	Description         string      `json:"description"`
	PaymentCategoryName string      `json:"paymentCategoryName"`
	AccountName         string      `json:"accountName"`
}

type moveRequest struct {
	DateTime     string      `json:"dateTime"`
	SrcAccountID string      `json:"srcAccountId"`
	DstAccountID string      `json:"dstAccountId"`
	Amount       json.Number `json:"amount"`
}

type moveResponse struct {
	PairID string       `json:"pairId"`
	Rate   string       `json:"rate"`
	Legs   []paymentDTO `json:"payments"`
}

type periodDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func toPeriodDTO(p models.Period) periodDTO {
	return periodDTO{StartDate: p.Start.Format(models.DateLayout), EndDate: p.End.Format(models.DateLayout)}
}

type currencyStatsDTO struct {
	Currency string `json:"currencyName"`
	Total    string `json:"totalSum"`
	OnScreen string `json:"onScreenSum"`
	Daily    string `json:"dailySum"`
}

// statisticsResponse flattens per-currency sums into totalSumUAH-style keys
// and also returns them as a list.
func statisticsResponse(stats []models.CurrencyStats) map[string]any {
	out := make(map[string]any, len(stats)*3+1)
	list := make([]currencyStatsDTO, 0, len(stats))
	for _, s := range stats {
		total := money.FormatMinor(s.Total)
		onScreen := money.FormatMinor(s.OnScreen)
		daily := money.FormatMinor(s.Daily)
		out["totalSum"+s.Currency] = total
		out["onScreenSum"+s.Currency] = onScreen
		out["dailySum"+s.Currency] = daily
		list = append(list, currencyStatsDTO{Currency: s.Currency, Total: total, OnScreen: onScreen, Daily: daily})
	}
	out["currencies"] = list
	return out
}

type rateDTO struct {
	Currency     string `json:"ccy"`
	BaseCurrency string `json:"base_ccy"`
	Buy          string `json:"buy"`
	Sale         string `json:"sale"`
	Date         string `json:"date"`
}

func toRateDTO(r models.RateSnapshot) rateDTO {
	return rateDTO{
		Currency:     r.Currency,
		BaseCurrency: r.BaseCurrency,
		Buy:          r.BuyRate,
		Sale:         r.SellRate,
		Date:         r.RateDate.Format(models.DateLayout),
	}
}
