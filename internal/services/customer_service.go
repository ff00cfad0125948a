package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"homeacc/internal/auth"
	"homeacc/internal/db"
	"homeacc/internal/models"
	"homeacc/internal/store"
	"homeacc/internal/validator"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CategorySeeder interface {
	SeedFromTemplate(ctx context.Context, tx store.Execer, customerID string) (int64, error)
	InitTemplate(ctx context.Context, templateID string) (int64, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
}

type CustomerService struct {
	txRunner   db.TxRunner
	customers  CustomerStore
	categories CategorySeeder
	revoker    TokenRevoker
	audit      AuditStore
	secret     string
	tokenTTL   time.Duration
	adminLogin string
	now        func() time.Time
}

func NewCustomerService(txRunner db.TxRunner, customers CustomerStore, categories CategorySeeder, revoker TokenRevoker, audit AuditStore, secret string, tokenTTL time.Duration, adminLogin string) *CustomerService {
	return &CustomerService{
		txRunner:   txRunner,
		customers:  customers,
		categories: categories,
		revoker:    revoker,
		audit:      audit,
		secret:     secret,
		tokenTTL:   tokenTTL,
		adminLogin: adminLogin,
		now:        time.Now,
	}
}

type RegisterInput struct {
	Login           string
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
}

type ProfileInput struct {
	Login     string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	Customer  models.Customer
}

// Register creates a USER with every display filter on and a copy of the
// template category catalog, in one transaction. Login defaults to the email.
func (s *CustomerService) Register(ctx context.Context, in RegisterInput) (models.Customer, error) {
	if in.Password != in.ConfirmPassword {
		return models.Customer{}, ErrPasswordMismatch
	}
	in.Email = strings.TrimSpace(in.Email)
	in.Login = strings.TrimSpace(in.Login)
	if in.Login == "" {
		in.Login = in.Email
	}
	if err := validator.ValidateEmail(in.Email); err != nil {
		return models.Customer{}, err
	}
	if err := validator.ValidateLogin(in.Login); err != nil {
		return models.Customer{}, err
	}
	if err := validator.ValidatePassword(in.Password); err != nil {
		return models.Customer{}, err
	}
	if err := s.ensureFree(ctx, "", in.Login, in.Email); err != nil {
		return models.Customer{}, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.Customer{}, err
	}
	customer := models.Customer{
		ID:           uuid.NewString(),
		Login:        in.Login,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Filters:      models.AllFilters(),
		CreatedAt:    s.now(),
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.customers.Create(ctx, tx, customer); err != nil {
			return err
		}
		if _, err := s.categories.SeedFromTemplate(ctx, tx, customer.ID); err != nil {
			return err
		}
		data, _ := json.Marshal(map[string]string{"email": customer.Email})
		return s.audit.Log(ctx, tx, customer.ID, "register", "customer", customer.ID, string(data))
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return models.Customer{}, ErrEmailTaken
		}
		return models.Customer{}, err
	}
	return customer, nil
}

func (s *CustomerService) Login(ctx context.Context, email, password string) (Session, error) {
	customer, err := s.customers.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if store.IsNotFound(err) {
			return Session{}, ErrUnauthorized
		}
		return Session{}, err
	}
	if !auth.CheckPassword(customer.PasswordHash, password) {
		return Session{}, ErrUnauthorized
	}
	token, err := auth.GenerateToken(s.secret, customer.ID, customer.Role, s.tokenTTL)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: s.now().Add(s.tokenTTL), Customer: customer}, nil
}

// Logout blacklists token until it would have expired on its own.
func (s *CustomerService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	return s.revoker.Revoke(ctx, token, expiresAt)
}

func (s *CustomerService) Current(ctx context.Context, customerID string) (models.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if store.IsNotFound(err) {
			return models.Customer{}, ErrCustomerNotFound
		}
		return models.Customer{}, err
	}
	return customer, nil
}

// IsAdmin reads the role from storage so a demotion takes effect before the
// token expires. A deleted customer is simply not an admin.
func (s *CustomerService) IsAdmin(ctx context.Context, customerID string) (bool, error) {
	customer, err := s.Current(ctx, customerID)
	if errors.Is(err, ErrCustomerNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return customer.Role == models.RoleAdmin, nil
}

func (s *CustomerService) Period(ctx context.Context, customerID string) (models.Period, error) {
	customer, err := s.Current(ctx, customerID)
	if err != nil {
		return models.Period{}, err
	}
	return PeriodOf(customer, s.now()), nil
}

func (s *CustomerService) SetPeriod(ctx context.Context, customerID string, period models.Period) error {
	if period.Start.After(period.End) {
		return validator.ErrInvalidPeriod
	}
	return s.customers.SetPeriod(ctx, customerID, period.Start, period.End)
}

func (s *CustomerService) SetPeriodToday(ctx context.Context, customerID string) (models.Period, error) {
	today := models.StartOfDay(s.now())
	period := models.Period{Start: today, End: today}
	return period, s.SetPeriod(ctx, customerID, period)
}

func (s *CustomerService) SetPeriodMonth(ctx context.Context, customerID string) (models.Period, error) {
	today := models.StartOfDay(s.now())
	first := today.AddDate(0, 0, 1-today.Day())
	period := models.Period{Start: first, End: first.AddDate(0, 1, -1)}
	return period, s.SetPeriod(ctx, customerID, period)
}

func (s *CustomerService) Filters(ctx context.Context, customerID string) (models.Filters, error) {
	customer, err := s.Current(ctx, customerID)
	if err != nil {
		return models.Filters{}, err
	}
	return customer.Filters, nil
}

func (s *CustomerService) SetFilters(ctx context.Context, customerID string, filters models.Filters) error {
	return s.customers.SetFilters(ctx, customerID, filters)
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	return customers, nil
}

// UpdateProfile edits any customer's identity and contact fields. Empty
// login or email keep the current value.
func (s *CustomerService) UpdateProfile(ctx context.Context, customerID string, in ProfileInput) (models.Customer, error) {
	current, err := s.Current(ctx, customerID)
	if err != nil {
		return models.Customer{}, err
	}
	updated := current
	if email := strings.TrimSpace(in.Email); email != "" {
		if err := validator.ValidateEmail(email); err != nil {
			return models.Customer{}, err
		}
		updated.Email = email
	}
	if login := strings.TrimSpace(in.Login); login != "" {
		if err := validator.ValidateLogin(login); err != nil {
			return models.Customer{}, err
		}
		updated.Login = login
	}
	updated.FirstName = in.FirstName
	updated.LastName = in.LastName
	updated.Phone = in.Phone
	updated.Address = in.Address
	if err := s.ensureFree(ctx, customerID, updated.Login, updated.Email); err != nil {
		return models.Customer{}, err
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		affected, err := s.customers.UpdateProfile(ctx, tx, updated)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrCustomerNotFound
		}
		return nil
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return models.Customer{}, ErrEmailTaken
		}
		return models.Customer{}, err
	}
	return updated, nil
}

// Delete removes customers among ids; the template customer is never removed.
func (s *CustomerService) Delete(ctx context.Context, actorID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	keepID := ""
	template, err := s.customers.GetByLogin(ctx, s.adminLogin)
	if err == nil {
		keepID = template.ID
	} else if !store.IsNotFound(err) {
		return 0, err
	}
	var deleted int64
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		deleted, err = s.customers.Delete(ctx, tx, ids, keepID)
		if err != nil {
			return err
		}
		data, _ := json.Marshal(map[string]any{"ids": ids, "deleted": deleted})
		return s.audit.Log(ctx, tx, actorID, "delete", "customer", strings.Join(ids, ","), string(data))
	})
	return deleted, err
}

// EnsureAdmin creates the template/admin customer when missing, promotes it
// to ADMIN and installs the default category catalog on it.
func (s *CustomerService) EnsureAdmin(ctx context.Context, email, password string) (models.Customer, error) {
	admin, err := s.customers.GetByLogin(ctx, s.adminLogin)
	switch {
	case err == nil:
		if admin.Role != models.RoleAdmin {
			if err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
				return s.customers.SetRole(ctx, tx, admin.ID, models.RoleAdmin)
			}); err != nil {
				return models.Customer{}, err
			}
			admin.Role = models.RoleAdmin
		}
	case store.IsNotFound(err):
		hash, err := auth.HashPassword(password)
		if err != nil {
			return models.Customer{}, err
		}
		admin = models.Customer{
			ID:           uuid.NewString(),
			Login:        s.adminLogin,
			Email:        email,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			Filters:      models.AllFilters(),
		}
		if err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
			return s.customers.Create(ctx, tx, admin)
		}); err != nil {
			return models.Customer{}, err
		}
	default:
		return models.Customer{}, err
	}
	if _, err := s.categories.InitTemplate(ctx, admin.ID); err != nil {
		return models.Customer{}, err
	}
	return admin, nil
}

// ensureFree rejects a login or email already used by a customer other than selfID.
func (s *CustomerService) ensureFree(ctx context.Context, selfID, login, email string) error {
	byEmail, err := s.customers.GetByEmail(ctx, email)
	if err == nil && byEmail.ID != selfID {
		return ErrEmailTaken
	}
	if err != nil && !store.IsNotFound(err) {
		return err
	}
	byLogin, err := s.customers.GetByLogin(ctx, login)
	if err == nil && byLogin.ID != selfID {
		return ErrLoginTaken
	}
	if err != nil && !store.IsNotFound(err) {
		return err
	}
	return nil
}
