package services

import (
	"context"
	"strings"

	"homeacc/internal/db"
	"homeacc/internal/models"
	"homeacc/internal/store"
	"homeacc/internal/validator"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DefaultCategories is installed on the template customer and copied from
// there to every new customer.
var DefaultCategories = []models.PaymentCategory{
	{Name: "DEFAULT", Description: "Default payment category"},
	{Name: "SALARY", Description: "Income earned from work"},
	{Name: "HEALTH", Description: "Medicines, clinics, food additives ..."},
	{Name: "BANK", Description: "Banking operations, payment for banking services"},
	{Name: "BEAUTY", Description: "Beauty salons, cosmetics..."},
	{Name: "CAR", Description: "Spare parts, fuel, repairs"},
	{Name: "CHILDREN", Description: "Schools, kindergartens, entertainment, toys"},
	{Name: "GIFT", Description: "Something given or received as a gift"},
	{Name: "RESTAURANT", Description: "Restaurants, cafes, bars..."},
	{Name: "ENTERTAINMENT", Description: "Clubs, discos, parties"},
	{Name: "TRAVEL", Description: "Hotels, tours..."},
	{Name: "COMMUNAL PAYMENTS", Description: "Rent and utility costs"},
	{Name: "SERVICES", Description: "Services received and rendered"},
	{Name: "TICKETS", Description: "Plane, train, bus, ship"},
	{Name: "FOOD", Description: "Supermarkets, farmers markets, bakeries"},
	{Name: "EQUIPMENTS", Description: "Specialized tools and equipment"},
	{Name: "TRANSPORT", Description: "Taxi and public transport costs"},
	{Name: "HOUSEHOLD", Description: "Various household appliances, dishes"},
	{Name: "HOBBY", Description: "Everything for body and soul"},
	{Name: models.CategoryExchange, Description: "Exchange currency (don't delete!)"},
	{Name: models.CategoryTransfer, Description: "Send money to my another account (don't delete!)"},
	{Name: "OTHER", Description: "Other income and expenses"},
}

var reservedCategories = []string{models.CategoryExchange, models.CategoryTransfer}

type CategoryService struct {
	txRunner      db.TxRunner
	categories    CategoryStore
	customers     TemplateLookup
	templateLogin string
}

// TemplateLookup finds the template customer by its configured login.
type TemplateLookup interface {
	GetByLogin(ctx context.Context, login string) (models.Customer, error)
}

func NewCategoryService(txRunner db.TxRunner, categories CategoryStore, customers TemplateLookup, templateLogin string) *CategoryService {
	return &CategoryService{
		txRunner:      txRunner,
		categories:    categories,
		customers:     customers,
		templateLogin: templateLogin,
	}
}

func (s *CategoryService) List(ctx context.Context, customerID string) ([]models.PaymentCategory, error) {
	categories, err := s.categories.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.PaymentCategory{}
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, customerID, name, description string) (models.PaymentCategory, error) {
	name = strings.TrimSpace(name)
	if err := validator.ValidateName(name); err != nil {
		return models.PaymentCategory{}, err
	}
	category := models.PaymentCategory{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		Name:        name,
		Description: description,
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.categories.Create(ctx, tx, category)
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return models.PaymentCategory{}, ErrCategoryNameTaken
		}
		return models.PaymentCategory{}, err
	}
	return category, nil
}

// Update renames or re-describes an owned category. Reserved categories keep
// their name.
func (s *CategoryService) Update(ctx context.Context, customerID, categoryID, name, description string) (models.PaymentCategory, error) {
	name = strings.TrimSpace(name)
	if err := validator.ValidateName(name); err != nil {
		return models.PaymentCategory{}, err
	}
	current, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if store.IsNotFound(err) {
			return models.PaymentCategory{}, ErrCategoryNotFound
		}
		return models.PaymentCategory{}, err
	}
	if current.CustomerID != customerID {
		return models.PaymentCategory{}, ErrAccessDenied
	}
	if isReserved(current.Name) && name != current.Name {
		return models.PaymentCategory{}, ErrReservedCategory
	}
	updated := current
	updated.Name = name
	updated.Description = description
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		affected, err := s.categories.Update(ctx, tx, updated)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return models.PaymentCategory{}, ErrCategoryNameTaken
		}
		return models.PaymentCategory{}, err
	}
	return updated, nil
}

// Delete removes owned categories among ids. Reserved ones are skipped;
// payments that referenced a removed category keep existing uncategorised.
func (s *CategoryService) Delete(ctx context.Context, customerID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var deleted int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		deleted, err = s.categories.Delete(ctx, tx, customerID, ids, reservedCategories)
		return err
	})
	return deleted, err
}

// SeedFromTemplate copies the template customer's catalog to customerID,
// silently skipping names the customer already has.
func (s *CategoryService) SeedFromTemplate(ctx context.Context, tx store.Execer, customerID string) (int64, error) {
	return s.categories.SeedFromTemplate(ctx, tx, customerID, s.templateLogin)
}

// Reseed runs SeedFromTemplate in its own transaction.
func (s *CategoryService) Reseed(ctx context.Context, customerID string) (int64, error) {
	var seeded int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		seeded, err = s.SeedFromTemplate(ctx, tx, customerID)
		return err
	})
	return seeded, err
}

// InitTemplate installs DefaultCategories on the template customer.
func (s *CategoryService) InitTemplate(ctx context.Context, templateID string) (int64, error) {
	var created int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, c := range DefaultCategories {
			n, err := s.categories.CreateIfMissing(ctx, tx, models.PaymentCategory{
				ID:          uuid.NewString(),
				CustomerID:  templateID,
				Name:        c.Name,
				Description: c.Description,
			})
			if err != nil {
				return err
			}
			created += n
		}
		return nil
	})
	return created, err
}

// InitTemplateCatalog resolves the template customer and installs the defaults on it.
func (s *CategoryService) InitTemplateCatalog(ctx context.Context) (int64, error) {
	template, err := s.customers.GetByLogin(ctx, s.templateLogin)
	if err != nil {
		if store.IsNotFound(err) {
			return 0, ErrCustomerNotFound
		}
		return 0, err
	}
	return s.InitTemplate(ctx, template.ID)
}

func isReserved(name string) bool {
	for _, r := range reservedCategories {
		if r == name {
			return true
		}
	}
	return false
}
