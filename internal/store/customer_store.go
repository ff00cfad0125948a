package store

import (
	"context"
	"time"

	"homeacc/internal/models"

	"github.com/lib/pq"
)

type CustomerStore struct {
	db DB
}

const customerColumns = `id, login, email, password_hash, role, first_name, last_name, phone, address,
		       start_date, end_date, show_uah, show_eur, show_usd, show_in, show_out,
		       show_completed, show_scheduled, created_at`

func NewCustomerStore(db DB) *CustomerStore {
	return &CustomerStore{db: db}
}

func (s *CustomerStore) Create(ctx context.Context, tx Execer, c models.Customer) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO customers (id, login, email, password_hash, role, first_name, last_name, phone, address,
		                       show_uah, show_eur, show_usd, show_in, show_out, show_completed, show_scheduled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, c.ID, c.Login, c.Email, c.PasswordHash, c.Role, c.FirstName, c.LastName, c.Phone, c.Address,
		c.UAH, c.EUR, c.USD, c.Income, c.Expense, c.Completed, c.Scheduled)
	return err
}

func (s *CustomerStore) GetByID(ctx context.Context, id string) (models.Customer, error) {
	var row models.Customer
	err := s.db.GetContext(ctx, &row, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	return row, err
}

func (s *CustomerStore) GetByEmail(ctx context.Context, email string) (models.Customer, error) {
	var row models.Customer
	err := s.db.GetContext(ctx, &row, `SELECT `+customerColumns+` FROM customers WHERE lower(email) = lower($1)`, email)
	return row, err
}

func (s *CustomerStore) GetByLogin(ctx context.Context, login string) (models.Customer, error) {
	var row models.Customer
	err := s.db.GetContext(ctx, &row, `SELECT `+customerColumns+` FROM customers WHERE login = $1`, login)
	return row, err
}

func (s *CustomerStore) List(ctx context.Context) ([]models.Customer, error) {
	var rows []models.Customer
	err := s.db.SelectContext(ctx, &rows, `SELECT `+customerColumns+` FROM customers ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *CustomerStore) UpdateProfile(ctx context.Context, tx Execer, c models.Customer) (int64, error) {
	return execAffected(ctx, tx, `
		UPDATE customers
		SET login = $2, email = $3, first_name = $4, last_name = $5, phone = $6, address = $7
		WHERE id = $1
	`, c.ID, c.Login, c.Email, c.FirstName, c.LastName, c.Phone, c.Address)
}

func (s *CustomerStore) SetRole(ctx context.Context, tx Execer, id, role string) error {
	_, err := tx.ExecContext(ctx, `UPDATE customers SET role = $2 WHERE id = $1`, id, role)
	return err
}

func (s *CustomerStore) SetPeriod(ctx context.Context, id string, start, end time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE customers SET start_date = $2, end_date = $3 WHERE id = $1
	`, id, start.Format("2006-01-02"), end.Format("2006-01-02"))
	return err
}

func (s *CustomerStore) SetFilters(ctx context.Context, id string, f models.Filters) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE customers
		SET show_uah = $2, show_eur = $3, show_usd = $4, show_in = $5, show_out = $6,
		    show_completed = $7, show_scheduled = $8
		WHERE id = $1
	`, id, f.UAH, f.EUR, f.USD, f.Income, f.Expense, f.Completed, f.Scheduled)
	return err
}

// Delete removes the listed customers except keepID. Owned rows cascade.
func (s *CustomerStore) Delete(ctx context.Context, tx Execer, ids []string, keepID string) (int64, error) {
	return execAffected(ctx, tx, `
		DELETE FROM customers WHERE id = ANY($1) AND id <> $2
	`, pq.Array(ids), keepID)
}
