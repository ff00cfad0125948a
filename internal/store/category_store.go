package store

import (
	"context"

	"homeacc/internal/models"

	"github.com/lib/pq"
)

type CategoryStore struct {
	db DB
}

func NewCategoryStore(db DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) Create(ctx context.Context, tx Execer, category models.PaymentCategory) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO payment_categories (id, customer_id, name, description)
		VALUES ($1, $2, $3, $4)
	`, category.ID, category.CustomerID, category.Name, category.Description)
	return err
}

// CreateIfMissing inserts the category unless the customer already has the name.
func (s *CategoryStore) CreateIfMissing(ctx context.Context, tx Execer, category models.PaymentCategory) (int64, error) {
	return execAffected(ctx, tx, `
		INSERT INTO payment_categories (id, customer_id, name, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (customer_id, name) DO NOTHING
	`, category.ID, category.CustomerID, category.Name, category.Description)
}

// SeedFromTemplate copies every category of the customer with templateLogin
// into customerID's catalog, skipping names the customer already has.
func (s *CategoryStore) SeedFromTemplate(ctx context.Context, tx Execer, customerID, templateLogin string) (int64, error) {
	return execAffected(ctx, tx, `
		INSERT INTO payment_categories (id, customer_id, name, description)
		SELECT gen_random_uuid()::text, $1, pc.name, pc.description
		FROM payment_categories pc
		JOIN customers c ON c.id = pc.customer_id
		WHERE c.login = $2 AND pc.customer_id <> $1
		ON CONFLICT (customer_id, name) DO NOTHING
	`, customerID, templateLogin)
}

func (s *CategoryStore) ListByCustomer(ctx context.Context, customerID string) ([]models.PaymentCategory, error) {
	var rows []models.PaymentCategory
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, customer_id, name, description
		FROM payment_categories
		WHERE customer_id = $1
		ORDER BY name
	`, customerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *CategoryStore) GetByID(ctx context.Context, id string) (models.PaymentCategory, error) {
	var row models.PaymentCategory
	err := s.db.GetContext(ctx, &row, `
		SELECT id, customer_id, name, description FROM payment_categories WHERE id = $1
	`, id)
	return row, err
}

func (s *CategoryStore) GetByName(ctx context.Context, q Getter, customerID, name string) (models.PaymentCategory, error) {
	var row models.PaymentCategory
	err := q.GetContext(ctx, &row, `
		SELECT id, customer_id, name, description
		FROM payment_categories
		WHERE customer_id = $1 AND name = $2
	`, customerID, name)
	return row, err
}

func (s *CategoryStore) Update(ctx context.Context, tx Execer, category models.PaymentCategory) (int64, error) {
	return execAffected(ctx, tx, `
		UPDATE payment_categories SET name = $3, description = $4
		WHERE id = $1 AND customer_id = $2
	`, category.ID, category.CustomerID, category.Name, category.Description)
}

// Delete removes the customer's listed categories except the protected names.
func (s *CategoryStore) Delete(ctx context.Context, tx Execer, customerID string, ids, protected []string) (int64, error) {
	return execAffected(ctx, tx, `
		DELETE FROM payment_categories
		WHERE customer_id = $1 AND id = ANY($2) AND NOT (name = ANY($3))
	`, customerID, pq.Array(ids), pq.Array(protected))
}
