package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tenant-auth/internal/domain"
)

// CustomerRepository define el contrato de persistencia para customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer domain.Customer) error
	GetByID(ctx context.Context, id string) (domain.Customer, error)
	GetByName(ctx context.Context, name string) (domain.Customer, error)
	Update(ctx context.Context, customer domain.Customer) error
}

// PgCustomerRepository implementa CustomerRepository usando pgxpool.
type PgCustomerRepository struct {
	pool *pgxpool.Pool
}

func NewPgCustomerRepository(pool *pgxpool.Pool) *PgCustomerRepository {
	return &PgCustomerRepository{pool: pool}
}

func (r *PgCustomerRepository) Create(ctx context.Context, customer domain.Customer) error {
	const query = `
		INSERT INTO customers (id, name, display_name, description, config, creation_date, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.DisplayName,
		customer.Description,
		customer.Config,
		customer.CreationDate,
		customer.LastUpdate,
	)
	return err
}

func (r *PgCustomerRepository) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	return r.getBy(ctx, "id", id)
}

func (r *PgCustomerRepository) GetByName(ctx context.Context, name string) (domain.Customer, error) {
	return r.getBy(ctx, "name", name)
}

func (r *PgCustomerRepository) getBy(ctx context.Context, column, value string) (domain.Customer, error) {
	query := `
		SELECT id, name, display_name, description, config, creation_date, last_update
		FROM customers
		WHERE ` + column + ` = $1
	`
	var c domain.Customer
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&c.ID,
		&c.Name,
		&c.DisplayName,
		&c.Description,
		&c.Config,
		&c.CreationDate,
		&c.LastUpdate,
	)
	if err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

// Update guarda el customer refrescando last_update.
func (r *PgCustomerRepository) Update(ctx context.Context, customer domain.Customer) error {
	const query = `
		UPDATE customers
		SET display_name = $2, description = $3, config = $4, last_update = $5
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.DisplayName,
		customer.Description,
		customer.Config,
		time.Now().UTC(),
	)
	return err
}
