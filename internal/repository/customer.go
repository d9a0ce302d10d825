package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brunodmn/storefront-api/internal/domain/customer"
)

const (
	createCustomerSQL = `INSERT INTO customers (id, full_name, email, password_hash)
		VALUES ($1, $2, $3, $4) RETURNING created_at`

	getCustomerByEmailSQL = `SELECT id, full_name, email, password_hash, created_at
		FROM customers WHERE email = $1`
)

// uniqueViolation is the PostgreSQL error code raised by the email unique index.
const uniqueViolation = "23505"

var _ customer.Repository = (*CustomerRepository)(nil)

// CustomerRepository implements customer.Repository backed by PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a CustomerRepository that uses the given pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create inserts the customer with a generated UUID, mapping the unique
// email violation to customer.ErrEmailTaken.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	id := uuid.NewString()
	err := r.pool.QueryRow(ctx, createCustomerSQL, id, c.Name, c.Email, c.PasswordHash).Scan(&c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return customer.ErrEmailTaken
		}
		return fmt.Errorf("creating customer: %w", err)
	}
	c.ID = id
	return nil
}

// GetByEmail fetches an account by its lowercased email.
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var c customer.Customer
	err := r.pool.QueryRow(ctx, getCustomerByEmailSQL, email).
		Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("getting customer by email: %w", err)
	}
	return &c, nil
}
