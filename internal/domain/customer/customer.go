// Package customer implements account registration, credential login, and
// the signed tokens that authenticate order placement.
package customer

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

var (
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login when the email is unknown or
	// the password does not match. The two cases are deliberately
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Customer is a registered account. PasswordHash is a bcrypt hash; the
// plaintext password never leaves the registration or login call.
type Customer struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Repository persists customer accounts.
type Repository interface {
	// Create inserts the customer and populates its generated ID. It returns
	// ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, c *Customer) error

	// GetByEmail returns ErrInvalidCredentials when no account matches.
	GetByEmail(ctx context.Context, email string) (*Customer, error)
}
