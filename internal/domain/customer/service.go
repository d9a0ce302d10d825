package customer

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service handles registration and credential login.
type Service struct {
	customers Repository
	signer    *TokenSigner
}

// NewService builds a customer Service.
func NewService(customers Repository, signer *TokenSigner) *Service {
	return &Service{customers: customers, signer: signer}
}

// Register creates an account with a bcrypt-hashed password. Emails are
// stored lowercased so lookups are case-insensitive.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Customer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	c := &Customer{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}

	zctx.From(ctx).Info("customer registered", zap.String("customer_id", c.ID))
	return c, nil
}

// Login verifies the credentials and returns the account with a signed
// session token. Unknown email and wrong password both map to
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*Customer, string, error) {
	c, err := s.customers.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.signer.Sign(c.ID)
	if err != nil {
		return nil, "", errors.Wrap(err, "issue session token")
	}
	return c, token, nil
}
