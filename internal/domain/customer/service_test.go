package customer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type repoMock struct {
	create     func(ctx context.Context, c *Customer) error
	getByEmail func(ctx context.Context, email string) (*Customer, error)
}

func (m *repoMock) Create(ctx context.Context, c *Customer) error {
	return m.create(ctx, c)
}

func (m *repoMock) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	return m.getByEmail(ctx, email)
}

func testSigner() *TokenSigner {
	return NewTokenSigner([]byte("test-secret"), time.Hour)
}

func TestRegisterHashesPassword(t *testing.T) {
	var stored *Customer
	repo := &repoMock{
		create: func(_ context.Context, c *Customer) error {
			c.ID = "cust-1"
			stored = c
			return nil
		},
	}

	svc := NewService(repo, testSigner())
	c, err := svc.Register(context.Background(), "  Maria Souza ", "Maria@Example.COM", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, "cust-1", c.ID)
	assert.Equal(t, "Maria Souza", c.Name)
	assert.Equal(t, "maria@example.com", c.Email, "email stored lowercased")

	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
}

func TestRegisterEmailTaken(t *testing.T) {
	repo := &repoMock{
		create: func(context.Context, *Customer) error { return ErrEmailTaken },
	}

	svc := NewService(repo, testSigner())
	_, err := svc.Register(context.Background(), "Maria", "maria@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &repoMock{
		getByEmail: func(_ context.Context, email string) (*Customer, error) {
			assert.Equal(t, "maria@example.com", email)
			return &Customer{ID: "cust-1", Email: email, PasswordHash: string(hash)}, nil
		},
	}

	signer := testSigner()
	svc := NewService(repo, signer)
	c, token, err := svc.Login(context.Background(), "Maria@Example.com", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, "cust-1", c.ID)
	subject, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "cust-1", subject)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &repoMock{
		getByEmail: func(context.Context, string) (*Customer, error) {
			return &Customer{ID: "cust-1", PasswordHash: string(hash)}, nil
		},
	}

	svc := NewService(repo, testSigner())
	_, _, err = svc.Login(context.Background(), "maria@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := &repoMock{
		getByEmail: func(context.Context, string) (*Customer, error) {
			return nil, ErrInvalidCredentials
		},
	}

	svc := NewService(repo, testSigner())
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenExpiry(t *testing.T) {
	signer := testSigner()
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return base }

	token, err := signer.Sign("cust-1")
	require.NoError(t, err)

	subject, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "cust-1", subject)

	signer.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, err = signer.Verify(token)
	assert.Error(t, err, "expired token must be rejected")
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	signer := testSigner()
	token, err := signer.Sign("cust-1")
	require.NoError(t, err)

	other := NewTokenSigner([]byte("other-secret"), time.Hour)
	_, err = other.Verify(token)
	assert.Error(t, err)
}
