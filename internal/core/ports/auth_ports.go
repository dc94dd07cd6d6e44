package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storekit/catalog/internal/core/domain"
)

// PasswordHasher is the one-way credential hashing capability.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns true when password matches hash. A mismatch is not an
	// error; errors mean the hash itself is unusable.
	Verify(password, hash string) (bool, error)
}

// TokenProvider issues and verifies bearer tokens for a user identity.
type TokenProvider interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (uuid.UUID, error)
	TTL() time.Duration
}

type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService interface {
	// Register returns *domain.ValidationError on bad input (including a
	// taken email) and never issues a token in that case.
	Register(ctx context.Context, input RegisterInput) (*domain.AuthToken, error)
	// Login returns domain.ErrInvalidCredentials for both an unknown email
	// and a wrong password.
	Login(ctx context.Context, input LoginInput) (*domain.AuthToken, error)
}
