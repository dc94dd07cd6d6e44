package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/storekit/catalog/internal/core/domain"
)

type UserRepository interface {
	// Create persists a new user. A duplicate email returns
	// domain.ErrEmailTaken; the storage-level unique constraint is the
	// authority, not a prior lookup.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
