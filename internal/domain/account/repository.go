package account

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

// Repository defines the persistence contract for accounts. Implementations
// must exclude soft-deleted rows from every lookup.
type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, accountID uuid.UUID) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByPhone(ctx context.Context, phone string) (*Account, error)
	GetByVerificationToken(ctx context.Context, token string) (*Account, error)
	GetByResetToken(ctx context.Context, token string) (*Account, error)
	GetAll(ctx context.Context) ([]*Account, error)
	Update(ctx context.Context, a *Account) error
	UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string) error
	SetActive(ctx context.Context, accountID uuid.UUID, active bool) error
	Delete(ctx context.Context, accountID uuid.UUID) error
}
