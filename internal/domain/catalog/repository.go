package catalog

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

// ProductRepository defines the persistence contract for products. GetByID
// and GetAll resolve the category, related products, creator and approver
// relations; GetByIDs is a best-effort lookup that skips missing IDs.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	GetByIDs(ctx context.Context, productIDs []uuid.UUID) ([]*Product, error)
	GetAll(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	SoftDelete(ctx context.Context, productID uuid.UUID) error
	HardDelete(ctx context.Context, productID uuid.UUID) (int64, error)
	IncrementViewCount(ctx context.Context, productID uuid.UUID) error
}

// CategoryRepository defines the persistence contract for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, categoryID uuid.UUID) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	GetAll(ctx context.Context) ([]*Category, error)
}
