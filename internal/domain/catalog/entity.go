package catalog

import (
	"math"
	"time"

	"github.com/google/uuid"

	"marketplace-backend/internal/domain/account"
)

type ProductStatus string

const (
	StatusDraft           ProductStatus = "DRAFT"
	StatusPendingApproval ProductStatus = "PENDING_APPROVAL"
	StatusApproved        ProductStatus = "APPROVED"
	StatusRejected        ProductStatus = "REJECTED"
	StatusActive          ProductStatus = "ACTIVE"
	StatusInactive        ProductStatus = "INACTIVE"
	StatusOutOfStock      ProductStatus = "OUT_OF_STOCK"
	StatusSuspended       ProductStatus = "SUSPENDED"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusApproved, StatusRejected,
		StatusActive, StatusInactive, StatusOutOfStock, StatusSuspended:
		return true
	}
	return false
}

type ProductCondition string

const (
	ConditionNew         ProductCondition = "NEW"
	ConditionUsed        ProductCondition = "USED"
	ConditionRefurbished ProductCondition = "REFURBISHED"
)

func (c ProductCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionRefurbished:
		return true
	}
	return false
}

// Product belongs to exactly one category and is owned by the vendor who
// created it. Price, stock, lowStockThreshold, discountPercentage and rating
// respect their declared bounds at every persisted state.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string

	Price          float64
	CompareAtPrice *float64
	SKU            string

	Stock             int
	LowStockThreshold int
	TrackInventory    bool

	Status    ProductStatus
	Condition ProductCondition

	Rating        float64
	AverageRating float64

	DiscountPercentage float64
	DiscountExpires    *time.Time

	Tags           []string
	Images         []string
	Specifications []string
	ThumbnailURL   *string
	Brand          *string
	Featured       bool

	CategoryID uuid.UUID
	Category   *Category

	RelatedProducts []*Product

	CreatedByID uuid.UUID
	CreatedBy   *account.Account

	ApprovedByID    *uuid.UUID
	ApprovedBy      *account.Account
	ApprovedAt      *time.Time
	RejectionReason *string

	ViewCount int

	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Category groups products under a unique name.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

var editorRoles = map[account.Role]bool{
	account.RoleAdmin:          true,
	account.RoleSuperAdmin:     true,
	account.RoleProductManager: true,
}

// CanBeEditedBy reports whether acct may mutate this product: management
// roles always can, a vendor only for products it created.
func (p *Product) CanBeEditedBy(acct *account.Account) bool {
	if acct == nil {
		return false
	}
	if editorRoles[acct.Role] {
		return true
	}
	return acct.Role == account.RoleVendor && p.CreatedByID == acct.ID
}

// CanBeApprovedBy reports whether acct may move this product through the
// approval workflow.
func (p *Product) CanBeApprovedBy(acct *account.Account) bool {
	return acct != nil && editorRoles[acct.Role]
}

// DiscountedPrice applies the discount percentage, rounded to 2 decimals.
func (p *Product) DiscountedPrice() float64 {
	if p.DiscountPercentage > 0 {
		return round2(p.Price * (1 - p.DiscountPercentage/100))
	}
	return p.Price
}

// ComputedDiscountPercentage derives the markdown from the compare-at price,
// or 0 when no meaningful compare-at price is set.
func (p *Product) ComputedDiscountPercentage() float64 {
	if p.CompareAtPrice == nil || *p.CompareAtPrice <= p.Price {
		return 0
	}
	return round2((*p.CompareAtPrice - p.Price) / *p.CompareAtPrice * 100)
}

func (p *Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}

func (p *Product) CanPurchase() bool {
	return p.Stock > 0 && p.Status == StatusActive
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
