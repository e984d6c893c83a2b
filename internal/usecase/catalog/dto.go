package catalog

import (
	"time"

	"github.com/google/uuid"

	domainCatalog "marketplace-backend/internal/domain/catalog"
	accountUsecase "marketplace-backend/internal/usecase/account"
)

type CreateProductRequest struct {
	Name              string     `json:"name" validate:"required,min=2,max=255"`
	Description       string     `json:"description" validate:"required"`
	Price             float64    `json:"price" validate:"min=0"`
	CompareAtPrice    *float64   `json:"compare_at_price" validate:"omitempty,min=0"`
	SKU               string     `json:"sku" validate:"required,max=100"`
	Stock             int        `json:"stock" validate:"min=0"`
	LowStockThreshold int        `json:"low_stock_threshold" validate:"min=0"`
	TrackInventory    bool       `json:"track_inventory"`
	Status            string     `json:"status" validate:"omitempty,product_status"`
	Condition         string     `json:"condition" validate:"omitempty,product_condition"`
	Rating            float64    `json:"rating" validate:"min=0,max=5"`
	AverageRating     float64    `json:"average_rating" validate:"min=0,max=5"`
	DiscountPct       float64    `json:"discount_percentage" validate:"min=0,max=100"`
	DiscountExpires   *time.Time `json:"discount_expires"`
	Tags              []string   `json:"tags"`
	Images            []string   `json:"images"`
	Specifications    []string   `json:"specifications"`
	ThumbnailURL      *string    `json:"thumbnail_url" validate:"omitempty,url"`
	Brand             *string    `json:"brand" validate:"omitempty,max=100"`
	Featured          bool       `json:"featured"`
	CategoryID        uuid.UUID  `json:"category_id" validate:"required"`
	RelatedProducts   []uuid.UUID `json:"related_products"`
}

// UpdateProductRequest merges provided fields over the existing record,
// last-writer-wins.
type UpdateProductRequest struct {
	Name              *string     `json:"name" validate:"omitempty,min=2,max=255"`
	Description       *string     `json:"description"`
	Price             *float64    `json:"price" validate:"omitempty,min=0"`
	CompareAtPrice    *float64    `json:"compare_at_price" validate:"omitempty,min=0"`
	SKU               *string     `json:"sku" validate:"omitempty,max=100"`
	Stock             *int        `json:"stock" validate:"omitempty,min=0"`
	LowStockThreshold *int        `json:"low_stock_threshold" validate:"omitempty,min=0"`
	TrackInventory    *bool       `json:"track_inventory"`
	Status            *string     `json:"status" validate:"omitempty,product_status"`
	Condition         *string     `json:"condition" validate:"omitempty,product_condition"`
	Rating            *float64    `json:"rating" validate:"omitempty,min=0,max=5"`
	AverageRating     *float64    `json:"average_rating" validate:"omitempty,min=0,max=5"`
	DiscountPct       *float64    `json:"discount_percentage" validate:"omitempty,min=0,max=100"`
	DiscountExpires   *time.Time  `json:"discount_expires"`
	Tags              []string    `json:"tags"`
	Images            []string    `json:"images"`
	Specifications    []string    `json:"specifications"`
	ThumbnailURL      *string     `json:"thumbnail_url" validate:"omitempty,url"`
	Brand             *string     `json:"brand" validate:"omitempty,max=100"`
	Featured          *bool       `json:"featured"`
	CategoryID        *uuid.UUID  `json:"category_id"`
	RelatedProducts   []uuid.UUID `json:"related_products"`
}

type RejectProductRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`

	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compare_at_price,omitempty"`
	SKU            string   `json:"sku"`

	Stock             int  `json:"stock"`
	LowStockThreshold int  `json:"low_stock_threshold"`
	TrackInventory    bool `json:"track_inventory"`

	Status    string `json:"status"`
	Condition string `json:"condition"`

	Rating        float64 `json:"rating"`
	AverageRating float64 `json:"average_rating"`

	DiscountPercentage float64    `json:"discount_percentage"`
	DiscountExpires    *time.Time `json:"discount_expires,omitempty"`

	Tags           []string `json:"tags,omitempty"`
	Images         []string `json:"images,omitempty"`
	Specifications []string `json:"specifications,omitempty"`
	ThumbnailURL   *string  `json:"thumbnail_url,omitempty"`
	Brand          *string  `json:"brand,omitempty"`
	Featured       bool     `json:"featured"`

	Category        *CategoryResponse  `json:"category,omitempty"`
	RelatedProducts []*ProductResponse `json:"related_products,omitempty"`

	CreatedBy  *accountUsecase.AccountResponse `json:"created_by,omitempty"`
	ApprovedBy *accountUsecase.AccountResponse `json:"approved_by,omitempty"`
	ApprovedAt *time.Time                      `json:"approved_at,omitempty"`

	RejectionReason *string `json:"rejection_reason,omitempty"`

	// Derived fields recomputed on every read.
	DiscountedPrice     float64 `json:"discounted_price"`
	ComputedDiscountPct float64 `json:"computed_discount_percentage"`
	IsLowStock          bool    `json:"is_low_stock"`
	CanPurchase         bool    `json:"can_purchase"`

	ViewCount int       `json:"view_count"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToCategoryResponse(c *domainCatalog.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ToProductResponse(p *domainCatalog.Product) *ProductResponse {
	if p == nil {
		return nil
	}

	resp := &ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Description:         p.Description,
		Price:               p.Price,
		CompareAtPrice:      p.CompareAtPrice,
		SKU:                 p.SKU,
		Stock:               p.Stock,
		LowStockThreshold:   p.LowStockThreshold,
		TrackInventory:      p.TrackInventory,
		Status:              string(p.Status),
		Condition:           string(p.Condition),
		Rating:              p.Rating,
		AverageRating:       p.AverageRating,
		DiscountPercentage:  p.DiscountPercentage,
		DiscountExpires:     p.DiscountExpires,
		Tags:                p.Tags,
		Images:              p.Images,
		Specifications:      p.Specifications,
		ThumbnailURL:        p.ThumbnailURL,
		Brand:               p.Brand,
		Featured:            p.Featured,
		Category:            ToCategoryResponse(p.Category),
		ApprovedAt:          p.ApprovedAt,
		RejectionReason:     p.RejectionReason,
		DiscountedPrice:     p.DiscountedPrice(),
		ComputedDiscountPct: p.ComputedDiscountPercentage(),
		IsLowStock:          p.IsLowStock(),
		CanPurchase:         p.CanPurchase(),
		ViewCount:           p.ViewCount,
		IsDeleted:           p.IsDeleted,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}

	if p.CreatedBy != nil {
		resp.CreatedBy = accountUsecase.ToAccountResponse(p.CreatedBy)
	}
	if p.ApprovedBy != nil {
		resp.ApprovedBy = accountUsecase.ToAccountResponse(p.ApprovedBy)
	}
	for _, rp := range p.RelatedProducts {
		resp.RelatedProducts = append(resp.RelatedProducts, ToProductResponse(rp))
	}

	return resp
}
