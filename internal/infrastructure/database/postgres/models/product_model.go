package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductModel represents the database model for Product
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`

	Price          float64  `gorm:"type:decimal(10,2);not null;check:price >= 0"`
	CompareAtPrice *float64 `gorm:"type:decimal(10,2)"`
	SKU            string   `gorm:"type:varchar(100);not null"`

	Stock             int  `gorm:"type:integer;not null;default:0;check:stock >= 0"`
	LowStockThreshold int  `gorm:"type:integer;not null;default:0;check:low_stock_threshold >= 0"`
	TrackInventory    bool `gorm:"default:true;not null"`

	Status    string `gorm:"type:varchar(50);not null;default:'DRAFT';index"`
	Condition string `gorm:"type:varchar(50);not null;default:'NEW'"`

	Rating        float64 `gorm:"type:decimal(3,2);not null;default:0;check:rating >= 0 AND rating <= 5"`
	AverageRating float64 `gorm:"type:decimal(4,2);not null;default:0"`

	DiscountPercentage float64    `gorm:"type:decimal(5,2);not null;default:0;check:discount_percentage >= 0 AND discount_percentage <= 100"`
	DiscountExpires    *time.Time `gorm:"type:timestamptz"`

	// Ordered string lists stored comma-joined in a single text column.
	Tags           string `gorm:"type:text"`
	Images         string `gorm:"type:text"`
	Specifications string `gorm:"type:text"`

	ThumbnailURL *string `gorm:"type:text"`
	Brand        *string `gorm:"type:varchar(100)"`
	Featured     bool    `gorm:"default:false;not null"`

	CategoryID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Category   *CategoryModel `gorm:"foreignKey:CategoryID"`

	Related []*ProductModel `gorm:"many2many:product_related;joinForeignKey:ProductID;joinReferences:RelatedID"`

	CreatedByID uuid.UUID     `gorm:"type:uuid;not null;index"`
	CreatedBy   *AccountModel `gorm:"foreignKey:CreatedByID"`

	ApprovedByID    *uuid.UUID    `gorm:"type:uuid"`
	ApprovedBy      *AccountModel `gorm:"foreignKey:ApprovedByID"`
	ApprovedAt      *time.Time    `gorm:"type:timestamptz"`
	RejectionReason *string       `gorm:"type:text"`

	ViewCount int `gorm:"type:integer;not null;default:0"`

	IsDeleted bool           `gorm:"default:false;not null;index"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ProductModel) TableName() string {
	return "products"
}

// CategoryModel represents the database model for Category
type CategoryModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description *string        `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (CategoryModel) TableName() string {
	return "categories"
}
