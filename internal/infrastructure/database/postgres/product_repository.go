package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace-backend/internal/domain/catalog"
	"marketplace-backend/internal/infrastructure/database/postgres/models"
)

// ProductRepository implements catalog.ProductRepository
type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) catalog.ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	if p.Status == "" {
		p.Status = catalog.StatusDraft
	}
	if p.Condition == "" {
		p.Condition = catalog.ConditionNew
	}

	dbModel := toProductModel(p)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	p.ID = dbModel.ID
	p.CreatedAt = dbModel.CreatedAt
	p.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	var dbModel models.ProductModel
	err := r.db.DB.WithContext(ctx).
		Preload("Category").
		Preload("Related").
		Preload("CreatedBy").
		Preload("ApprovedBy").
		Where("id = ?", productID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return toProductEntity(&dbModel), nil
}

// GetByIDs is a best-effort lookup: IDs without a matching product are
// silently skipped.
func (r *ProductRepository) GetByIDs(ctx context.Context, productIDs []uuid.UUID) ([]*catalog.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	var dbModels []models.ProductModel
	err := r.db.DB.WithContext(ctx).Where("id IN ?", productIDs).Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	products := make([]*catalog.Product, len(dbModels))
	for i := range dbModels {
		products[i] = toProductEntity(&dbModels[i])
	}

	return products, nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*catalog.Product, error) {
	var dbModels []models.ProductModel
	err := r.db.DB.WithContext(ctx).
		Preload("Category").
		Preload("Related").
		Preload("CreatedBy").
		Where("is_deleted = ?", false).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	products := make([]*catalog.Product, len(dbModels))
	for i := range dbModels {
		products[i] = toProductEntity(&dbModels[i])
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	p.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":                p.Name,
			"description":         p.Description,
			"price":               p.Price,
			"compare_at_price":    p.CompareAtPrice,
			"sku":                 p.SKU,
			"stock":               p.Stock,
			"low_stock_threshold": p.LowStockThreshold,
			"track_inventory":     p.TrackInventory,
			"status":              string(p.Status),
			"condition":           string(p.Condition),
			"rating":              p.Rating,
			"average_rating":      p.AverageRating,
			"discount_percentage": p.DiscountPercentage,
			"discount_expires":    p.DiscountExpires,
			"tags":                joinList(p.Tags),
			"images":              joinList(p.Images),
			"specifications":      joinList(p.Specifications),
			"thumbnail_url":       p.ThumbnailURL,
			"brand":               p.Brand,
			"featured":            p.Featured,
			"category_id":         p.CategoryID,
			"approved_by_id":      p.ApprovedByID,
			"approved_at":         p.ApprovedAt,
			"rejection_reason":    p.RejectionReason,
			"updated_at":          p.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrProductNotFound
	}

	related := make([]*models.ProductModel, len(p.RelatedProducts))
	for i, rp := range p.RelatedProducts {
		related[i] = &models.ProductModel{ID: rp.ID}
	}
	err := r.db.DB.WithContext(ctx).
		Model(&models.ProductModel{ID: p.ID}).
		Association("Related").
		Replace(related)
	if err != nil {
		return fmt.Errorf("failed to update related products: %w", err)
	}

	return nil
}

func (r *ProductRepository) SoftDelete(ctx context.Context, productID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to soft delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrProductNotFound
	}

	return nil
}

// HardDelete permanently removes the row and reports how many rows were
// affected.
func (r *ProductRepository) HardDelete(ctx context.Context, productID uuid.UUID) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Unscoped().
		Delete(&models.ProductModel{}, "id = ?", productID)

	if result.Error != nil {
		return 0, fmt.Errorf("failed to hard delete product: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *ProductRepository) IncrementViewCount(ctx context.Context, productID uuid.UUID) error {
	err := r.db.DB.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", productID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}

	return nil
}

func toProductModel(p *catalog.Product) *models.ProductModel {
	m := &models.ProductModel{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price,
		CompareAtPrice:     p.CompareAtPrice,
		SKU:                p.SKU,
		Stock:              p.Stock,
		LowStockThreshold:  p.LowStockThreshold,
		TrackInventory:     p.TrackInventory,
		Status:             string(p.Status),
		Condition:          string(p.Condition),
		Rating:             p.Rating,
		AverageRating:      p.AverageRating,
		DiscountPercentage: p.DiscountPercentage,
		DiscountExpires:    p.DiscountExpires,
		Tags:               joinList(p.Tags),
		Images:             joinList(p.Images),
		Specifications:     joinList(p.Specifications),
		ThumbnailURL:       p.ThumbnailURL,
		Brand:              p.Brand,
		Featured:           p.Featured,
		CategoryID:         p.CategoryID,
		CreatedByID:        p.CreatedByID,
		ApprovedByID:       p.ApprovedByID,
		ApprovedAt:         p.ApprovedAt,
		RejectionReason:    p.RejectionReason,
		ViewCount:          p.ViewCount,
		IsDeleted:          p.IsDeleted,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}

	for _, rp := range p.RelatedProducts {
		m.Related = append(m.Related, &models.ProductModel{ID: rp.ID})
	}

	return m
}

func toProductEntity(m *models.ProductModel) *catalog.Product {
	p := &catalog.Product{
		ID:                 m.ID,
		Name:               m.Name,
		Description:        m.Description,
		Price:              m.Price,
		CompareAtPrice:     m.CompareAtPrice,
		SKU:                m.SKU,
		Stock:              m.Stock,
		LowStockThreshold:  m.LowStockThreshold,
		TrackInventory:     m.TrackInventory,
		Status:             catalog.ProductStatus(m.Status),
		Condition:          catalog.ProductCondition(m.Condition),
		Rating:             m.Rating,
		AverageRating:      m.AverageRating,
		DiscountPercentage: m.DiscountPercentage,
		DiscountExpires:    m.DiscountExpires,
		Tags:               splitList(m.Tags),
		Images:             splitList(m.Images),
		Specifications:     splitList(m.Specifications),
		ThumbnailURL:       m.ThumbnailURL,
		Brand:              m.Brand,
		Featured:           m.Featured,
		CategoryID:         m.CategoryID,
		CreatedByID:        m.CreatedByID,
		ApprovedByID:       m.ApprovedByID,
		ApprovedAt:         m.ApprovedAt,
		RejectionReason:    m.RejectionReason,
		ViewCount:          m.ViewCount,
		IsDeleted:          m.IsDeleted,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}

	if m.Category != nil {
		p.Category = toCategoryEntity(m.Category)
	}
	if m.CreatedBy != nil {
		p.CreatedBy = toAccountEntity(m.CreatedBy)
	}
	if m.ApprovedBy != nil {
		p.ApprovedBy = toAccountEntity(m.ApprovedBy)
	}
	for _, rm := range m.Related {
		p.RelatedProducts = append(p.RelatedProducts, toProductEntity(rm))
	}
	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		p.DeletedAt = &deletedAt
	}

	return p
}

func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
