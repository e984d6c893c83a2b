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

// CategoryRepository implements catalog.CategoryRepository
type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) catalog.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()

	dbModel := toCategoryModel(c)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
			return catalog.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	c.ID = dbModel.ID
	c.CreatedAt = dbModel.CreatedAt
	c.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID uuid.UUID) (*catalog.Category, error) {
	var dbModel models.CategoryModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", categoryID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return toCategoryEntity(&dbModel), nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*catalog.Category, error) {
	var dbModel models.CategoryModel
	err := r.db.DB.WithContext(ctx).Where("name = ?", name).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return toCategoryEntity(&dbModel), nil
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]*catalog.Category, error) {
	var dbModels []models.CategoryModel
	if err := r.db.DB.WithContext(ctx).Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	categories := make([]*catalog.Category, len(dbModels))
	for i := range dbModels {
		categories[i] = toCategoryEntity(&dbModels[i])
	}

	return categories, nil
}

func toCategoryModel(c *catalog.Category) *models.CategoryModel {
	return &models.CategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCategoryEntity(m *models.CategoryModel) *catalog.Category {
	c := &catalog.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		c.DeletedAt = &deletedAt
	}

	return c
}
