package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainAccount "marketplace-backend/internal/domain/account"
	domainCatalog "marketplace-backend/internal/domain/catalog"
	"marketplace-backend/internal/logger"
	appErrors "marketplace-backend/pkg/errors"
	"marketplace-backend/pkg/utils"
)

// Service implements the catalog use cases: product CRUD gated by role and
// ownership, the approval workflow and category management.
type Service struct {
	productRepo  domainCatalog.ProductRepository
	categoryRepo domainCatalog.CategoryRepository
}

func NewService(
	productRepo domainCatalog.ProductRepository,
	categoryRepo domainCatalog.CategoryRepository,
) *Service {
	return &Service{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, req *CreateProductRequest, acct *domainAccount.Account) (*ProductResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, domainCatalog.ErrCategoryNotFound) {
			return nil, appErrors.ErrCategoryNotFound
		}
		return nil, err
	}

	// Missing related-product IDs are dropped, not an error.
	related, err := s.productRepo.GetByIDs(ctx, req.RelatedProducts)
	if err != nil {
		return nil, err
	}

	status := domainCatalog.ProductStatus(req.Status)
	if status == "" {
		status = domainCatalog.StatusDraft
	}
	condition := domainCatalog.ProductCondition(req.Condition)
	if condition == "" {
		condition = domainCatalog.ConditionNew
	}

	product := &domainCatalog.Product{
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		CompareAtPrice:     req.CompareAtPrice,
		SKU:                req.SKU,
		Stock:              req.Stock,
		LowStockThreshold:  req.LowStockThreshold,
		TrackInventory:     req.TrackInventory,
		Status:             status,
		Condition:          condition,
		Rating:             req.Rating,
		AverageRating:      req.AverageRating,
		DiscountPercentage: req.DiscountPct,
		DiscountExpires:    req.DiscountExpires,
		Tags:               req.Tags,
		Images:             req.Images,
		Specifications:     req.Specifications,
		ThumbnailURL:       req.ThumbnailURL,
		Brand:              req.Brand,
		Featured:           req.Featured,
		CategoryID:         category.ID,
		Category:           category,
		RelatedProducts:    related,
		CreatedByID:        acct.ID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
		zap.String("category_id", category.ID.String()),
		zap.String("created_by", acct.ID.String()),
		zap.String("event", "product_created"),
	)

	return ToProductResponse(product), nil
}

func (s *Service) GetAllProducts(ctx context.Context) ([]*ProductResponse, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}

	return responses, nil
}

func (s *Service) GetProductByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.IncrementViewCount(ctx, productID); err != nil {
		logger.Error("Failed to increment product view count",
			zap.String("product_id", productID.String()),
			zap.Error(err),
		)
	} else {
		product.ViewCount++
	}

	return ToProductResponse(product), nil
}

func (s *Service) UpdateProduct(ctx context.Context, productID uuid.UUID, req *UpdateProductRequest, acct *domainAccount.Account) (*ProductResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	product, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !product.CanBeEditedBy(acct) {
		logger.Warn("Product update denied",
			zap.String("product_id", product.ID.String()),
			zap.String("account_id", acct.ID.String()),
			zap.String("role", string(acct.Role)),
			zap.String("event", "product_update_denied"),
		)
		return nil, appErrors.ErrPermissionDenied
	}

	if req.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *req.CategoryID)
		if err != nil {
			if errors.Is(err, domainCatalog.ErrCategoryNotFound) {
				return nil, appErrors.ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = category.ID
		product.Category = category
	}

	if req.RelatedProducts != nil {
		related, err := s.productRepo.GetByIDs(ctx, req.RelatedProducts)
		if err != nil {
			return nil, err
		}
		product.RelatedProducts = related
	}

	mergeProductFields(product, req)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	logger.Info("Product updated",
		zap.String("product_id", product.ID.String()),
		zap.String("account_id", acct.ID.String()),
		zap.String("event", "product_updated"),
	)

	return ToProductResponse(product), nil
}

func (s *Service) SoftDeleteProduct(ctx context.Context, productID uuid.UUID, acct *domainAccount.Account) error {
	product, err := s.getProduct(ctx, productID)
	if err != nil {
		return err
	}

	if !product.CanBeEditedBy(acct) {
		return appErrors.ErrPermissionDenied
	}

	if err := s.productRepo.SoftDelete(ctx, productID); err != nil {
		if errors.Is(err, domainCatalog.ErrProductNotFound) {
			return appErrors.ErrProductNotFound
		}
		return err
	}

	logger.Info("Product soft deleted",
		zap.String("product_id", productID.String()),
		zap.String("account_id", acct.ID.String()),
		zap.String("event", "product_soft_deleted"),
	)

	return nil
}

// HardDeleteProduct removes the row permanently. Authorization is enforced
// at the route layer, which restricts it to administrative roles.
func (s *Service) HardDeleteProduct(ctx context.Context, productID uuid.UUID) error {
	affected, err := s.productRepo.HardDelete(ctx, productID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErrors.ErrProductNotFound
	}

	logger.Info("Product hard deleted",
		zap.String("product_id", productID.String()),
		zap.String("event", "product_hard_deleted"),
	)

	return nil
}

func (s *Service) ApproveProduct(ctx context.Context, productID uuid.UUID, acct *domainAccount.Account) (*ProductResponse, error) {
	product, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !product.CanBeApprovedBy(acct) {
		return nil, appErrors.ErrPermissionDenied
	}

	now := time.Now()
	product.Status = domainCatalog.StatusApproved
	product.ApprovedByID = &acct.ID
	product.ApprovedAt = &now
	product.RejectionReason = nil

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	logger.Info("Product approved",
		zap.String("product_id", product.ID.String()),
		zap.String("approved_by", acct.ID.String()),
		zap.String("event", "product_approved"),
	)

	return ToProductResponse(product), nil
}

func (s *Service) RejectProduct(ctx context.Context, productID uuid.UUID, req *RejectProductRequest, acct *domainAccount.Account) (*ProductResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	product, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !product.CanBeApprovedBy(acct) {
		return nil, appErrors.ErrPermissionDenied
	}

	product.Status = domainCatalog.StatusRejected
	product.RejectionReason = &req.Reason
	product.ApprovedByID = nil
	product.ApprovedAt = nil

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	logger.Info("Product rejected",
		zap.String("product_id", product.ID.String()),
		zap.String("rejected_by", acct.ID.String()),
		zap.String("event", "product_rejected"),
	)

	return ToProductResponse(product), nil
}

func (s *Service) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*CategoryResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	category := &domainCatalog.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, domainCatalog.ErrCategoryAlreadyExists) {
			return nil, appErrors.ErrCategoryAlreadyExists
		}
		return nil, err
	}

	logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name),
		zap.String("event", "category_created"),
	)

	return ToCategoryResponse(category), nil
}

func (s *Service) GetAllCategories(ctx context.Context) ([]*CategoryResponse, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = ToCategoryResponse(c)
	}

	return responses, nil
}

func (s *Service) GetCategoryByID(ctx context.Context, categoryID uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainCatalog.ErrCategoryNotFound) {
			return nil, appErrors.ErrCategoryNotFound
		}
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

func (s *Service) getProduct(ctx context.Context, productID uuid.UUID) (*domainCatalog.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domainCatalog.ErrProductNotFound) {
			return nil, appErrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

func mergeProductFields(product *domainCatalog.Product, req *UpdateProductRequest) {
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.CompareAtPrice != nil {
		product.CompareAtPrice = req.CompareAtPrice
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	}
	if req.TrackInventory != nil {
		product.TrackInventory = *req.TrackInventory
	}
	if req.Status != nil {
		product.Status = domainCatalog.ProductStatus(*req.Status)
	}
	if req.Condition != nil {
		product.Condition = domainCatalog.ProductCondition(*req.Condition)
	}
	if req.Rating != nil {
		product.Rating = *req.Rating
	}
	if req.AverageRating != nil {
		product.AverageRating = *req.AverageRating
	}
	if req.DiscountPct != nil {
		product.DiscountPercentage = *req.DiscountPct
	}
	if req.DiscountExpires != nil {
		product.DiscountExpires = req.DiscountExpires
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Specifications != nil {
		product.Specifications = req.Specifications
	}
	if req.ThumbnailURL != nil {
		product.ThumbnailURL = req.ThumbnailURL
	}
	if req.Brand != nil {
		product.Brand = req.Brand
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
}
