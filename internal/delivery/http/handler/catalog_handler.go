package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainAccount "marketplace-backend/internal/domain/account"
	"marketplace-backend/internal/middleware"
	"marketplace-backend/internal/usecase/catalog"
	"marketplace-backend/pkg/utils"
)

type CatalogHandler struct {
	service *catalog.Service
}

func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", h.GetAllProducts)
		products.GET("/:product_id", h.GetProductByID)
	}

	categories := router.Group("/categories")
	{
		categories.GET("", h.GetAllCategories)
		categories.GET("/:category_id", h.GetCategoryByID)
	}
}

func (h *CatalogHandler) RegisterVendorRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.PUT("/:product_id", h.UpdateProduct)
		products.DELETE("/:product_id", h.SoftDeleteProduct)
	}
}

func (h *CatalogHandler) RegisterManagementRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.POST("/:product_id/approve", h.ApproveProduct)
		products.POST("/:product_id/reject", h.RejectProduct)
	}
}

func (h *CatalogHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.DELETE("/products/:product_id", h.HardDeleteProduct)
	router.POST("/categories", h.CreateCategory)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	acct, ok := currentAccount(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Account not authenticated")
		return
	}

	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	req.SKU = utils.SanitizeString(req.SKU)

	resp, err := h.service.CreateProduct(c.Request.Context(), &req, acct)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Product created successfully", resp)
}

func (h *CatalogHandler) GetAllProducts(c *gin.Context) {
	products, err := h.service.GetAllProducts(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Products retrieved successfully", products)
}

func (h *CatalogHandler) GetProductByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	resp, err := h.service.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product retrieved successfully", resp)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	acct, ok := currentAccount(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Account not authenticated")
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateProduct(c.Request.Context(), productID, &req, acct)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product updated successfully", resp)
}

func (h *CatalogHandler) SoftDeleteProduct(c *gin.Context) {
	acct, ok := currentAccount(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Account not authenticated")
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.service.SoftDeleteProduct(c.Request.Context(), productID, acct); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *CatalogHandler) HardDeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.service.HardDeleteProduct(c.Request.Context(), productID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product permanently deleted", nil)
}

func (h *CatalogHandler) ApproveProduct(c *gin.Context) {
	acct, ok := currentAccount(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Account not authenticated")
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	resp, err := h.service.ApproveProduct(c.Request.Context(), productID, acct)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product approved", resp)
}

func (h *CatalogHandler) RejectProduct(c *gin.Context) {
	acct, ok := currentAccount(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Account not authenticated")
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req catalog.RejectProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.RejectProduct(c.Request.Context(), productID, &req, acct)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product rejected", resp)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req catalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = utils.SanitizeString(req.Name)

	resp, err := h.service.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Category created successfully", resp)
}

func (h *CatalogHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.service.GetAllCategories(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", categories)
}

func (h *CatalogHandler) GetCategoryByID(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("category_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	resp, err := h.service.GetCategoryByID(c.Request.Context(), categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Category retrieved successfully", resp)
}

// currentAccount rebuilds the acting account from the verified session
// claims; the authorization rules only need identity and role.
func currentAccount(c *gin.Context) (*domainAccount.Account, bool) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return nil, false
	}

	role, exists := c.Get(middleware.ContextRole)
	if !exists {
		return nil, false
	}

	return &domainAccount.Account{
		ID:   accountID,
		Role: domainAccount.Role(role.(string)),
	}, true
}
