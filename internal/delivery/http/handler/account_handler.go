package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"marketplace-backend/internal/logger"
	"marketplace-backend/internal/middleware"
	"marketplace-backend/internal/usecase/account"
	appErrors "marketplace-backend/pkg/errors"
	"marketplace-backend/pkg/utils"
)

type AccountHandler struct {
	service *account.Service
}

func NewAccountHandler(service *account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

func (h *AccountHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/account/signup", h.Register)
		auth.POST("/account/verify-email/:token", h.VerifyEmail)
		auth.POST("/account/login", h.Login)
		auth.POST("/request-password-reset", h.RequestPasswordReset)
		auth.POST("/reset-password", h.ResetPassword)
	}
}

func (h *AccountHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/auth/profile", h.GetProfile)
	router.POST("/auth/logout", h.Logout)

	profile := router.Group("/profile")
	{
		profile.PUT("", h.UpdateProfile)
		profile.POST("/change-password", h.ChangePassword)
	}
}

func (h *AccountHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/users", h.GetAllAccounts)
	router.PATCH("/users/:account_id/active", h.SetAccountActive)
	router.DELETE("/users/:account_id", h.DeleteAccount)
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req account.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)
	req.Firstname = utils.SanitizeString(req.Firstname)
	req.Lastname = utils.SanitizeString(req.Lastname)
	req.Phone = utils.SanitizePhone(req.Phone)

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Account registered successfully", resp)
}

func (h *AccountHandler) VerifyEmail(c *gin.Context) {
	verificationToken := c.Param("token")
	if verificationToken == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Verification token required")
		return
	}

	resp, err := h.service.VerifyEmail(c.Request.Context(), verificationToken)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Email verified successfully", resp)
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req account.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

// RequestPasswordReset always answers with a neutral message so the response
// does not reveal whether the email exists; the specific outcome is logged.
func (h *AccountHandler) RequestPasswordReset(c *gin.Context) {
	var req account.ForgotPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	resp, err := h.service.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, appErrors.ErrAccountNotFound) {
			utils.SuccessResponse(c, http.StatusOK, "If the email exists, a reset link has been sent", nil)
			return
		}
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "If the email exists, a reset link has been sent", resp)
}

func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var req account.ResetPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}

func (h *AccountHandler) Logout(c *gin.Context) {
	sessionToken := c.GetString(middleware.ContextToken)
	if sessionToken == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Token required")
		return
	}

	if err := h.service.Logout(c.Request.Context(), sessionToken); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Logout successful", nil)
}

func (h *AccountHandler) GetProfile(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Account not authenticated")
		return
	}

	resp, err := h.service.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", resp)
}

func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Account not authenticated")
		return
	}

	var req account.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Phone != nil {
		sanitized := utils.SanitizePhone(*req.Phone)
		req.Phone = &sanitized
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), accountID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", resp)
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Account not authenticated")
		return
	}

	var req account.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), accountID, &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password changed successfully", nil)
}

func (h *AccountHandler) GetAllAccounts(c *gin.Context) {
	accounts, err := h.service.GetAllAccounts(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Accounts retrieved successfully", accounts)
}

func (h *AccountHandler) SetAccountActive(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("account_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid account ID")
		return
	}

	active, err := strconv.ParseBool(c.Query("active"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid active flag")
		return
	}

	if err := h.service.SetAccountActive(c.Request.Context(), accountID, active); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Account activity updated", nil)
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("account_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid account ID")
		return
	}

	if err := h.service.DeleteAccount(c.Request.Context(), accountID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Account deleted successfully", nil)
}

func currentAccountID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.ContextAccountID)
	if !exists {
		return uuid.Nil, false
	}

	accountID, ok := value.(uuid.UUID)
	return accountID, ok
}

// respondWithError maps service errors to their distinct outward status; the
// specific error kind is preserved instead of collapsing to a generic 500.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrAccountAlreadyExists),
		errors.Is(err, appErrors.ErrCategoryAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrTokenExpired),
		errors.Is(err, appErrors.ErrSamePassword),
		errors.Is(err, appErrors.ErrInvalidRole):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appErrors.ErrAccountInactive),
		errors.Is(err, appErrors.ErrPermissionDenied),
		errors.Is(err, appErrors.ErrInsufficientPermissions):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, appErrors.ErrAccountNotFound),
		errors.Is(err, appErrors.ErrProductNotFound),
		errors.Is(err, appErrors.ErrCategoryNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		requestID := middleware.GetRequestID(c)
		logger.Error("Internal server error",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
