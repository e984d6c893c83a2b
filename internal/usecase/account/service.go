package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"marketplace-backend/internal/config"
	domainAccount "marketplace-backend/internal/domain/account"
	"marketplace-backend/internal/logger"
	"marketplace-backend/internal/token"
	appErrors "marketplace-backend/pkg/errors"
	"marketplace-backend/pkg/utils"
)

// Service implements the account use cases: registration, login, email
// verification, password reset and session revocation.
type Service struct {
	accountRepo domainAccount.Repository
	issuer      *token.Issuer
	blacklist   *token.Blacklist
	config      *config.Config
}

func NewService(
	accountRepo domainAccount.Repository,
	issuer *token.Issuer,
	blacklist *token.Blacklist,
	cfg *config.Config,
) *Service {
	return &Service{
		accountRepo: accountRepo,
		issuer:      issuer,
		blacklist:   blacklist,
		config:      cfg,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))

	// Email and phone must each be unique among non-deleted accounts.
	if _, err := s.accountRepo.GetByEmail(ctx, normalizedEmail); err == nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("email", normalizedEmail),
			zap.String("event", "registration_failed_duplicate_email"),
		)
		return nil, appErrors.ErrAccountAlreadyExists
	} else if !errors.Is(err, domainAccount.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	if _, err := s.accountRepo.GetByPhone(ctx, req.Phone); err == nil {
		logger.Warn("Registration attempt with existing phone",
			zap.String("phone", req.Phone),
			zap.String("event", "registration_failed_duplicate_phone"),
		)
		return nil, appErrors.ErrAccountAlreadyExists
	} else if !errors.Is(err, domainAccount.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing phone: %w", err)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := domainAccount.Role(req.Role)
	if role == "" {
		role = domainAccount.RoleCustomer
	}
	if !role.Valid() {
		return nil, appErrors.ErrInvalidRole
	}

	verificationToken, err := token.NewSingleUseToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}
	verificationExp := time.Now().Add(time.Duration(s.config.Token.VerificationExpiryHours) * time.Hour)

	acct := &domainAccount.Account{
		Email:                  normalizedEmail,
		PasswordHash:           hashedPassword,
		Firstname:              req.Firstname,
		Lastname:               req.Lastname,
		Phone:                  req.Phone,
		Address:                req.Address,
		City:                   req.City,
		State:                  req.State,
		PostalCode:             req.PostalCode,
		Birthday:               req.Birthday,
		Occupation:             req.Occupation,
		Nationality:            req.Nationality,
		AvatarURL:              req.AvatarURL,
		Role:                   role,
		IsActive:               true,
		IsEmailVerified:        false,
		EmailVerificationToken: &verificationToken,
		EmailVerificationExp:   &verificationExp,
	}
	acct.ProfileComplete = acct.ProfileIsComplete()

	if err := s.accountRepo.Create(ctx, acct); err != nil {
		if errors.Is(err, domainAccount.ErrAccountAlreadyExists) {
			return nil, appErrors.ErrAccountAlreadyExists
		}
		return nil, err
	}

	sessionToken, err := s.issuer.IssueSessionToken(acct.ID, acct.Email, acct.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	logger.Info("Account registered successfully",
		zap.String("account_id", acct.ID.String()),
		zap.String("email", acct.Email),
		zap.String("role", string(acct.Role)),
		zap.String("event", "account_registered"),
	)

	// The verification email is the mail collaborator's job; the token is
	// returned alongside the account.
	return &RegisterResponse{
		User:              ToAccountResponse(acct),
		Token:             sessionToken,
		VerificationToken: verificationToken,
	}, nil
}

func (s *Service) VerifyEmail(ctx context.Context, verificationToken string) (*AccountResponse, error) {
	acct, err := s.accountRepo.GetByVerificationToken(ctx, verificationToken)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			logger.Warn("Email verification attempt with unknown token",
				zap.String("event", "email_verification_failed_unknown_token"),
			)
			return nil, appErrors.ErrInvalidToken
		}
		return nil, err
	}

	if acct.VerificationTokenExpired(time.Now()) {
		logger.Warn("Email verification attempt with expired token",
			zap.String("account_id", acct.ID.String()),
			zap.String("event", "email_verification_failed_expired_token"),
		)
		return nil, appErrors.ErrInvalidToken
	}

	acct.IsEmailVerified = true
	acct.ClearVerificationToken()
	acct.ProfileComplete = acct.ProfileIsComplete()

	if err := s.accountRepo.Update(ctx, acct); err != nil {
		return nil, err
	}

	logger.Info("Email verified successfully",
		zap.String("account_id", acct.ID.String()),
		zap.String("email", acct.Email),
		zap.String("event", "email_verified"),
	)

	return ToAccountResponse(acct), nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))

	acct, err := s.accountRepo.GetByEmail(ctx, normalizedEmail)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", normalizedEmail),
				zap.String("event", "login_failed_account_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !acct.IsActive {
		logger.Warn("Login attempt for inactive account",
			zap.String("account_id", acct.ID.String()),
			zap.String("email", acct.Email),
			zap.String("event", "login_failed_inactive_account"),
		)
		return nil, appErrors.ErrAccountInactive
	}

	if !utils.CheckPassword(acct.PasswordHash, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("account_id", acct.ID.String()),
			zap.String("email", acct.Email),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	now := time.Now()
	acct.PreviousLogin = acct.LastLogin
	acct.LastLogin = &now

	if err := s.accountRepo.Update(ctx, acct); err != nil {
		return nil, err
	}

	sessionToken, err := s.issuer.IssueSessionToken(acct.ID, acct.Email, acct.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	logger.Info("Account logged in successfully",
		zap.String("account_id", acct.ID.String()),
		zap.String("email", acct.Email),
		zap.String("role", string(acct.Role)),
		zap.String("event", "login_success"),
	)

	return &LoginResponse{
		User:  ToAccountResponse(acct),
		Token: sessionToken,
	}, nil
}

func (s *Service) RequestPasswordReset(ctx context.Context, email string) (*ResetTokenResponse, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))

	acct, err := s.accountRepo.GetByEmail(ctx, normalizedEmail)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			logger.Info("Password reset requested for non-existent email",
				zap.String("email", normalizedEmail),
				zap.String("event", "password_reset_requested_unknown_email"),
			)
			return nil, appErrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to retrieve account: %w", err)
	}

	resetToken, err := token.NewSingleUseToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}
	resetExp := time.Now().Add(time.Duration(s.config.Token.ResetExpiryMinutes) * time.Minute)

	acct.PasswordResetToken = &resetToken
	acct.PasswordResetExp = &resetExp

	if err := s.accountRepo.Update(ctx, acct); err != nil {
		return nil, err
	}

	logger.Info("Password reset token generated",
		zap.String("account_id", acct.ID.String()),
		zap.String("email", acct.Email),
		zap.Time("expires_at", resetExp),
		zap.String("event", "password_reset_token_generated"),
	)

	// The reset email is the mail collaborator's job; the token is returned
	// to the caller.
	return &ResetTokenResponse{ResetToken: resetToken}, nil
}

func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	acct, err := s.accountRepo.GetByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			logger.Warn("Password reset attempt with unknown token",
				zap.String("event", "password_reset_failed_unknown_token"),
			)
			return appErrors.ErrInvalidToken
		}
		return err
	}

	if acct.ResetTokenExpired(time.Now()) {
		logger.Warn("Password reset attempt with expired token",
			zap.String("account_id", acct.ID.String()),
			zap.String("event", "password_reset_failed_expired_token"),
		)
		return appErrors.ErrTokenExpired
	}

	if utils.CheckPassword(acct.PasswordHash, req.NewPassword) {
		return appErrors.ErrSamePassword
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.accountRepo.UpdatePassword(ctx, acct.ID, hashedPassword); err != nil {
		return err
	}

	acct.ClearResetToken()
	if err := s.accountRepo.Update(ctx, acct); err != nil {
		logger.Error("Failed to clear password reset token",
			zap.String("account_id", acct.ID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Password reset successfully",
		zap.String("account_id", acct.ID.String()),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

// Logout revokes the presented session token. The signature is verified but
// expiration is ignored so that an expired token can still be blacklisted;
// revoking an already-revoked token is a no-op.
func (s *Service) Logout(ctx context.Context, sessionToken string) error {
	claims, err := s.issuer.VerifySessionTokenSkipExpiry(sessionToken)
	if err != nil {
		logger.Warn("Logout attempt with malformed token",
			zap.String("event", "logout_failed_invalid_token"),
		)
		return appErrors.ErrInvalidToken
	}

	s.blacklist.Add(sessionToken)

	logger.Info("Session token revoked",
		zap.String("account_id", claims.AccountID.String()),
		zap.String("event", "logout_success"),
	)

	return nil
}

func (s *Service) GetProfile(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			return nil, appErrors.ErrAccountNotFound
		}
		return nil, err
	}

	return ToAccountResponse(acct), nil
}

func (s *Service) UpdateProfile(ctx context.Context, accountID uuid.UUID, req *UpdateProfileRequest) (*AccountResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			return nil, appErrors.ErrAccountNotFound
		}
		return nil, err
	}

	if req.Firstname != nil {
		acct.Firstname = *req.Firstname
	}
	if req.Lastname != nil {
		acct.Lastname = *req.Lastname
	}
	if req.Phone != nil {
		acct.Phone = *req.Phone
	}
	if req.Address != nil {
		acct.Address = req.Address
	}
	if req.City != nil {
		acct.City = req.City
	}
	if req.State != nil {
		acct.State = req.State
	}
	if req.PostalCode != nil {
		acct.PostalCode = req.PostalCode
	}
	if req.Birthday != nil {
		acct.Birthday = req.Birthday
	}
	if req.Occupation != nil {
		acct.Occupation = req.Occupation
	}
	if req.Nationality != nil {
		acct.Nationality = req.Nationality
	}
	if req.AvatarURL != nil {
		acct.AvatarURL = req.AvatarURL
	}

	acct.ProfileComplete = acct.ProfileIsComplete()

	if err := s.accountRepo.Update(ctx, acct); err != nil {
		return nil, err
	}

	return ToAccountResponse(acct), nil
}

func (s *Service) ChangePassword(ctx context.Context, accountID uuid.UUID, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			return appErrors.ErrAccountNotFound
		}
		return err
	}

	if !utils.CheckPassword(acct.PasswordHash, req.OldPassword) {
		logger.Warn("Password change attempt with invalid old password",
			zap.String("account_id", acct.ID.String()),
			zap.String("event", "password_change_failed_invalid_old_password"),
		)
		return appErrors.ErrInvalidCredentials
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.accountRepo.UpdatePassword(ctx, accountID, hashedPassword); err != nil {
		return err
	}

	logger.Info("Password changed successfully",
		zap.String("account_id", acct.ID.String()),
		zap.String("event", "password_change_success"),
	)

	return nil
}

func (s *Service) GetAllAccounts(ctx context.Context) ([]*AccountResponse, error) {
	accounts, err := s.accountRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*AccountResponse, len(accounts))
	for i, acct := range accounts {
		responses[i] = ToAccountResponse(acct)
	}

	return responses, nil
}

// SetAccountActive toggles the activity flag by administrative action,
// independently of email verification.
func (s *Service) SetAccountActive(ctx context.Context, accountID uuid.UUID, active bool) error {
	if err := s.accountRepo.SetActive(ctx, accountID, active); err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			return appErrors.ErrAccountNotFound
		}
		return err
	}

	logger.Info("Account activity changed",
		zap.String("account_id", accountID.String()),
		zap.Bool("active", active),
		zap.String("event", "account_activity_changed"),
	)

	return nil
}

func (s *Service) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	if err := s.accountRepo.Delete(ctx, accountID); err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			return appErrors.ErrAccountNotFound
		}
		return err
	}

	logger.Info("Account deleted successfully",
		zap.String("account_id", accountID.String()),
		zap.String("event", "account_deleted"),
	)

	return nil
}
