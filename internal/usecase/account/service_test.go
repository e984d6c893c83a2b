package account

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"marketplace-backend/internal/config"
	domainAccount "marketplace-backend/internal/domain/account"
	"marketplace-backend/internal/domain/account/mocks"
	"marketplace-backend/internal/logger"
	"marketplace-backend/internal/token"
	appErrors "marketplace-backend/pkg/errors"
	"marketplace-backend/pkg/utils"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiryMinutes = 15
	cfg.Token.VerificationExpiryHours = 24
	cfg.Token.ResetExpiryMinutes = 60
	return cfg
}

func newTestService(t *testing.T) (*Service, *mocks.MockRepository, *token.Issuer, *token.Blacklist) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	issuer := token.NewIssuer("test-secret", 15)
	blacklist := token.NewBlacklist()
	return NewService(repo, issuer, blacklist, testConfig()), repo, issuer, blacklist
}

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		Firstname: "Jane",
		Lastname:  "Doe",
		Email:     "jane@example.com",
		Password:  "Password1",
		Phone:     "+14155550100",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo, issuer, _ := newTestService(t)

		repo.EXPECT().GetByEmail(ctx, "jane@example.com").Return(nil, domainAccount.ErrAccountNotFound)
		repo.EXPECT().GetByPhone(ctx, "+14155550100").Return(nil, domainAccount.ErrAccountNotFound)

		var created *domainAccount.Account
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, a *domainAccount.Account) error {
				a.ID = uuid.New()
				created = a
				return nil
			})

		resp, err := svc.Register(ctx, validRegisterRequest())
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		if created.Role != domainAccount.RoleCustomer {
			t.Errorf("default role = %q, want CUSTOMER", created.Role)
		}
		if created.IsEmailVerified {
			t.Error("account created already verified")
		}
		if !created.IsActive {
			t.Error("account created inactive")
		}
		if created.EmailVerificationToken == nil || len(*created.EmailVerificationToken) != 24 {
			t.Error("verification token missing or wrong length")
		}
		if created.EmailVerificationExp == nil {
			t.Error("verification token has no expiry")
		}
		if created.ProfileComplete {
			t.Error("sparse profile reported as complete")
		}
		if !utils.CheckPassword(created.PasswordHash, "Password1") {
			t.Error("stored hash does not match the password")
		}

		if resp.VerificationToken != *created.EmailVerificationToken {
			t.Error("response verification token differs from stored one")
		}
		claims, err := issuer.VerifySessionToken(resp.Token)
		if err != nil {
			t.Fatalf("session token does not verify: %v", err)
		}
		if claims.AccountID != created.ID {
			t.Error("session token bound to wrong account")
		}
	})

	t.Run("email is normalized to lowercase", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		repo.EXPECT().GetByEmail(ctx, "jane@example.com").Return(nil, domainAccount.ErrAccountNotFound)
		repo.EXPECT().GetByPhone(ctx, "+14155550100").Return(nil, domainAccount.ErrAccountNotFound)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, a *domainAccount.Account) error {
				if a.Email != "jane@example.com" {
					t.Errorf("stored email = %q, want lowercase", a.Email)
				}
				a.ID = uuid.New()
				return nil
			})

		req := validRegisterRequest()
		req.Email = "JANE@Example.COM"
		if _, err := svc.Register(ctx, req); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		repo.EXPECT().GetByEmail(ctx, "jane@example.com").Return(&domainAccount.Account{}, nil)

		if _, err := svc.Register(ctx, validRegisterRequest()); !errors.Is(err, appErrors.ErrAccountAlreadyExists) {
			t.Errorf("Register() error = %v, want ErrAccountAlreadyExists", err)
		}
	})

	t.Run("duplicate phone", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		repo.EXPECT().GetByEmail(ctx, "jane@example.com").Return(nil, domainAccount.ErrAccountNotFound)
		repo.EXPECT().GetByPhone(ctx, "+14155550100").Return(&domainAccount.Account{}, nil)

		if _, err := svc.Register(ctx, validRegisterRequest()); !errors.Is(err, appErrors.ErrAccountAlreadyExists) {
			t.Errorf("Register() error = %v, want ErrAccountAlreadyExists", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		req := validRegisterRequest()
		req.Password = "alllowercase1"

		_, err := svc.Register(ctx, req)
		var appErr *appErrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != "WEAK_PASSWORD" {
			t.Errorf("Register() error = %v, want WEAK_PASSWORD", err)
		}
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		req := validRegisterRequest()
		req.Role = "ROOT"

		if _, err := svc.Register(ctx, req); err == nil {
			t.Error("Register() accepted unknown role")
		}
	})
}

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("success clears the token", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		tok := "aaaaaaaaaaaaaaaaaaaaaaaa"
		exp := time.Now().Add(time.Hour)
		acct := &domainAccount.Account{
			ID:                     uuid.New(),
			Email:                  "jane@example.com",
			EmailVerificationToken: &tok,
			EmailVerificationExp:   &exp,
		}

		repo.EXPECT().GetByVerificationToken(ctx, tok).Return(acct, nil)
		repo.EXPECT().Update(ctx, acct).DoAndReturn(
			func(_ context.Context, a *domainAccount.Account) error {
				if !a.IsEmailVerified {
					t.Error("account not marked verified")
				}
				if a.EmailVerificationToken != nil || a.EmailVerificationExp != nil {
					t.Error("verification token not cleared")
				}
				return nil
			})

		resp, err := svc.VerifyEmail(ctx, tok)
		if err != nil {
			t.Fatalf("VerifyEmail() error = %v", err)
		}
		if !resp.IsEmailVerified {
			t.Error("response not marked verified")
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		repo.EXPECT().GetByVerificationToken(ctx, "nope").Return(nil, domainAccount.ErrAccountNotFound)

		if _, err := svc.VerifyEmail(ctx, "nope"); !errors.Is(err, appErrors.ErrInvalidToken) {
			t.Errorf("VerifyEmail() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		tok := "aaaaaaaaaaaaaaaaaaaaaaaa"
		exp := time.Now().Add(-time.Hour)
		acct := &domainAccount.Account{
			ID:                     uuid.New(),
			EmailVerificationToken: &tok,
			EmailVerificationExp:   &exp,
		}
		repo.EXPECT().GetByVerificationToken(ctx, tok).Return(acct, nil)

		if _, err := svc.VerifyEmail(ctx, tok); !errors.Is(err, appErrors.ErrInvalidToken) {
			t.Errorf("VerifyEmail() error = %v, want ErrInvalidToken", err)
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := utils.HashPassword("Password1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	t.Run("success stamps login times", func(t *testing.T) {
		svc, repo, issuer, _ := newTestService(t)

		prior := time.Now().Add(-48 * time.Hour)
		acct := &domainAccount.Account{
			ID:           uuid.New(),
			Email:        "jane@example.com",
			PasswordHash: hash,
			Role:         domainAccount.RoleCustomer,
			IsActive:     true,
			LastLogin:    &prior,
		}

		repo.EXPECT().GetByEmail(ctx, "jane@example.com").Return(acct, nil)
		repo.EXPECT().Update(ctx, acct).Return(nil)

		resp, err := svc.Login(ctx, &LoginRequest{Email: "jane@example.com", Password: "Password1"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		if acct.PreviousLogin == nil || !acct.PreviousLogin.Equal(prior) {
			t.Error("PreviousLogin not set to the prior LastLogin")
		}
		if acct.LastLogin == nil || time.Since(*acct.LastLogin) > time.Minute {
			t.Error("LastLogin not stamped")
		}

		if _, err := issuer.VerifySessionToken(resp.Token); err != nil {
			t.Errorf("session token does not verify: %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		repo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, domainAccount.ErrAccountNotFound)

		_, err := svc.Login(ctx, &LoginRequest{Email: "ghost@example.com", Password: "Password1"})
		if !errors.Is(err, appErrors.ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		acct := &domainAccount.Account{ID: uuid.New(), Email: "jane@example.com", PasswordHash: hash, IsActive: true}
		repo.EXPECT().GetByEmail(ctx, "jane@example.com").Return(acct, nil)

		_, err := svc.Login(ctx, &LoginRequest{Email: "jane@example.com", Password: "Wrong1234"})
		if !errors.Is(err, appErrors.ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("inactive account", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		acct := &domainAccount.Account{ID: uuid.New(), Email: "jane@example.com", PasswordHash: hash, IsActive: false}
		repo.EXPECT().GetByEmail(ctx, "jane@example.com").Return(acct, nil)

		_, err := svc.Login(ctx, &LoginRequest{Email: "jane@example.com", Password: "Password1"})
		if !errors.Is(err, appErrors.ErrAccountInactive) {
			t.Errorf("Login() error = %v, want ErrAccountInactive", err)
		}
	})
}

func TestRequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("success stores a fresh token", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		acct := &domainAccount.Account{ID: uuid.New(), Email: "jane@example.com"}
		repo.EXPECT().GetByEmail(ctx, "jane@example.com").Return(acct, nil)
		repo.EXPECT().Update(ctx, acct).Return(nil)

		resp, err := svc.RequestPasswordReset(ctx, "Jane@Example.com")
		if err != nil {
			t.Fatalf("RequestPasswordReset() error = %v", err)
		}

		if acct.PasswordResetToken == nil || *acct.PasswordResetToken != resp.ResetToken {
			t.Error("stored token differs from returned token")
		}
		if acct.PasswordResetExp == nil || time.Until(*acct.PasswordResetExp) > time.Hour {
			t.Error("reset token expiry not within the configured window")
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		repo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, domainAccount.ErrAccountNotFound)

		if _, err := svc.RequestPasswordReset(ctx, "ghost@example.com"); !errors.Is(err, appErrors.ErrAccountNotFound) {
			t.Errorf("RequestPasswordReset() error = %v, want ErrAccountNotFound", err)
		}
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	hash, err := utils.HashPassword("OldPassword1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	resetAccount := func() *domainAccount.Account {
		tok := "bbbbbbbbbbbbbbbbbbbbbbbb"
		exp := time.Now().Add(30 * time.Minute)
		return &domainAccount.Account{
			ID:                 uuid.New(),
			Email:              "jane@example.com",
			PasswordHash:       hash,
			PasswordResetToken: &tok,
			PasswordResetExp:   &exp,
		}
	}

	t.Run("success consumes the token", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		acct := resetAccount()
		repo.EXPECT().GetByResetToken(ctx, *acct.PasswordResetToken).Return(acct, nil)
		repo.EXPECT().UpdatePassword(ctx, acct.ID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uuid.UUID, newHash string) error {
				if !utils.CheckPassword(newHash, "NewPassword1") {
					t.Error("stored hash does not match the new password")
				}
				return nil
			})
		repo.EXPECT().Update(ctx, acct).DoAndReturn(
			func(_ context.Context, a *domainAccount.Account) error {
				if a.PasswordResetToken != nil || a.PasswordResetExp != nil {
					t.Error("reset token not cleared")
				}
				return nil
			})

		err := svc.ResetPassword(ctx, &ResetPasswordRequest{
			Token:       "bbbbbbbbbbbbbbbbbbbbbbbb",
			NewPassword: "NewPassword1",
		})
		if err != nil {
			t.Fatalf("ResetPassword() error = %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		repo.EXPECT().GetByResetToken(ctx, "nope").Return(nil, domainAccount.ErrAccountNotFound)

		err := svc.ResetPassword(ctx, &ResetPasswordRequest{Token: "nope", NewPassword: "NewPassword1"})
		if !errors.Is(err, appErrors.ErrInvalidToken) {
			t.Errorf("ResetPassword() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		acct := resetAccount()
		past := time.Now().Add(-time.Minute)
		acct.PasswordResetExp = &past
		repo.EXPECT().GetByResetToken(ctx, *acct.PasswordResetToken).Return(acct, nil)

		err := svc.ResetPassword(ctx, &ResetPasswordRequest{
			Token:       *acct.PasswordResetToken,
			NewPassword: "NewPassword1",
		})
		if !errors.Is(err, appErrors.ErrTokenExpired) {
			t.Errorf("ResetPassword() error = %v, want ErrTokenExpired", err)
		}
	})

	t.Run("same password keeps the old hash", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		acct := resetAccount()
		repo.EXPECT().GetByResetToken(ctx, *acct.PasswordResetToken).Return(acct, nil)
		// No UpdatePassword expectation: reusing the current password must not
		// touch the stored hash.

		err := svc.ResetPassword(ctx, &ResetPasswordRequest{
			Token:       *acct.PasswordResetToken,
			NewPassword: "OldPassword1",
		})
		if !errors.Is(err, appErrors.ErrSamePassword) {
			t.Errorf("ResetPassword() error = %v, want ErrSamePassword", err)
		}
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes and is idempotent", func(t *testing.T) {
		svc, _, issuer, blacklist := newTestService(t)

		signed, err := issuer.IssueSessionToken(uuid.New(), "jane@example.com", domainAccount.RoleCustomer)
		if err != nil {
			t.Fatalf("IssueSessionToken() error = %v", err)
		}

		if err := svc.Logout(ctx, signed); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
		if !blacklist.Contains(signed) {
			t.Error("token not blacklisted after logout")
		}

		if err := svc.Logout(ctx, signed); err != nil {
			t.Errorf("second Logout() error = %v, want nil", err)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		svc, _, _, blacklist := newTestService(t)

		if err := svc.Logout(ctx, "garbage"); !errors.Is(err, appErrors.ErrInvalidToken) {
			t.Errorf("Logout() error = %v, want ErrInvalidToken", err)
		}
		if blacklist.Contains("garbage") {
			t.Error("malformed token ended up blacklisted")
		}
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	hash, err := utils.HashPassword("OldPassword1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	t.Run("success", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		acct := &domainAccount.Account{ID: uuid.New(), PasswordHash: hash}
		repo.EXPECT().GetByID(ctx, acct.ID).Return(acct, nil)
		repo.EXPECT().UpdatePassword(ctx, acct.ID, gomock.Any()).Return(nil)

		err := svc.ChangePassword(ctx, acct.ID, &ChangePasswordRequest{
			OldPassword: "OldPassword1",
			NewPassword: "NewPassword1",
		})
		if err != nil {
			t.Fatalf("ChangePassword() error = %v", err)
		}
	})

	t.Run("wrong old password", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		acct := &domainAccount.Account{ID: uuid.New(), PasswordHash: hash}
		repo.EXPECT().GetByID(ctx, acct.ID).Return(acct, nil)

		err := svc.ChangePassword(ctx, acct.ID, &ChangePasswordRequest{
			OldPassword: "Wrong1234",
			NewPassword: "NewPassword1",
		})
		if !errors.Is(err, appErrors.ErrInvalidCredentials) {
			t.Errorf("ChangePassword() error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestUpdateProfileRecomputesCompleteness(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestService(t)

	birthday := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	addr := "1 Main Street"
	city := "Springfield"
	state := "IL"
	postal := "62701"
	occupation := "Engineer"
	nationality := "US"

	acct := &domainAccount.Account{
		ID:              uuid.New(),
		Email:           "jane@example.com",
		IsEmailVerified: true,
		Firstname:       "Jane",
		Lastname:        "Doe",
		Phone:           "+14155550100",
		Address:         &addr,
		City:            &city,
		State:           &state,
		PostalCode:      &postal,
		Occupation:      &occupation,
		Birthday:        &birthday,
	}

	repo.EXPECT().GetByID(ctx, acct.ID).Return(acct, nil)
	repo.EXPECT().Update(ctx, acct).Return(nil)

	resp, err := svc.UpdateProfile(ctx, acct.ID, &UpdateProfileRequest{Nationality: &nationality})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if !resp.ProfileComplete {
		t.Error("ProfileComplete = false after the last field was filled")
	}
}
