package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace-backend/internal/domain/account"
	"marketplace-backend/internal/infrastructure/database/postgres/models"
)

// AccountRepository implements account.Repository
type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) account.Repository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()

	dbModel := toAccountModel(a)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "duplicate key") {
			return account.ErrAccountAlreadyExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	a.ID = dbModel.ID
	a.CreatedAt = dbModel.CreatedAt
	a.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*account.Account, error) {
	return r.getOne(ctx, "id = ?", accountID)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *AccountRepository) GetByPhone(ctx context.Context, phone string) (*account.Account, error) {
	return r.getOne(ctx, "phone = ?", phone)
}

func (r *AccountRepository) GetByVerificationToken(ctx context.Context, token string) (*account.Account, error) {
	return r.getOne(ctx, "email_verification_token = ?", token)
}

func (r *AccountRepository) GetByResetToken(ctx context.Context, token string) (*account.Account, error) {
	return r.getOne(ctx, "password_reset_token = ?", token)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg interface{}) (*account.Account, error) {
	var dbModel models.AccountModel
	err := r.db.DB.WithContext(ctx).Where(query, arg).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return toAccountEntity(&dbModel), nil
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]*account.Account, error) {
	var dbModels []models.AccountModel
	if err := r.db.DB.WithContext(ctx).Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	accounts := make([]*account.Account, len(dbModels))
	for i := range dbModels {
		accounts[i] = toAccountEntity(&dbModels[i])
	}

	return accounts, nil
}

func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	a.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"firstname":                a.Firstname,
			"lastname":                 a.Lastname,
			"phone":                    a.Phone,
			"address":                  a.Address,
			"city":                     a.City,
			"state":                    a.State,
			"postal_code":              a.PostalCode,
			"birthday":                 a.Birthday,
			"occupation":               a.Occupation,
			"nationality":              a.Nationality,
			"avatar_url":               a.AvatarURL,
			"is_email_verified":        a.IsEmailVerified,
			"email_verification_token": a.EmailVerificationToken,
			"email_verification_exp":   a.EmailVerificationExp,
			"password_reset_token":     a.PasswordResetToken,
			"password_reset_exp":       a.PasswordResetExp,
			"last_login":               a.LastLogin,
			"previous_login":           a.PreviousLogin,
			"profile_complete":         a.ProfileComplete,
			"updated_at":               a.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

func (r *AccountRepository) SetActive(ctx context.Context, accountID uuid.UUID, active bool) error {
	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update account activity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.AccountModel{}, "id = ?", accountID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

func toAccountModel(a *account.Account) *models.AccountModel {
	return &models.AccountModel{
		ID:                     a.ID,
		Email:                  a.Email,
		PasswordHash:           a.PasswordHash,
		Firstname:              a.Firstname,
		Lastname:               a.Lastname,
		Phone:                  a.Phone,
		Address:                a.Address,
		City:                   a.City,
		State:                  a.State,
		PostalCode:             a.PostalCode,
		Birthday:               a.Birthday,
		Occupation:             a.Occupation,
		Nationality:            a.Nationality,
		AvatarURL:              a.AvatarURL,
		Role:                   string(a.Role),
		IsActive:               a.IsActive,
		IsEmailVerified:        a.IsEmailVerified,
		EmailVerificationToken: a.EmailVerificationToken,
		EmailVerificationExp:   a.EmailVerificationExp,
		PasswordResetToken:     a.PasswordResetToken,
		PasswordResetExp:       a.PasswordResetExp,
		LastLogin:              a.LastLogin,
		PreviousLogin:          a.PreviousLogin,
		ProfileComplete:        a.ProfileComplete,
		CreatedAt:              a.CreatedAt,
		UpdatedAt:              a.UpdatedAt,
	}
}

func toAccountEntity(m *models.AccountModel) *account.Account {
	a := &account.Account{
		ID:                     m.ID,
		Email:                  m.Email,
		PasswordHash:           m.PasswordHash,
		Firstname:              m.Firstname,
		Lastname:               m.Lastname,
		Phone:                  m.Phone,
		Address:                m.Address,
		City:                   m.City,
		State:                  m.State,
		PostalCode:             m.PostalCode,
		Birthday:               m.Birthday,
		Occupation:             m.Occupation,
		Nationality:            m.Nationality,
		AvatarURL:              m.AvatarURL,
		Role:                   account.Role(m.Role),
		IsActive:               m.IsActive,
		IsEmailVerified:        m.IsEmailVerified,
		EmailVerificationToken: m.EmailVerificationToken,
		EmailVerificationExp:   m.EmailVerificationExp,
		PasswordResetToken:     m.PasswordResetToken,
		PasswordResetExp:       m.PasswordResetExp,
		LastLogin:              m.LastLogin,
		PreviousLogin:          m.PreviousLogin,
		ProfileComplete:        m.ProfileComplete,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}

	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		a.DeletedAt = &deletedAt
	}

	return a
}
