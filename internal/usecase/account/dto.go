package account

import (
	"time"

	"github.com/google/uuid"

	domainAccount "marketplace-backend/internal/domain/account"
)

type RegisterRequest struct {
	Firstname   string     `json:"firstname" validate:"required,min=2,max=100"`
	Lastname    string     `json:"lastname" validate:"required,min=2,max=100"`
	Email       string     `json:"email" validate:"required,email"`
	Password    string     `json:"password" validate:"required,min=8"`
	Phone       string     `json:"phone" validate:"required,phone"`
	Address     *string    `json:"address" validate:"omitempty,min=5,max=100"`
	City        *string    `json:"city" validate:"omitempty,min=2,max=50"`
	State       *string    `json:"state" validate:"omitempty,min=2,max=50"`
	PostalCode  *string    `json:"postal_code" validate:"omitempty,min=4,max=10"`
	Birthday    *time.Time `json:"birthday"`
	Occupation  *string    `json:"occupation" validate:"omitempty,max=100"`
	Nationality *string    `json:"nationality" validate:"omitempty,max=100"`
	AvatarURL   *string    `json:"avatar_url" validate:"omitempty,url"`
	Role        string     `json:"role" validate:"omitempty,account_role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	Firstname   *string    `json:"firstname" validate:"omitempty,min=2,max=100"`
	Lastname    *string    `json:"lastname" validate:"omitempty,min=2,max=100"`
	Phone       *string    `json:"phone" validate:"omitempty,phone"`
	Address     *string    `json:"address" validate:"omitempty,min=5,max=100"`
	City        *string    `json:"city" validate:"omitempty,min=2,max=50"`
	State       *string    `json:"state" validate:"omitempty,min=2,max=50"`
	PostalCode  *string    `json:"postal_code" validate:"omitempty,min=4,max=10"`
	Birthday    *time.Time `json:"birthday"`
	Occupation  *string    `json:"occupation" validate:"omitempty,max=100"`
	Nationality *string    `json:"nationality" validate:"omitempty,max=100"`
	AvatarURL   *string    `json:"avatar_url" validate:"omitempty,url"`
}

// AccountResponse carries the public account fields. The password hash and
// pending single-use tokens are never serialized.
type AccountResponse struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	Firstname       string     `json:"firstname"`
	Lastname        string     `json:"lastname"`
	Phone           string     `json:"phone"`
	AvatarURL       *string    `json:"avatar_url,omitempty"`
	Role            string     `json:"role"`
	IsActive        bool       `json:"is_active"`
	IsEmailVerified bool       `json:"is_email_verified"`
	ProfileComplete bool       `json:"profile_complete"`
	PreviousLogin   *time.Time `json:"previous_login,omitempty"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type RegisterResponse struct {
	User *AccountResponse `json:"user"`
	// Token is the session token issued at signup.
	Token string `json:"token"`
	// VerificationToken is handed to the (external) mail collaborator; it is
	// returned here because email delivery is out of scope.
	VerificationToken string `json:"verification_token"`
}

type LoginResponse struct {
	User  *AccountResponse `json:"user"`
	Token string           `json:"token"`
}

type ResetTokenResponse struct {
	ResetToken string `json:"reset_token"`
}

func ToAccountResponse(a *domainAccount.Account) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		ID:              a.ID,
		Email:           a.Email,
		Firstname:       a.Firstname,
		Lastname:        a.Lastname,
		Phone:           a.Phone,
		AvatarURL:       a.AvatarURL,
		Role:            string(a.Role),
		IsActive:        a.IsActive,
		IsEmailVerified: a.IsEmailVerified,
		ProfileComplete: a.ProfileComplete,
		PreviousLogin:   a.PreviousLogin,
		LastLogin:       a.LastLogin,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
