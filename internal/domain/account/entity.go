package account

import (
	"time"

	"github.com/google/uuid"
)

// Role is the fixed set of account roles.
type Role string

const (
	RoleCustomer        Role = "CUSTOMER"
	RoleVendor          Role = "VENDOR"
	RoleCustomerService Role = "CUSTOMER_SERVICE"
	RoleAccountOfficer  Role = "ACCOUNT_OFFICER"
	RoleProductManager  Role = "PRODUCT_MANAGER"
	RoleDeliveryAgent   Role = "DELIVERY_AGENT"
	RoleLogisticsAgent  Role = "LOGISTICS_AGENT"
	RoleAdmin           Role = "ADMIN"
	RoleSuperAdmin      Role = "SUPER_ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleCustomerService, RoleAccountOfficer,
		RoleProductManager, RoleDeliveryAgent, RoleLogisticsAgent, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Account is the domain entity behind registration, login and the single-use
// token flows. Email is always stored lowercase; email and phone are unique
// among non-deleted accounts.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string

	Firstname   string
	Lastname    string
	Phone       string
	Address     *string
	City        *string
	State       *string
	PostalCode  *string
	Birthday    *time.Time
	Occupation  *string
	Nationality *string
	AvatarURL   *string

	Role     Role
	IsActive bool

	IsEmailVerified        bool
	EmailVerificationToken *string
	EmailVerificationExp   *time.Time

	PasswordResetToken *string
	PasswordResetExp   *time.Time

	LastLogin     *time.Time
	PreviousLogin *time.Time

	// ProfileComplete is a cached derived value, recomputed after
	// registration, email verification and profile edits.
	ProfileComplete bool

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// ProfileIsComplete reports whether every designated profile field is populated.
func (a *Account) ProfileIsComplete() bool {
	if a.Email == "" || !a.IsEmailVerified {
		return false
	}
	if a.Firstname == "" || a.Lastname == "" || a.Phone == "" {
		return false
	}

	optional := []*string{a.Address, a.City, a.State, a.PostalCode, a.Occupation, a.Nationality}
	for _, field := range optional {
		if field == nil || *field == "" {
			return false
		}
	}

	return a.Birthday != nil
}

// VerificationTokenExpired reports whether the pending email verification
// token has passed its deadline. A missing expiry means the token never expires.
func (a *Account) VerificationTokenExpired(now time.Time) bool {
	return a.EmailVerificationExp != nil && a.EmailVerificationExp.Before(now)
}

// ResetTokenExpired reports whether the pending password reset token has
// passed its deadline.
func (a *Account) ResetTokenExpired(now time.Time) bool {
	return a.PasswordResetExp == nil || a.PasswordResetExp.Before(now)
}

// ClearVerificationToken consumes the email verification token.
func (a *Account) ClearVerificationToken() {
	a.EmailVerificationToken = nil
	a.EmailVerificationExp = nil
}

// ClearResetToken consumes the password reset token.
func (a *Account) ClearResetToken() {
	a.PasswordResetToken = nil
	a.PasswordResetExp = nil
}
