package account

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func completeAccount() *Account {
	birthday := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	return &Account{
		Email:           "jane@example.com",
		IsEmailVerified: true,
		Firstname:       "Jane",
		Lastname:        "Doe",
		Phone:           "+14155550100",
		Address:         strPtr("1 Main Street"),
		City:            strPtr("Springfield"),
		State:           strPtr("IL"),
		PostalCode:      strPtr("62701"),
		Occupation:      strPtr("Engineer"),
		Nationality:     strPtr("US"),
		Birthday:        &birthday,
	}
}

func TestProfileIsComplete(t *testing.T) {
	t.Run("all fields populated", func(t *testing.T) {
		if !completeAccount().ProfileIsComplete() {
			t.Error("ProfileIsComplete() = false, want true")
		}
	})

	t.Run("unverified email", func(t *testing.T) {
		a := completeAccount()
		a.IsEmailVerified = false
		if a.ProfileIsComplete() {
			t.Error("ProfileIsComplete() = true for unverified email")
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		a := completeAccount()
		a.Phone = ""
		if a.ProfileIsComplete() {
			t.Error("ProfileIsComplete() = true with empty phone")
		}
	})

	t.Run("nil optional field", func(t *testing.T) {
		a := completeAccount()
		a.Occupation = nil
		if a.ProfileIsComplete() {
			t.Error("ProfileIsComplete() = true with nil occupation")
		}
	})

	t.Run("empty optional field", func(t *testing.T) {
		a := completeAccount()
		a.City = strPtr("")
		if a.ProfileIsComplete() {
			t.Error("ProfileIsComplete() = true with empty city")
		}
	})

	t.Run("missing birthday", func(t *testing.T) {
		a := completeAccount()
		a.Birthday = nil
		if a.ProfileIsComplete() {
			t.Error("ProfileIsComplete() = true with nil birthday")
		}
	})
}

func TestVerificationTokenExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name string
		exp  *time.Time
		want bool
	}{
		{"no deadline never expires", nil, false},
		{"future deadline", &future, false},
		{"past deadline", &past, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Account{EmailVerificationExp: tt.exp}
			if got := a.VerificationTokenExpired(now); got != tt.want {
				t.Errorf("VerificationTokenExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResetTokenExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name string
		exp  *time.Time
		want bool
	}{
		{"no deadline counts as expired", nil, true},
		{"future deadline", &future, false},
		{"past deadline", &past, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Account{PasswordResetExp: tt.exp}
			if got := a.ResetTokenExpired(now); got != tt.want {
				t.Errorf("ResetTokenExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClearTokens(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	a := &Account{
		EmailVerificationToken: strPtr("abc"),
		EmailVerificationExp:   &exp,
		PasswordResetToken:     strPtr("def"),
		PasswordResetExp:       &exp,
	}

	a.ClearVerificationToken()
	if a.EmailVerificationToken != nil || a.EmailVerificationExp != nil {
		t.Error("ClearVerificationToken() left token state behind")
	}

	a.ClearResetToken()
	if a.PasswordResetToken != nil || a.PasswordResetExp != nil {
		t.Error("ClearResetToken() left token state behind")
	}
}

func TestRoleValid(t *testing.T) {
	valid := []Role{
		RoleCustomer, RoleVendor, RoleCustomerService, RoleAccountOfficer,
		RoleProductManager, RoleDeliveryAgent, RoleLogisticsAgent, RoleAdmin, RoleSuperAdmin,
	}
	for _, r := range valid {
		if !r.Valid() {
			t.Errorf("Valid() = false for %q", r)
		}
	}

	for _, r := range []Role{"", "customer", "ROOT"} {
		if r.Valid() {
			t.Errorf("Valid() = true for %q", r)
		}
	}
}
