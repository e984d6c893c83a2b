package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Password1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "Password1" {
		t.Fatal("hash equals the plaintext password")
	}

	if !CheckPassword(hash, "Password1") {
		t.Error("CheckPassword() = false for correct password")
	}
	if CheckPassword(hash, "Wrong1234") {
		t.Error("CheckPassword() = true for wrong password")
	}
	if CheckPassword("not-a-hash", "Password1") {
		t.Error("CheckPassword() = true for malformed hash")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Password1", false},
		{"too short", "Pas1", true},
		{"no uppercase", "password1", true},
		{"no lowercase", "PASSWORD1", true},
		{"no number", "Passwords", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}
