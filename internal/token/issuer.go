package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"marketplace-backend/internal/domain/account"
	appErrors "marketplace-backend/pkg/errors"
)

// singleUseTokenBytes yields a 24-character hex token for email verification
// and password reset.
const singleUseTokenBytes = 12

// Claims carried by a session token.
type Claims struct {
	AccountID uuid.UUID    `json:"account_id"`
	Email     string       `json:"email"`
	Role      account.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens and generates single-use tokens.
type Issuer struct {
	secret     []byte
	sessionTTL time.Duration
}

func NewIssuer(secret string, expiryMinutes int) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		sessionTTL: time.Duration(expiryMinutes) * time.Minute,
	}
}

// IssueSessionToken produces a signed, short-lived bearer token encoding
// identity and role.
func (i *Issuer) IssueSessionToken(accountID uuid.UUID, email string, role account.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: accountID,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.sessionTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// VerifySessionToken checks signature and expiration.
func (i *Issuer) VerifySessionToken(tokenString string) (*Claims, error) {
	return i.parse(tokenString)
}

// VerifySessionTokenSkipExpiry checks the signature only. Logout uses it so
// that an expired but genuine token can still be revoked.
func (i *Issuer) VerifySessionTokenSkipExpiry(tokenString string) (*Claims, error) {
	return i.parse(tokenString, jwt.WithoutClaimsValidation())
}

func (i *Issuer) parse(tokenString string, opts ...jwt.ParserOption) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, opts...)

	if err != nil || !token.Valid {
		return nil, appErrors.ErrInvalidToken
	}

	return claims, nil
}

// NewSingleUseToken returns a cryptographically random, fixed-length opaque
// token.
func NewSingleUseToken() (string, error) {
	bytes := make([]byte, singleUseTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
