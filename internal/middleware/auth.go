package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/token"
	"marketplace-backend/pkg/utils"
)

const (
	ContextAccountID = "accountID"
	ContextEmail     = "email"
	ContextRole      = "role"
	ContextToken     = "sessionToken"
)

// AuthMiddleware verifies the bearer session token and rejects revoked
// tokens. The raw token is kept in the context so logout can blacklist it.
func AuthMiddleware(issuer *token.Issuer, blacklist *token.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		sessionToken := parts[1]

		if blacklist.Contains(sessionToken) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Token has been revoked")
			c.Abort()
			return
		}

		claims, err := issuer.VerifySessionToken(sessionToken)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, string(claims.Role))
		c.Set(ContextToken, sessionToken)

		c.Next()
	}
}
