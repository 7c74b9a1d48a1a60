package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rezaariel/insight-report-hub/internal/delivery/http/response"
	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/pkg/auth"
)

// AuthMiddleware verifies the bearer token, rejects revoked tokens, and
// resolves the caller's role ONCE here. Handlers and usecases read the
// identity from context instead of re-querying user_roles.
func AuthMiddleware(tokens *auth.TokenManager, revoker *auth.Revoker, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		if revoker.IsRevoked(c.Request.Context(), claims.ID) {
			response.Error(c, http.StatusUnauthorized, "Token has been revoked", nil)
			c.Abort()
			return
		}

		// Resolve the fresh role from the database; the token carries no
		// role claim on purpose.
		identity, err := authUC.ResolveIdentity(c.Request.Context(), claims.Subject)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}

		// Thread the identity through the request context so usecases can
		// read it with the typed keys regardless of how the context reached
		// them.
		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, domain.KeyUserID, identity.UserID)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, identity.Email)
		ctx = context.WithValue(ctx, domain.KeyUserRole, identity.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Set(string(domain.KeyUserID), identity.UserID)
		c.Set(string(domain.KeyUserRole), string(identity.Role))
		// Claims are kept for logout, which revokes by token id.
		c.Set("TokenClaims", claims)

		c.Next()
	}
}
