package auth

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"codeberg.org/lendora/server/internal/errors"
	"github.com/gin-gonic/gin"
)

const claimsKey = "session_claims"

// resolves a raw session credential to live claims (signature, expiry and revocation)
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Claims, error)
}

// requires a valid session credential and adds user info to context
func SessionMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			errors.Unauthorized(c, "")
			return
		}

		claims, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if stderrors.Is(err, ErrUnauthenticated) {
				errors.Unauthorized(c, "invalid or expired session")
				return
			}

			errors.InternalError(c, "failed to check session", err)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set(claimsKey, claims)

		c.Next()
	}
}

// extracts user_id from context after SessionMiddleware
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	return userID, userID != ""
}

// extracts the session claims from context after SessionMiddleware
func GetClaims(c *gin.Context) (*Claims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}

	claims, ok := value.(*Claims)
	return claims, ok
}

// reads the session cookie, falling back to a Bearer header for non-browser clients
func TokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		return token
	}

	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

// writes the HTTP-only session cookie
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

// expires the session cookie on the client
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
