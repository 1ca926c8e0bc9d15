package auth

import (
	stderrors "errors"
	"net/http"
	"time"

	"codeberg.org/lendora/server/internal/auth"
	"codeberg.org/lendora/server/internal/errors"
	"codeberg.org/lendora/server/internal/logger"
	"codeberg.org/lendora/server/lendora/sessions"
	"github.com/gin-gonic/gin"
)

// LoginHandler godoc
// @Summary Sign in with an identity provider token
// @Description Verifies the ID token, creates the user on first login and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Identity assertion"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func LoginHandler(issuer *sessions.Issuer, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "credential is required", nil)
			return
		}

		result, err := issuer.Login(c.Request.Context(), req.Credential)
		if err != nil {
			if stderrors.Is(err, auth.ErrInvalidCredential) {
				errors.InvalidCredential(c, err)
				return
			}

			errors.InternalError(c, "failed to sign in", err)
			return
		}

		auth.SetSessionCookie(c, result.Token, time.Until(result.ExpiresAt), secureCookies)

		if result.Created {
			logger.Info("user created", "user_id", result.User.ID)
		}

		c.JSON(http.StatusOK, UserResponse{User: result.User})
	}
}

// LogoutHandler godoc
// @Summary Logout
// @Description Revokes the session credential and clears the session cookie. Always succeeds.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func LogoutHandler(issuer *sessions.Issuer, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := issuer.Logout(c.Request.Context(), auth.TokenFromRequest(c)); err != nil {
			logger.ErrorErr(err, "failed to revoke session on logout")
		}

		auth.ClearSessionCookie(c, secureCookies)
		c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
	}
}

// StatusHandler godoc
// @Summary Current session
// @Description Returns the user bound to the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/status [get]
func StatusHandler(issuer *sessions.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := issuer.Status(c.Request.Context(), auth.TokenFromRequest(c))
		if err != nil {
			errors.InternalError(c, "failed to check session", err)
			return
		}

		if user == nil {
			errors.Unauthorized(c, "not authenticated")
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}
