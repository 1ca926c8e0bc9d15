package admin

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/lendora/server/internal/auth"
	"codeberg.org/lendora/server/internal/errors"
	"codeberg.org/lendora/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Login godoc
// @Summary Admin login
// @Description Verifies operator credentials and starts a signed admin session
// @Tags admin
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Operator credentials"
// @Success 200 {object} AdminResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/login [post]
func Login(adminAuth *auth.AdminAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "id and password are required", nil)
			return
		}

		admin, err := adminAuth.Login(c.Writer, c.Request, req.ID, req.Password)
		if err != nil {
			if stderrors.Is(err, auth.ErrAdminCredentials) {
				logger.Warn("admin login rejected", "ip", c.ClientIP())
				errors.Unauthorized(c, "invalid credentials")
				return
			}

			errors.InternalError(c, "failed to start admin session", err)
			return
		}

		c.JSON(http.StatusOK, AdminResponse{Admin: admin})
	}
}

// Logout godoc
// @Summary Admin logout
// @Tags admin
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /admin/logout [post]
func Logout(adminAuth *auth.AdminAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := adminAuth.Logout(c.Writer, c.Request); err != nil {
			logger.ErrorErr(err, "failed to clear admin session")
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
	}
}

// Status godoc
// @Summary Current admin session
// @Tags admin
// @Produce json
// @Success 200 {object} AdminResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/status [get]
func Status() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, AdminResponse{Admin: &auth.Admin{
			ID:   c.GetString("admin_id"),
			Role: c.GetString("admin_role"),
		}})
	}
}
