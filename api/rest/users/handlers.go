package users

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/lendora/server/internal/auth"
	"codeberg.org/lendora/server/internal/errors"
	"codeberg.org/lendora/server/lendora/profiles"
	"codeberg.org/lendora/server/lendora/users"
	"github.com/gin-gonic/gin"
)

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/profile [get]
func GetProfile(profileService *profiles.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		user, err := profileService.Get(c.Request.Context(), userID)
		if err != nil {
			if stderrors.Is(err, users.ErrNotFound) {
				errors.NotFound(c, "user")
				return
			}

			errors.InternalError(c, "failed to load profile", err)
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// UpdateProfile godoc
// @Summary Update onboarding fields
// @Description Validates phone number, address and bio, merges them and recomputes profile status
// @Tags users
// @Accept json
// @Produce json
// @Param request body profiles.UpdateRequest true "Profile fields"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/profile [put]
func UpdateProfile(profileService *profiles.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req profiles.UpdateRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid request body", err)
			return
		}

		user, err := profileService.Update(c.Request.Context(), userID, req)
		if err != nil {
			var verr *profiles.ValidationError

			switch {
			case stderrors.As(err, &verr):
				errors.ValidationFailed(c, verr.Fields)
			case stderrors.Is(err, users.ErrNotFound):
				errors.NotFound(c, "user")
			default:
				errors.InternalError(c, "failed to update profile", err)
			}
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// DeleteProfile godoc
// @Summary Delete the caller's account
// @Description Removes the user record, revokes the session and clears the session cookie
// @Tags users
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/profile [delete]
func DeleteProfile(profileService *profiles.Service, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		claims, ok := auth.GetClaims(c)
		if !exists || !ok {
			errors.Unauthorized(c, "")
			return
		}

		err := profileService.Delete(c.Request.Context(), userID, claims)

		gone := err == nil || stderrors.Is(err, users.ErrNotFound) || stderrors.Is(err, profiles.ErrRevokeFailed)
		if gone {
			auth.ClearSessionCookie(c, secureCookies)
		}

		switch {
		case err == nil:
			c.JSON(http.StatusOK, MessageResponse{Message: "profile deleted successfully"})
		case stderrors.Is(err, users.ErrNotFound):
			errors.NotFound(c, "user")
		default:
			errors.InternalError(c, "failed to delete profile", err)
		}
	}
}
