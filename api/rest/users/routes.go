package users

import (
	"codeberg.org/lendora/server/internal/auth"
	"codeberg.org/lendora/server/lendora/profiles"
	"github.com/gin-gonic/gin"
)

// registers the profile routes. mutationLimiter may be nil.
func RegisterRoutes(
	rg *gin.RouterGroup,
	profileService *profiles.Service,
	authenticator auth.Authenticator,
	mutationLimiter gin.HandlerFunc,
	secureCookies bool,
) {
	user := rg.Group("/user")
	user.Use(auth.SessionMiddleware(authenticator)) // all profile routes require a session

	mutating := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if mutationLimiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{mutationLimiter, h}
	}

	user.GET("/profile", GetProfile(profileService))
	user.PUT("/profile", mutating(UpdateProfile(profileService))...)
	user.DELETE("/profile", mutating(DeleteProfile(profileService, secureCookies))...)
}
