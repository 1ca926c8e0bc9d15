package auth

import (
	"codeberg.org/lendora/server/lendora/sessions"
	"github.com/gin-gonic/gin"
)

// registers all authentication routes. loginLimiter may be nil.
func RegisterRoutes(router *gin.RouterGroup, issuer *sessions.Issuer, loginLimiter gin.HandlerFunc, secureCookies bool) {
	login := []gin.HandlerFunc{LoginHandler(issuer, secureCookies)}
	if loginLimiter != nil {
		login = append([]gin.HandlerFunc{loginLimiter}, login...)
	}

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", login...)
		authGroup.POST("/google", login...)
		authGroup.POST("/logout", LogoutHandler(issuer, secureCookies))
		authGroup.GET("/status", StatusHandler(issuer))
	}
}
