package admin

import (
	"codeberg.org/lendora/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers the admin session routes. nothing is mounted when adminAuth is
// nil, so every admin path answers 404.
func RegisterRoutes(router *gin.RouterGroup, adminAuth *auth.AdminAuth, loginLimiter gin.HandlerFunc) {
	if adminAuth == nil {
		return
	}

	login := []gin.HandlerFunc{Login(adminAuth)}
	if loginLimiter != nil {
		login = append([]gin.HandlerFunc{loginLimiter}, login...)
	}

	admin := router.Group("/admin")
	admin.POST("/login", login...)
	admin.POST("/logout", Logout(adminAuth))
	admin.GET("/status", adminAuth.Middleware(), Status())
}
