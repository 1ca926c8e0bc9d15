package admin

import "codeberg.org/lendora/server/internal/auth"

// LoginRequest holds back-office operator credentials
type LoginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminResponse wraps the authenticated operator
type AdminResponse struct {
	Admin *auth.Admin `json:"admin"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
