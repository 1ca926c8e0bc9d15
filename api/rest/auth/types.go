package auth

import "codeberg.org/lendora/server/lendora/users"

// LoginRequest carries the identity provider's signed ID token
type LoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// UserResponse wraps user data
type UserResponse struct {
	User *users.User `json:"user"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
