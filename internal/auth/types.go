package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// the third-party assertion failed signature, audience, issuer or expiry checks,
	// or lacks required claims
	ErrInvalidCredential = errors.New("invalid credential")

	// no valid session credential accompanies the request
	ErrUnauthenticated = errors.New("unauthenticated")
)

// name of the HTTP-only cookie carrying the session credential
const SessionCookieName = "token"

// represents session JWT claims. RegisteredClaims.ID is the revocable token id.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// verified attributes extracted from a third-party signed assertion
type IdentityClaim struct {
	SubjectID     string
	Email         string
	DisplayName   string
	PictureURL    string
	EmailVerified bool
}
