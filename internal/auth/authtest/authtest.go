// Package authtest mints OIDC ID tokens signed by a throwaway RSA key so
// verification can be exercised without a network issuer.
package authtest

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"codeberg.org/lendora/server/internal/auth"
	"github.com/golang-jwt/jwt/v5"
)

const (
	Issuer   = "https://issuer.lendora.test"
	ClientID = "lendora-web.apps.test"
)

type IdentityProvider struct {
	key *rsa.PrivateKey
}

func NewIdentityProvider(t testing.TB) *IdentityProvider {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}

	return &IdentityProvider{key: key}
}

// a verifier trusting only this provider's key
func (p *IdentityProvider) Verifier() *auth.OIDCVerifier {
	return auth.NewStaticVerifier(Issuer, ClientID, &p.key.PublicKey)
}

// valid claims for subject, expiring in an hour
func (p *IdentityProvider) Claims(subject, email string) jwt.MapClaims {
	now := time.Now()

	return jwt.MapClaims{
		"iss":            Issuer,
		"aud":            ClientID,
		"sub":            subject,
		"email":          email,
		"email_verified": true,
		"name":           "Test User",
		"picture":        "https://example.com/avatar.png",
		"iat":            now.Unix(),
		"exp":            now.Add(time.Hour).Unix(),
	}
}

// signs claims as an RS256 ID token
func (p *IdentityProvider) Sign(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(p.key)
	if err != nil {
		t.Fatalf("sign id token: %v", err)
	}

	return signed
}

// a signed, valid assertion for subject
func (p *IdentityProvider) Assertion(t testing.TB, subject, email string) string {
	t.Helper()
	return p.Sign(t, p.Claims(subject, email))
}
