package auth

import (
	"context"
	"crypto"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

const GoogleIssuer = "https://accounts.google.com"

// turns a signed third-party assertion into a verified identity
type Verifier interface {
	Verify(ctx context.Context, assertion string) (*IdentityClaim, error)
}

// verifies OIDC ID tokens against the issuer's key set
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// discovers the issuer and verifies tokens against its remote JWKS.
// keys are fetched lazily and cached by go-oidc.
func NewOIDCVerifier(ctx context.Context, issuer, clientID string) (*OIDCVerifier, error) {
	if clientID == "" {
		return nil, fmt.Errorf("client id is required")
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// verifies tokens against a fixed set of public keys
func NewStaticVerifier(issuer, clientID string, keys ...crypto.PublicKey) *OIDCVerifier {
	keySet := &oidc.StaticKeySet{PublicKeys: keys}

	return &OIDCVerifier{
		verifier: oidc.NewVerifier(issuer, keySet, &oidc.Config{
			ClientID:             clientID,
			SupportedSigningAlgs: []string{oidc.RS256, oidc.ES256},
		}),
	}
}

func (v *OIDCVerifier) Verify(ctx context.Context, assertion string) (*IdentityClaim, error) {
	if assertion == "" {
		return nil, fmt.Errorf("%w: empty assertion", ErrInvalidCredential)
	}

	idToken, err := v.verifier.Verify(ctx, assertion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	var claims struct {
		Email         string `json:"email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
		EmailVerified bool   `json:"email_verified"`
	}

	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: failed to parse claims: %v", ErrInvalidCredential, err)
	}

	if idToken.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: missing subject or email", ErrInvalidCredential)
	}

	return &IdentityClaim{
		SubjectID:     idToken.Subject,
		Email:         claims.Email,
		DisplayName:   claims.Name,
		PictureURL:    claims.Picture,
		EmailVerified: claims.EmailVerified,
	}, nil
}
