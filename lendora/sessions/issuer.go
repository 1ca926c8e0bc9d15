package sessions

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/lendora/server/internal/auth"
	"codeberg.org/lendora/server/lendora/users"
)

// turns verified identity assertions into session credentials
type Issuer struct {
	verifier    auth.Verifier
	directory   users.Directory
	tokens      *auth.TokenManager
	revocations Revocations
	metrics     Metrics
}

type Option func(*Issuer)

func WithMetrics(m Metrics) Option {
	return func(i *Issuer) {
		if m != nil {
			i.metrics = m
		}
	}
}

// creates a session issuer
func NewIssuer(
	verifier auth.Verifier,
	directory users.Directory,
	tokens *auth.TokenManager,
	revocations Revocations,
	opts ...Option,
) *Issuer {
	i := &Issuer{
		verifier:    verifier,
		directory:   directory,
		tokens:      tokens,
		revocations: revocations,
		metrics:     nopMetrics{},
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// verifies the assertion, loads or creates the user record and issues a credential
func (i *Issuer) Login(ctx context.Context, assertion string) (*LoginResult, error) {
	claim, err := i.verifier.Verify(ctx, assertion)
	if err != nil {
		i.metrics.RecordLoginFailure("invalid_credential")
		return nil, err
	}

	user, created, err := i.directory.FindOrCreate(ctx, users.Identity{
		SubjectID:   claim.SubjectID,
		Email:       claim.Email,
		DisplayName: claim.DisplayName,
		PictureURL:  claim.PictureURL,
	})
	if err != nil {
		i.metrics.RecordLoginFailure("directory")
		return nil, fmt.Errorf("%w: %v", ErrDirectory, err)
	}

	token, claims, err := i.tokens.Generate(user.ID, user.Email)
	if err != nil {
		i.metrics.RecordLoginFailure("token")
		return nil, err
	}

	i.metrics.RecordLogin(created)

	return &LoginResult{
		User:      user,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Created:   created,
	}, nil
}

// resolves a credential to live claims: valid signature, unexpired, not revoked
func (i *Issuer) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, auth.ErrUnauthenticated
	}

	claims, err := i.tokens.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrUnauthenticated, err)
	}

	revoked, err := i.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation: %w", err)
	}

	if revoked {
		return nil, fmt.Errorf("%w: session revoked", auth.ErrUnauthenticated)
	}

	return claims, nil
}

// returns the current user for the credential. a missing, invalid, revoked
// or orphaned credential yields nil, nil; an error means storage could not
// answer and says nothing about the session.
func (i *Issuer) Status(ctx context.Context, token string) (*users.User, error) {
	claims, err := i.Authenticate(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) {
			return nil, nil
		}
		return nil, err
	}

	user, err := i.directory.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}

	return user, nil
}

// revokes the credential if it is still live. idempotent: absent, invalid
// or already revoked credentials succeed without doing anything.
func (i *Issuer) Logout(ctx context.Context, token string) error {
	defer i.metrics.RecordLogout()

	if token == "" {
		return nil
	}

	claims, err := i.tokens.Validate(token)
	if err != nil {
		return nil
	}

	return i.Revoke(ctx, claims)
}

// revokes one credential until its natural expiry
func (i *Issuer) Revoke(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	if err := i.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}
