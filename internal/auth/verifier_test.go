package auth_test

import (
	"context"
	"testing"
	"time"

	"codeberg.org/lendora/server/internal/auth"
	"codeberg.org/lendora/server/internal/auth/authtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_ValidAssertion(t *testing.T) {
	idp := authtest.NewIdentityProvider(t)

	claim, err := idp.Verifier().Verify(context.Background(), idp.Assertion(t, "u1", "a@x.com"))

	require.NoError(t, err)
	assert.Equal(t, "u1", claim.SubjectID)
	assert.Equal(t, "a@x.com", claim.Email)
	assert.Equal(t, "Test User", claim.DisplayName)
	assert.True(t, claim.EmailVerified)
}

func TestVerify_RejectsBadAssertions(t *testing.T) {
	idp := authtest.NewIdentityProvider(t)
	other := authtest.NewIdentityProvider(t)

	expired := idp.Claims("u1", "a@x.com")
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	wrongAudience := idp.Claims("u1", "a@x.com")
	wrongAudience["aud"] = "someone-else"

	wrongIssuer := idp.Claims("u1", "a@x.com")
	wrongIssuer["iss"] = "https://evil.example.com"

	noEmail := idp.Claims("u1", "a@x.com")
	delete(noEmail, "email")

	valid := idp.Assertion(t, "u1", "a@x.com")

	testCases := []struct {
		name      string
		assertion string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"expired", idp.Sign(t, expired)},
		{"wrong audience", idp.Sign(t, wrongAudience)},
		{"wrong issuer", idp.Sign(t, wrongIssuer)},
		{"missing email", idp.Sign(t, noEmail)},
		{"foreign key", other.Assertion(t, "u1", "a@x.com")},
		{"tampered", valid[:len(valid)-4] + "AAAA"},
	}

	verifier := idp.Verifier()

	for _, tc := range testCases {
		_, err := verifier.Verify(context.Background(), tc.assertion)
		assert.ErrorIs(t, err, auth.ErrInvalidCredential, tc.name)
	}
}
