package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	restauth "codeberg.org/lendora/server/api/rest/auth"
	restusers "codeberg.org/lendora/server/api/rest/users"
	"codeberg.org/lendora/server/internal/auth"
	"codeberg.org/lendora/server/internal/auth/authtest"
	"codeberg.org/lendora/server/lendora/profiles"
	"codeberg.org/lendora/server/lendora/sessions"
	"codeberg.org/lendora/server/lendora/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T) (*httptest.Server, *authtest.IdentityProvider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenManager("client-test-secret", time.Hour)
	require.NoError(t, err)

	idp := authtest.NewIdentityProvider(t)
	directory := users.NewMemoryStore()
	issuer := sessions.NewIssuer(idp.Verifier(), directory, tokens, sessions.NewMemoryRevocations())

	router := gin.New()
	api := router.Group("/api")
	restauth.RegisterRoutes(api, issuer, nil, false)
	restusers.RegisterRoutes(api, profiles.NewService(directory, issuer), issuer, nil, false)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, idp
}

func str(s string) *string { return &s }

func TestClient_LoginStatusLogout(t *testing.T) {
	srv, idp := newAPI(t)
	c := New(srv.URL + "/api")
	ctx := context.Background()

	_, err := c.Status(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	user, err := c.Login(ctx, idp.Assertion(t, "u1", "a@x.com"))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, StatusPending, user.ProfileStatus)
	assert.NotEmpty(t, c.Credential())

	status, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, status.ID)

	credential := c.Credential()
	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Credential())

	// the old credential was revoked server-side
	c.SetCredential(credential)
	_, err = c.Status(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestClient_RevokeLeavesCurrentCredential(t *testing.T) {
	srv, idp := newAPI(t)
	c := New(srv.URL + "/api")
	ctx := context.Background()

	_, err := c.Login(ctx, idp.Assertion(t, "u1", "a@x.com"))
	require.NoError(t, err)
	orphan := c.Credential()

	_, err = c.Login(ctx, idp.Assertion(t, "u1", "a@x.com"))
	require.NoError(t, err)
	current := c.Credential()
	require.NotEqual(t, orphan, current)

	require.NoError(t, c.Revoke(ctx, orphan))
	assert.Equal(t, current, c.Credential())

	_, err = c.Status(ctx)
	require.NoError(t, err)

	c.SetCredential(orphan)
	_, err = c.Status(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestClient_InvalidLogin(t *testing.T) {
	srv, _ := newAPI(t)
	c := New(srv.URL + "/api")

	_, err := c.Login(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, c.Credential())
}

func TestClient_UpdateProfile(t *testing.T) {
	srv, idp := newAPI(t)
	c := New(srv.URL + "/api")
	ctx := context.Background()

	_, err := c.Login(ctx, idp.Assertion(t, "u1", "a@x.com"))
	require.NoError(t, err)

	_, err = c.UpdateProfile(ctx, ProfileUpdate{PhoneNumber: str(""), Address: str("12 Main St"), Bio: str("hi")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Phone number is required", verr.Fields["phone_number"])

	user, err := c.UpdateProfile(ctx, ProfileUpdate{PhoneNumber: str("9876543210"), Address: str("12 Main St"), Bio: str("hi")})
	require.NoError(t, err)
	assert.True(t, user.IsComplete())

	profile, err := c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "12 Main St", profile.AdditionalInfo.Address)
}

func TestClient_DeleteProfile(t *testing.T) {
	srv, idp := newAPI(t)
	c := New(srv.URL + "/api")
	ctx := context.Background()

	_, err := c.Login(ctx, idp.Assertion(t, "u1", "a@x.com"))
	require.NoError(t, err)

	require.NoError(t, c.DeleteProfile(ctx))
	assert.Empty(t, c.Credential())

	_, err = c.Profile(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestClient_ServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"server_error","message":"failed to load profile"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetCredential("anything")

	_, err := c.Status(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "failed to load profile", apiErr.Error())
	assert.NotErrorIs(t, err, ErrUnauthenticated)
}
