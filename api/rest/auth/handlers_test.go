package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	internalauth "codeberg.org/lendora/server/internal/auth"
	"codeberg.org/lendora/server/internal/auth/authtest"
	"codeberg.org/lendora/server/lendora/sessions"
	"codeberg.org/lendora/server/lendora/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router    *gin.Engine
	idp       *authtest.IdentityProvider
	directory *users.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWith(t, sessions.NewMemoryRevocations())
}

func newTestServerWith(t *testing.T, revocations sessions.Revocations) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := internalauth.NewTokenManager("handler-test-secret", time.Hour)
	require.NoError(t, err)

	s := &testServer{
		router:    gin.New(),
		idp:       authtest.NewIdentityProvider(t),
		directory: users.NewMemoryStore(),
	}

	issuer := sessions.NewIssuer(s.idp.Verifier(), s.directory, tokens, revocations)
	RegisterRoutes(s.router.Group("/api"), issuer, nil, false)

	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == internalauth.SessionCookieName {
			return cookie
		}
	}
	return nil
}

func decodeUser(t *testing.T, w *httptest.ResponseRecorder) *users.User {
	t.Helper()

	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)

	return resp.User
}

func TestLogin_SetsHttpOnlyCookie(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Credential: s.idp.Assertion(t, "u1", "a@x.com")})

	require.Equal(t, http.StatusOK, w.Code)

	user := decodeUser(t, w)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, users.StatusPending, user.ProfileStatus)
	assert.NotContains(t, w.Body.String(), "u1", "subject id must not be serialized")

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Greater(t, cookie.MaxAge, 3500)
}

func TestLogin_GoogleAlias(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/google", LoginRequest{Credential: s.idp.Assertion(t, "u1", "a@x.com")})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_MissingCredential(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestLogin_InvalidCredential(t *testing.T) {
	s := newTestServer(t)
	stranger := authtest.NewIdentityProvider(t)

	w := s.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Credential: stranger.Assertion(t, "u1", "a@x.com")})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
	assert.Equal(t, 0, s.directory.Count())
}

func TestStatus(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/auth/status", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	login := s.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Credential: s.idp.Assertion(t, "u1", "a@x.com")})
	require.Equal(t, http.StatusOK, login.Code)

	w = s.do(t, http.MethodGet, "/api/auth/status", nil, sessionCookie(login))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@x.com", decodeUser(t, w).Email)

	tampered := *sessionCookie(login)
	tampered.Value += "x"
	w = s.do(t, http.MethodGet, "/api/auth/status", nil, &tampered)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type unreachableRevocations struct {
	*sessions.MemoryRevocations
}

func (unreachableRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func TestStatus_StoreOutageIsServerError(t *testing.T) {
	s := newTestServerWith(t, unreachableRevocations{sessions.NewMemoryRevocations()})

	login := s.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Credential: s.idp.Assertion(t, "u1", "a@x.com")})
	require.Equal(t, http.StatusOK, login.Code)

	w := s.do(t, http.MethodGet, "/api/auth/status", nil, sessionCookie(login))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "server_error")
}

func TestLogout_IdempotentAndClearsCookie(t *testing.T) {
	s := newTestServer(t)

	login := s.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Credential: s.idp.Assertion(t, "u1", "a@x.com")})
	require.Equal(t, http.StatusOK, login.Code)
	cookie := sessionCookie(login)

	for i := 0; i < 2; i++ {
		w := s.do(t, http.MethodPost, "/api/auth/logout", nil, cookie)
		require.Equal(t, http.StatusOK, w.Code)

		cleared := sessionCookie(w)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
		assert.Less(t, cleared.MaxAge, 0)
	}

	w := s.do(t, http.MethodGet, "/api/auth/status", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
