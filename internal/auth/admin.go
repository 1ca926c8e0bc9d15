package auth

import (
	"crypto/subtle"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"codeberg.org/lendora/server/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminSessionName = "lendora_admin"
	adminSessionTTL  = 8 * time.Hour
	adminKey         = "admin"

	RoleLoanOfficer = "loan_officer"
)

var ErrAdminCredentials = stderrors.New("invalid admin credentials")

// an authenticated back-office operator
type Admin struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// server-verified admin login backed by a signed cookie session
type AdminAuth struct {
	store        *sessions.CookieStore
	adminID      string
	passwordHash []byte
}

// creates the admin authenticator. passwordHash is a bcrypt hash.
func NewAdminAuth(sessionSecret, adminID, passwordHash string, secure bool) (*AdminAuth, error) {
	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET must be set")
	}

	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
	}

	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(adminSessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &AdminAuth{
		store:        store,
		adminID:      adminID,
		passwordHash: []byte(passwordHash),
	}, nil
}

// checks the credentials and starts a signed admin session
func (a *AdminAuth) Login(w http.ResponseWriter, r *http.Request, id, password string) (*Admin, error) {
	idMatches := subtle.ConstantTimeCompare([]byte(id), []byte(a.adminID)) == 1
	// always run bcrypt so a wrong id costs the same as a wrong password
	passwordErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))

	if !idMatches || passwordErr != nil {
		return nil, ErrAdminCredentials
	}

	// a fresh session; ignore decode errors from stale cookies
	session, _ := a.store.New(r, adminSessionName) //nolint:errcheck
	session.Values[adminKey] = a.adminID
	session.Values["role"] = RoleLoanOfficer

	if err := session.Save(r, w); err != nil {
		return nil, fmt.Errorf("failed to save admin session: %w", err)
	}

	return &Admin{ID: a.adminID, Role: RoleLoanOfficer}, nil
}

// returns the admin bound to the request's session, if any
func (a *AdminAuth) Current(r *http.Request) (*Admin, bool) {
	session, err := a.store.Get(r, adminSessionName)
	if err != nil || session.IsNew {
		return nil, false
	}

	id, _ := session.Values[adminKey].(string)
	role, _ := session.Values["role"].(string)

	if id == "" || id != a.adminID || role == "" {
		return nil, false
	}

	return &Admin{ID: id, Role: role}, true
}

// expires the admin session cookie. safe without an active session.
func (a *AdminAuth) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := a.store.New(r, adminSessionName) //nolint:errcheck
	session.Options.MaxAge = -1

	return session.Save(r, w)
}

// requires an admin session
func (a *AdminAuth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := a.Current(c.Request)
		if !ok {
			errors.Unauthorized(c, "admin session required")
			return
		}

		c.Set("admin_id", admin.ID)
		c.Set("admin_role", admin.Role)
		c.Next()
	}
}
