package guard

import (
	"testing"

	"codeberg.org/lendora/server/internal/client"
	"codeberg.org/lendora/server/internal/sessioncache"
	"github.com/stretchr/testify/assert"
)

func entryFor(phase sessioncache.Phase, verified, loading bool, status string) sessioncache.Entry {
	e := sessioncache.Entry{
		Phase:         phase,
		Authenticated: phase == sessioncache.Authenticated,
		Verified:      verified,
		Loading:       loading,
	}
	if status != "" {
		e.User = &client.User{ID: "user-1", ProfileStatus: status}
	}
	return e
}

func TestCheck(t *testing.T) {
	routes := DefaultRoutes()

	var (
		anonymous      = entryFor(sessioncache.Anonymous, false, false, "")
		authenticating = entryFor(sessioncache.Authenticating, false, true, "")
		optimistic     = entryFor(sessioncache.Authenticated, false, true, client.StatusComplete)
		offline        = entryFor(sessioncache.Authenticated, false, false, client.StatusComplete)
		pending        = entryFor(sessioncache.Authenticated, true, false, client.StatusPending)
		complete       = entryFor(sessioncache.Authenticated, true, false, client.StatusComplete)
	)

	testCases := []struct {
		name   string
		target string
		entry  sessioncache.Entry
		want   Decision
	}{
		{"public home while anonymous", "/", anonymous, Decision{Action: Allow}},
		{"public page while loading", "/login", authenticating, Decision{Action: Allow}},
		{"protected while reconciling", "/user/profile", authenticating, Decision{Action: Wait}},
		{"protected with unverified snapshot waits", "/user", optimistic, Decision{Action: Wait}},
		{"protected anonymous redirects", "/user/profile", anonymous,
			Decision{Action: Redirect, Location: "/login?from=%2Fuser%2Fprofile"}},
		{"protected unverified after failed check redirects", "/user", offline,
			Decision{Action: Redirect, Location: "/login?from=%2Fuser"}},
		{"protected verified pending", "/user/profile", pending, Decision{Action: Allow}},
		{"complete-only route with pending profile", "/user/applications", pending,
			Decision{Action: Redirect, Location: "/signup?from=%2Fuser%2Fapplications"}},
		{"complete-only route with complete profile", "/user/applications/42", complete, Decision{Action: Allow}},
		{"login while signed in returns to origin", "/login?from=%2Fuser%2Fprofile", complete,
			Decision{Action: Redirect, Location: "/user/profile"}},
		{"login while pending goes to onboarding", "/login?from=%2Fuser", pending,
			Decision{Action: Redirect, Location: "/signup?from=%2Fuser"}},
		{"signup when complete goes home", "/signup", complete, Decision{Action: Redirect, Location: "/user"}},
		{"signup when pending shows the form", "/signup", pending, Decision{Action: Allow}},
		{"unknown path is protected", "/settings", anonymous,
			Decision{Action: Redirect, Location: "/login?from=%2Fsettings"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Check(tc.target, tc.entry, routes))
		})
	}
}

func TestReturnTo(t *testing.T) {
	testCases := []struct {
		location string
		want     string
	}{
		{"/login?from=%2Fuser%2Fprofile", "/user/profile"},
		{"/login?from=%2Fuser%3Ftab%3Dloans", "/user?tab=loans"},
		{"/login", "/user"},
		{"/login?from=https%3A%2F%2Fevil.example", "/user"},
		{"/login?from=%2F%2Fevil.example", "/user"},
		{"/login?from=user", "/user"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, ReturnTo(tc.location, "/user"), tc.location)
	}
}
