// Package guard decides whether a navigation target may render for the
// current session cache entry. Decisions are pure and never block.
package guard

import (
	"net/url"
	"strings"

	"codeberg.org/lendora/server/internal/sessioncache"
)

type Action int

const (
	Allow Action = iota
	// reconciliation is still running; show a placeholder
	Wait
	Redirect
)

func (a Action) String() string {
	switch a {
	case Wait:
		return "wait"
	case Redirect:
		return "redirect"
	default:
		return "allow"
	}
}

type Decision struct {
	Action Action
	// set for Redirect
	Location string
}

// route table for the app. paths match exactly or as a prefix followed by "/".
type Routes struct {
	Login      string
	Onboarding string
	Home       string

	Public          []string
	RequireComplete []string
}

func DefaultRoutes() Routes {
	return Routes{
		Login:           "/login",
		Onboarding:      "/signup",
		Home:            "/user",
		Public:          []string{"/", "/login", "/signup"},
		RequireComplete: []string{"/user/applications"},
	}
}

func Check(target string, entry sessioncache.Entry, routes Routes) Decision {
	path := pathOf(target)
	verified := entry.Authenticated && entry.Verified

	if matchAny(path, routes.Public) {
		return checkPublic(target, path, entry, routes)
	}

	if entry.Loading {
		return Decision{Action: Wait}
	}

	if !verified {
		return Decision{Action: Redirect, Location: withFrom(routes.Login, target)}
	}

	if matchAny(path, routes.RequireComplete) && !entry.User.IsComplete() {
		return Decision{Action: Redirect, Location: withFrom(routes.Onboarding, target)}
	}

	return Decision{Action: Allow}
}

// signed-in users are sent on from the login and onboarding pages
func checkPublic(target, path string, entry sessioncache.Entry, routes Routes) Decision {
	if !entry.Authenticated || !entry.Verified || entry.Loading {
		return Decision{Action: Allow}
	}

	switch path {
	case routes.Login:
		if entry.User.IsComplete() {
			return Decision{Action: Redirect, Location: ReturnTo(target, routes.Home)}
		}
		return Decision{Action: Redirect, Location: withFrom(routes.Onboarding, fromOf(target))}
	case routes.Onboarding:
		if entry.User.IsComplete() {
			return Decision{Action: Redirect, Location: ReturnTo(target, routes.Home)}
		}
	}

	return Decision{Action: Allow}
}

// the location originally requested before a redirect, or fallback.
// only same-app relative paths are honored.
func ReturnTo(location, fallback string) string {
	from := fromOf(location)
	if !isLocalPath(from) {
		return fallback
	}

	return from
}

func withFrom(base, from string) string {
	if from == "" {
		return base
	}

	return base + "?" + url.Values{"from": {from}}.Encode()
}

func fromOf(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return ""
	}

	return u.Query().Get("from")
}

func isLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, "\\") {
		return false
	}

	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}

func pathOf(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Path == "" {
		return "/"
	}

	return u.Path
}

func matchAny(path string, routes []string) bool {
	for _, r := range routes {
		if path == r || (r != "/" && strings.HasPrefix(path, r+"/")) {
			return true
		}
	}

	return false
}
