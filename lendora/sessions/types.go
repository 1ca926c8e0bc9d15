package sessions

import (
	"context"
	"errors"
	"time"

	"codeberg.org/lendora/server/lendora/users"
)

var (
	// the user directory could not complete a login write; reported, never retried
	ErrDirectory = errors.New("directory error")
)

// records revoked session credentials until they would have expired anyway
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// outcome of a successful login
type LoginResult struct {
	User      *users.User
	Token     string
	ExpiresAt time.Time
	Created   bool
}

// login/logout counters; implemented by internal/metrics
type Metrics interface {
	RecordLogin(created bool)
	RecordLoginFailure(reason string)
	RecordLogout()
}

type nopMetrics struct{}

func (nopMetrics) RecordLogin(bool)          {}
func (nopMetrics) RecordLoginFailure(string) {}
func (nopMetrics) RecordLogout()             {}
