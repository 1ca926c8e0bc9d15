package sessioncache

import (
	"context"
	"errors"

	"codeberg.org/lendora/server/internal/client"
)

// a response arrived for a session that has since ended; it was discarded
var ErrStale = errors.New("session changed while the request was in flight")

type Phase int

const (
	Anonymous Phase = iota
	Authenticating
	Authenticated
)

func (p Phase) String() string {
	switch p {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// what the UI reads to decide what to render.
// Verified is false while the identity only comes from the persisted snapshot.
type Entry struct {
	Phase         Phase
	Authenticated bool
	Verified      bool
	User          *client.User
	Loading       bool
	Error         string
}

// the session API the cache drives; implemented by *client.Client
type API interface {
	Login(ctx context.Context, assertion string) (*client.User, error)
	Status(ctx context.Context) (*client.User, error)
	Logout(ctx context.Context) error
	// revokes a credential other than the current one
	Revoke(ctx context.Context, credential string) error
	UpdateProfile(ctx context.Context, update client.ProfileUpdate) (*client.User, error)
	Credential() string
	SetCredential(credential string)
}

// the persisted copy: a cache for the next start, never a source of truth
type Snapshot struct {
	User       *client.User `json:"user"`
	Credential string       `json:"credential,omitempty"`
}

type Storage interface {
	// returns nil, nil when nothing is stored
	Load() (*Snapshot, error)
	Save(snapshot Snapshot) error
	Clear() error
}
