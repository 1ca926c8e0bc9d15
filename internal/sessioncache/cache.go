package sessioncache

import (
	"context"
	"errors"
	"sync"

	"codeberg.org/lendora/server/internal/client"
	"codeberg.org/lendora/server/internal/logger"
)

// process-wide session state for the client. all network calls run without
// holding the lock; their results are applied only if the session epoch
// captured at call start is still current.
type Cache struct {
	api     API
	storage Storage

	mu     sync.Mutex
	entry  Entry
	epoch  uint64
	subs   map[int]chan Entry
	nextID int
	closed bool
}

// creates a cache that reports Loading until Start reconciles it
func New(api API, storage Storage) *Cache {
	return &Cache{
		api:     api,
		storage: storage,
		entry:   Entry{Phase: Authenticating, Loading: true},
		subs:    make(map[int]chan Entry),
	}
}

// returns a copy of the current entry
func (c *Cache) Entry() Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// loads the persisted snapshot for first paint, then reconciles it against
// the server. returns the reconciled entry.
func (c *Cache) Start(ctx context.Context) Entry {
	snapshot, err := c.storage.Load()
	if err != nil {
		logger.Warn("ignoring unreadable session snapshot", "error", err)
		snapshot = nil
	}

	c.mu.Lock()
	if snapshot != nil {
		c.api.SetCredential(snapshot.Credential)
		c.setLocked(Entry{Phase: Authenticated, User: snapshot.User, Loading: true})
	} else {
		c.setLocked(Entry{Phase: Authenticating, Loading: true})
	}
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// asks the server for the live session status and applies it
func (c *Cache) Refresh(ctx context.Context) Entry {
	epoch := c.currentEpoch()

	user, err := c.api.Status(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		return c.snapshotLocked()
	}

	switch {
	case err == nil:
		c.authenticateLocked(user)
	case errors.Is(err, client.ErrUnauthenticated):
		c.resetLocked("")
	default:
		// unreachable server: keep whatever we showed, but never vouch for it
		next := c.entry
		next.Loading = false
		next.Verified = false
		next.Error = err.Error()
		if next.User == nil {
			next.Phase = Anonymous
		}
		c.setLocked(next)
	}

	return c.snapshotLocked()
}

// exchanges an identity assertion for a session
func (c *Cache) Login(ctx context.Context, assertion string) (*client.User, error) {
	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	c.setLocked(Entry{Phase: Authenticating, Loading: true})
	c.mu.Unlock()

	user, err := c.api.Login(ctx, assertion)

	c.mu.Lock()

	if epoch != c.epoch {
		// the late response still set a live credential on the API
		var orphan string
		if err == nil {
			orphan = c.api.Credential()
			c.api.SetCredential("")
		}
		c.mu.Unlock()

		if err := c.api.Revoke(ctx, orphan); err != nil {
			logger.Warn("failed to revoke session from a superseded login", "error", err)
		}
		return nil, ErrStale
	}

	defer c.mu.Unlock()

	if err != nil {
		c.resetLocked(loginFailureMessage(err))
		return nil, err
	}

	c.authenticateLocked(user)

	return user, nil
}

// submits profile fields and replaces the cached user with the server's copy
func (c *Cache) UpdateProfile(ctx context.Context, update client.ProfileUpdate) (*client.User, error) {
	c.mu.Lock()
	if c.entry.Phase != Authenticated {
		c.mu.Unlock()
		return nil, client.ErrUnauthenticated
	}
	epoch := c.epoch
	c.mu.Unlock()

	user, err := c.api.UpdateProfile(ctx, update)

	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		return nil, ErrStale
	}

	if err != nil {
		if errors.Is(err, client.ErrUnauthenticated) {
			c.resetLocked("")
		}
		return nil, err
	}

	next := c.entry
	next.User = user
	c.setLocked(next)
	c.persistLocked()

	return user, nil
}

// clears local state first, then tells the server. the local session ends
// even when the server cannot be reached. the API drops its credential once
// the request is done.
func (c *Cache) Logout(ctx context.Context) {
	c.mu.Lock()
	c.clearLocked("")
	c.mu.Unlock()

	if err := c.api.Logout(ctx); err != nil {
		logger.Warn("server logout failed, local session cleared anyway", "error", err)
	}
}

// delivers the latest entry after every transition. the channel holds only
// the newest entry; cancel releases it.
func (c *Cache) Subscribe() (<-chan Entry, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Entry, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextID
	c.nextID++
	c.subs[id] = ch
	ch <- c.snapshotLocked()

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// closes every subscription
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	c.epoch++

	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

func (c *Cache) currentEpoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

func (c *Cache) authenticateLocked(user *client.User) {
	c.setLocked(Entry{Phase: Authenticated, Verified: true, User: user})
	c.persistLocked()
}

// ends the session: anonymous, no user, nothing persisted
func (c *Cache) resetLocked(message string) {
	c.api.SetCredential("")
	c.clearLocked(message)
}

func (c *Cache) clearLocked(message string) {
	c.epoch++
	c.setLocked(Entry{Phase: Anonymous, Error: message})

	if err := c.storage.Clear(); err != nil {
		logger.Warn("failed to clear session snapshot", "error", err)
	}
}

func (c *Cache) persistLocked() {
	err := c.storage.Save(Snapshot{User: c.entry.User, Credential: c.api.Credential()})
	if err != nil {
		logger.Warn("failed to persist session snapshot", "error", err)
	}
}

func (c *Cache) setLocked(next Entry) {
	next.Authenticated = next.Phase == Authenticated
	c.entry = next

	snapshot := c.snapshotLocked()
	for _, ch := range c.subs {
		// keep only the newest entry
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}

func (c *Cache) snapshotLocked() Entry {
	entry := c.entry
	if entry.User != nil {
		user := *entry.User
		entry.User = &user
	}
	return entry
}

func loginFailureMessage(err error) string {
	if errors.Is(err, client.ErrUnauthenticated) {
		return "invalid credentials"
	}

	return err.Error()
}
