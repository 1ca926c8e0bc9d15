package profiles

import (
	"context"
	"errors"
	"sort"
	"strings"

	"codeberg.org/lendora/server/internal/auth"
	"codeberg.org/lendora/server/lendora/users"
)

// the record is gone but the caller's credential could not be revoked
var ErrRevokeFailed = errors.New("failed to revoke session")

const (
	FieldPhoneNumber = "phone_number"
	FieldAddress     = "address"
	FieldBio         = "bio"
)

// onboarding fields submitted by the user; nil keeps the stored value
type UpdateRequest struct {
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	Bio         *string `json:"bio"`
}

func (r UpdateRequest) patch() users.ProfilePatch {
	return users.ProfilePatch{
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
		Bio:         r.Bio,
	}
}

// per-field reasons for a rejected update, keyed by json field name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// invalidates the caller's session after the record is removed
type Revoker interface {
	Revoke(ctx context.Context, claims *auth.Claims) error
}

// profile counters; implemented by internal/metrics
type Metrics interface {
	RecordProfileUpdate(status users.ProfileStatus)
	RecordProfileRejected()
	RecordProfileDelete()
}

type nopMetrics struct{}

func (nopMetrics) RecordProfileUpdate(users.ProfileStatus) {}
func (nopMetrics) RecordProfileRejected()                  {}
func (nopMetrics) RecordProfileDelete()                    {}
