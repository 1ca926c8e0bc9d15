package profiles

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/lendora/server/internal/auth"
	"codeberg.org/lendora/server/lendora/users"
)

// reads and mutates the onboarding fields of a user record
type Service struct {
	directory users.Directory
	revoker   Revoker
	metrics   Metrics
}

type Option func(*Service)

func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// creates a profile service
func NewService(directory users.Directory, revoker Revoker, opts ...Option) *Service {
	s := &Service{
		directory: directory,
		revoker:   revoker,
		metrics:   nopMetrics{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Get(ctx context.Context, userID string) (*users.User, error) {
	if userID == "" {
		return nil, auth.ErrUnauthenticated
	}

	user, err := s.directory.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return user, nil
}

// validates the request and merges it into the stored record. completion
// status is recomputed by the directory inside the same write.
func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (*users.User, error) {
	if userID == "" {
		return nil, auth.ErrUnauthenticated
	}

	if verr := Validate(req); verr != nil {
		s.metrics.RecordProfileRejected()
		return nil, verr
	}

	user, err := s.directory.UpdateProfile(ctx, userID, req.patch())
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.metrics.RecordProfileUpdate(user.ProfileStatus)

	return user, nil
}

// removes the record and revokes the caller's credential. the credential
// is revoked even when the record was already gone. every error except a
// failed delete means the record no longer exists.
func (s *Service) Delete(ctx context.Context, userID string, claims *auth.Claims) error {
	if userID == "" {
		return auth.ErrUnauthenticated
	}

	deleteErr := s.directory.Delete(ctx, userID)
	if deleteErr != nil && !errors.Is(deleteErr, users.ErrNotFound) {
		return fmt.Errorf("failed to delete profile: %w", deleteErr)
	}

	if deleteErr == nil {
		s.metrics.RecordProfileDelete()
	}

	if err := s.revoker.Revoke(ctx, claims); err != nil {
		return fmt.Errorf("%w: %w", ErrRevokeFailed, err)
	}

	return deleteErr
}
