package users

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("user not found")
)

// onboarding state derived from AdditionalInfo
type ProfileStatus string

const (
	StatusPending  ProfileStatus = "pending"
	StatusComplete ProfileStatus = "complete"
)

// onboarding fields collected after first login
type AdditionalInfo struct {
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Bio         string `json:"bio"`
}

// represents a user record in the directory
type User struct {
	ID             string         `json:"id"`
	SubjectID      string         `json:"-"`
	Email          string         `json:"email"`
	DisplayName    string         `json:"display_name"`
	PictureURL     string         `json:"picture_url"`
	ProfileStatus  ProfileStatus  `json:"profile_status"`
	AdditionalInfo AdditionalInfo `json:"additional_info"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// verified identity attributes used to create a record on first login
type Identity struct {
	SubjectID   string
	Email       string
	DisplayName string
	PictureURL  string
}

// partial profile update; nil fields keep their stored value
type ProfilePatch struct {
	PhoneNumber *string
	Address     *string
	Bio         *string
}

// persistent store of user records, one per subject.
// implementations must enforce subject uniqueness themselves and must
// recompute ProfileStatus inside the same write that merges a patch.
type Directory interface {
	// returns the record for identity.SubjectID, creating it (pending) if absent.
	// created reports whether this call performed the insert.
	FindOrCreate(ctx context.Context, identity Identity) (user *User, created bool, err error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error)
	Delete(ctx context.Context, id string) error
}
