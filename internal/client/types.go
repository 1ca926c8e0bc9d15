package client

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// the server answered 401; the caller holds no valid session
var ErrUnauthenticated = errors.New("not authenticated")

const (
	StatusPending  = "pending"
	StatusComplete = "complete"
)

type AdditionalInfo struct {
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Bio         string `json:"bio"`
}

// non-secret user fields as served by the API
type User struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	DisplayName    string         `json:"display_name"`
	PictureURL     string         `json:"picture_url"`
	ProfileStatus  string         `json:"profile_status"`
	AdditionalInfo AdditionalInfo `json:"additional_info"`
}

// completion as reported by the server, never recomputed locally
func (u *User) IsComplete() bool {
	return u != nil && u.ProfileStatus == StatusComplete
}

// onboarding fields to submit; nil fields are left out of the request
type ProfileUpdate struct {
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

// a 400 carrying per-field reasons, keyed by json field name
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}

	return strings.Join(parts, "; ")
}

// any other non-2xx answer
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type userResponse struct {
	User *User `json:"user"`
}

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details string            `json:"details,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}
