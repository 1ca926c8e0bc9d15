package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(t *testing.T, handler func(c *gin.Context)) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	handler(c)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, c.IsAborted())

	return w, body
}

func TestResponders(t *testing.T) {
	tests := []struct {
		name    string
		handler func(c *gin.Context)
		status  int
		code    string
		message string
	}{
		{"unauthorized default", func(c *gin.Context) { Unauthorized(c, "") }, http.StatusUnauthorized, CodeUnauthorized, "authentication required"},
		{"unauthorized custom", func(c *gin.Context) { Unauthorized(c, "not authenticated") }, http.StatusUnauthorized, CodeUnauthorized, "not authenticated"},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "") }, http.StatusForbidden, CodeForbidden, "permission denied"},
		{"not found", func(c *gin.Context) { NotFound(c, "user") }, http.StatusNotFound, CodeNotFound, "user not found"},
		{"bad request", func(c *gin.Context) { BadRequest(c, "", nil) }, http.StatusBadRequest, CodeBadRequest, "invalid request"},
		{"too many", func(c *gin.Context) { TooManyRequests(c, "") }, http.StatusTooManyRequests, CodeTooManyRequests, "too many requests"},
		{"invalid credential", func(c *gin.Context) { InvalidCredential(c, errors.New("token expired")) }, http.StatusUnauthorized, CodeInvalidCredential, "invalid credentials"},
		{"internal", func(c *gin.Context) { InternalError(c, "", errors.New("boom")) }, http.StatusInternalServerError, CodeServerError, "an error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := respond(t, tt.handler)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, body.Error)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestValidationFailed_CarriesFields(t *testing.T) {
	fields := map[string]string{"phone_number": "Phone number is required"}

	w, body := respond(t, func(c *gin.Context) { ValidationFailed(c, fields) })

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeValidationError, body.Error)
	assert.Equal(t, fields, body.Errors)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category string
	}{
		{"postgres", &pgconn.PgError{Code: "23505"}, CategoryDatabase},
		{"no rows", fmt.Errorf("lookup: %w", pgx.ErrNoRows), CategoryNotFound},
		{"deadline", context.DeadlineExceeded, CategoryTimeout},
		{"canceled", context.Canceled, CategoryTimeout},
		{"network", errors.New("dial tcp: connection refused"), CategoryNetwork},
		{"validation", errors.New("phone number is required"), CategoryValidation},
		{"validation before auth", errors.New("invalid credential"), CategoryValidation},
		{"token", errors.New("token expired"), CategoryAuth},
		{"unknown", errors.New("something odd"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, classifyError(tt.err).category)
		})
	}
}

func TestSanitizeError_Production(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	assert.Equal(t, "database operation failed", sanitizeError(&pgconn.PgError{Message: "relation users"}))
	assert.Equal(t, "an error occurred", sanitizeError(errors.New("secret detail")))
}

func TestSanitizeError_Development(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	assert.Equal(t, "secret detail", sanitizeError(errors.New("secret detail")))
}
