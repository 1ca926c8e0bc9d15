package users

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestComputeStatus_Complete(t *testing.T) {
	info := AdditionalInfo{
		PhoneNumber: "9876543210",
		Address:     "12 Main St",
		Bio:         "hi",
	}

	assert.Equal(t, StatusComplete, ComputeStatus(info))
}

func TestComputeStatus_Pending(t *testing.T) {
	testCases := []struct {
		name string
		info AdditionalInfo
	}{
		{"empty", AdditionalInfo{}},
		{"missing phone", AdditionalInfo{Address: "12 Main St", Bio: "hi"}},
		{"short phone", AdditionalInfo{PhoneNumber: "12345", Address: "12 Main St", Bio: "hi"}},
		{"letters in phone", AdditionalInfo{PhoneNumber: "98765abcde", Address: "12 Main St", Bio: "hi"}},
		{"short address", AdditionalInfo{PhoneNumber: "9876543210", Address: "12", Bio: "hi"}},
		{"empty bio", AdditionalInfo{PhoneNumber: "9876543210", Address: "12 Main St"}},
		{"long bio", AdditionalInfo{PhoneNumber: "9876543210", Address: "12 Main St", Bio: strings.Repeat("a", 501)}},
	}

	for _, tc := range testCases {
		assert.Equal(t, StatusPending, ComputeStatus(tc.info), tc.name)
	}
}

func TestValidPhoneNumber_Formats(t *testing.T) {
	assert.True(t, ValidPhoneNumber("+1 555-123-4567"))
	assert.True(t, ValidPhoneNumber("98765 43210"))
	assert.False(t, ValidPhoneNumber(""))
	assert.False(t, ValidPhoneNumber("+123"))
	assert.False(t, ValidPhoneNumber("555.123.4567"))
}

func TestValidBio_CountsCharactersNotBytes(t *testing.T) {
	assert.True(t, ValidBio(strings.Repeat("é", MaxBioLength)))
	assert.False(t, ValidBio(strings.Repeat("é", MaxBioLength+1)))
}

func TestProfilePatch_ApplyKeepsUntouchedFields(t *testing.T) {
	info := AdditionalInfo{PhoneNumber: "9876543210", Address: "12 Main St", Bio: "hi"}

	merged := ProfilePatch{Bio: strPtr("  loves budgeting  ")}.Apply(info)

	assert.Equal(t, "9876543210", merged.PhoneNumber)
	assert.Equal(t, "12 Main St", merged.Address)
	assert.Equal(t, "loves budgeting", merged.Bio)
}

func TestProfilePatch_Empty(t *testing.T) {
	assert.True(t, ProfilePatch{}.Empty())
	assert.False(t, ProfilePatch{Address: strPtr("")}.Empty())
}
