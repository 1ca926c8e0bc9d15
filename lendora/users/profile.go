package users

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinAddressLength = 5
	MaxBioLength     = 500
)

// digits, spaces and dashes with an optional leading +, at least ten characters
var phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)

func ValidPhoneNumber(phone string) bool {
	return phone != "" && phonePattern.MatchString(phone)
}

func ValidAddress(address string) bool {
	return utf8.RuneCountInString(address) >= MinAddressLength
}

func ValidBio(bio string) bool {
	n := utf8.RuneCountInString(bio)
	return n > 0 && n <= MaxBioLength
}

// the single authority for profile completion
func ComputeStatus(info AdditionalInfo) ProfileStatus {
	if ValidPhoneNumber(info.PhoneNumber) && ValidAddress(info.Address) && ValidBio(info.Bio) {
		return StatusComplete
	}

	return StatusPending
}

// merges the patch into info. text is trimmed of surrounding whitespace.
func (p ProfilePatch) Apply(info AdditionalInfo) AdditionalInfo {
	if p.PhoneNumber != nil {
		info.PhoneNumber = strings.TrimSpace(*p.PhoneNumber)
	}

	if p.Address != nil {
		info.Address = strings.TrimSpace(*p.Address)
	}

	if p.Bio != nil {
		info.Bio = strings.TrimSpace(*p.Bio)
	}

	return info
}

// whether the patch touches no field
func (p ProfilePatch) Empty() bool {
	return p.PhoneNumber == nil && p.Address == nil && p.Bio == nil
}

// applies patch to the record and recomputes status from the merged state
func (u *User) applyPatch(patch ProfilePatch) {
	u.AdditionalInfo = patch.Apply(u.AdditionalInfo)
	u.ProfileStatus = ComputeStatus(u.AdditionalInfo)
}

func (u *User) IsComplete() bool {
	return u.ProfileStatus == StatusComplete
}
