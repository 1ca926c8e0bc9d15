package profiles

import (
	"strings"
	"unicode/utf8"

	"codeberg.org/lendora/server/lendora/users"
)

// checks every provided field. a request that provides nothing is treated
// as a form submitted with all fields blank.
func Validate(req UpdateRequest) *ValidationError {
	if req.PhoneNumber == nil && req.Address == nil && req.Bio == nil {
		blank := ""
		req = UpdateRequest{PhoneNumber: &blank, Address: &blank, Bio: &blank}
	}

	fields := make(map[string]string)

	if req.PhoneNumber != nil {
		phone := strings.TrimSpace(*req.PhoneNumber)
		switch {
		case phone == "":
			fields[FieldPhoneNumber] = "Phone number is required"
		case !users.ValidPhoneNumber(phone):
			fields[FieldPhoneNumber] = "Invalid phone number format"
		}
	}

	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		switch {
		case address == "":
			fields[FieldAddress] = "Address is required"
		case !users.ValidAddress(address):
			fields[FieldAddress] = "Address is too short"
		}
	}

	if req.Bio != nil {
		bio := strings.TrimSpace(*req.Bio)
		switch {
		case bio == "":
			fields[FieldBio] = "Bio is required"
		case utf8.RuneCountInString(bio) > users.MaxBioLength:
			fields[FieldBio] = "Bio must be less than 500 characters"
		}
	}

	if len(fields) == 0 {
		return nil
	}

	return &ValidationError{Fields: fields}
}
