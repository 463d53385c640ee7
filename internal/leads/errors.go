package leads

import "errors"

var (
	// ErrInvalidName is returned when the name is missing or shorter than two characters
	ErrInvalidName = errors.New("name must be at least 2 characters")

	// ErrNameTooLong is returned when the name exceeds 100 characters
	ErrNameTooLong = errors.New("name must be at most 100 characters")

	// ErrInvalidEmail is returned when the email is not a valid address
	ErrInvalidEmail = errors.New("email is not a valid address")

	// ErrInvalidInterest is returned when the interest is not one of the offered options
	ErrInvalidInterest = errors.New("interest must be offer or other")

	// ErrOtherDetailsTooLong is returned when free-text details exceed 500 characters
	ErrOtherDetailsTooLong = errors.New("other details must be at most 500 characters")
)

// IsValidation reports whether err stems from record validation rather than the store.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrNameTooLong) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidInterest) ||
		errors.Is(err, ErrOtherDetailsTooLong)
}
