package leads

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Interest is the category a prospect selects on the last wizard step.
type Interest string

const (
	InterestOffer Interest = "offer"
	InterestOther Interest = "other"
)

// Interests lists the accepted values in display order.
var Interests = []Interest{InterestOffer, InterestOther}

// ParseInterest accepts only the exact enumeration values.
func ParseInterest(raw string) (Interest, bool) {
	switch Interest(raw) {
	case InterestOffer, InterestOther:
		return Interest(raw), true
	default:
		return "", false
	}
}

// Lead is a persisted row of the leads table
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Interest  Interest  `json:"interest"`
	CreatedAt time.Time `json:"created_at"`
}

// Record is what gets inserted; identity and creation time come from the store.
type Record struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Interest Interest `json:"interest"`
}

const nameMaxLen = 100

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims surrounding whitespace from free-text fields.
func (r Record) Normalize() Record {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return r
}

// Validate checks the three required fields in step order and returns the first failure.
func (r Record) Validate() error {
	if err := ValidateName(r.Name); err != nil {
		return err
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	return ValidateInterest(string(r.Interest))
}

// ValidateName requires 2..100 characters after trimming.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > nameMaxLen {
		return ErrNameTooLong
	}
	if err := validate.Var(name, "required,min=2"); err != nil {
		return ErrInvalidName
	}
	return nil
}

// ValidateEmail requires a syntactically valid address.
func ValidateEmail(email string) error {
	if err := validate.Var(strings.TrimSpace(email), "required,email"); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateInterest requires exactly "offer" or "other".
func ValidateInterest(interest string) error {
	if _, ok := ParseInterest(interest); !ok {
		return ErrInvalidInterest
	}
	return nil
}

// ValidateOtherDetails bounds the optional free-text field.
func ValidateOtherDetails(details string) error {
	if err := validate.Var(details, "max=500"); err != nil {
		return ErrOtherDetailsTooLong
	}
	return nil
}
