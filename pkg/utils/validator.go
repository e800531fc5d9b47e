package utils

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	MinUserAge = 14
	MaxUserAge = 150

	// MaxPasswordBytes is the longest input bcrypt will hash.
	MaxPasswordBytes = 72
)

// valid example: +123-1234512345
var phoneNumberPattern = regexp.MustCompile(`^\+\d{1,3}-\d{10}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("phone_number", func(fl validator.FieldLevel) bool {
		return phoneNumberPattern.MatchString(fl.Field().String())
	})
	return v
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// ValidateVar checks a single value against a tag list such as "phone_number".
func ValidateVar(value any, tag string) bool {
	return validate.Var(value, tag) == nil
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "phone_number":
		return "Must look like +<country code>-<10 digits>"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	var msgs []string
	for field, msg := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// PasswordProblem returns the first password rule the value breaks, or "".
func PasswordProblem(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long."
	}
	if !strings.ContainsFunc(password, unicode.IsLower) {
		return "Password must contain at least one lowercase letter."
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return "Password must contain at least one uppercase letter."
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		return "Password must contain at least one digit."
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Sprintf("Password must be at most %d bytes long.", MaxPasswordBytes)
	}
	return ""
}

// AgeAt returns the number of full years between dob and now.
func AgeAt(dob, now time.Time) int {
	dob = dob.UTC()
	now = now.UTC()
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}
