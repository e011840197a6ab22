package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// SlugRegex accepts lowercase letters, digits, hyphen, underscore
	SlugRegex = regexp.MustCompile(`^[a-z0-9-_]+$`)

	// EmailRegex is a simple email validation regex
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FirstError converts a validator error to a single user-facing message.
// Validation is fail-fast: only the first violated rule is reported.
func FirstError(err error) string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return "Invalid request body"
	}

	e := validationErrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

// ValidateSlug checks the slug format shared by news and page content
func ValidateSlug(slug string) (bool, string) {
	if strings.TrimSpace(slug) == "" {
		return false, "Slug is required and must be a non-empty string"
	}
	if !SlugRegex.MatchString(slug) {
		return false, "Slug may only contain lowercase letters, numbers, hyphens and underscores"
	}
	return true, ""
}

// RequireString checks that a required string field is present and
// non-empty after trimming
func RequireString(value, field string) (bool, string) {
	if strings.TrimSpace(value) == "" {
		return false, fmt.Sprintf("%s is required and must be a non-empty string", field)
	}
	return true, ""
}

// ForbiddenField reports the first server-owned field present in the raw
// JSON body. Payloads attempting to set these fields are rejected.
func ForbiddenField(body []byte, fields ...string) (string, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", false
	}

	for _, field := range fields {
		if _, present := raw[field]; present {
			return field, true
		}
	}
	return "", false
}

// ValidateEmail checks if an email is valid
func ValidateEmail(email string) bool {
	if len(email) < 3 || len(email) > 254 {
		return false
	}
	return EmailRegex.MatchString(email)
}

// SanitizeString removes potentially dangerous characters
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")
	// Trim whitespace
	s = strings.TrimSpace(s)
	return s
}
