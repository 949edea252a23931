package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FieldError is a rejection tied to a single form field so clients can map
// the message back to the offending input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewFieldError builds a field-keyed rejection.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

const (
	// MinScore and MaxScore are the canonical inclusive review score bounds.
	MinScore = 1
	MaxScore = 10

	reservedUsername = "me"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// Username accepts only letters, digits, underscore and hyphen, and rejects
// the reserved profile alias with a distinct message.
func Username(value string) error {
	if value == "" {
		return NewFieldError("username", "username is required")
	}
	if !usernameRe.MatchString(value) {
		return NewFieldError("username", "username contains forbidden characters")
	}
	if strings.EqualFold(value, reservedUsername) {
		return NewFieldError("username", "username 'me' is reserved")
	}
	return nil
}

// Year rejects release years in the future. The reference time is passed in
// explicitly so the check is evaluated at request time, never cached.
func Year(value int, now time.Time) error {
	if value > now.Year() {
		return NewFieldError("year", fmt.Sprintf("year %d is in the future", value))
	}
	return nil
}

// Score enforces the inclusive [1,10] range.
func Score(value int) error {
	if value < MinScore || value > MaxScore {
		return NewFieldError("score", fmt.Sprintf("score must be between %d and %d", MinScore, MaxScore))
	}
	return nil
}

// Slug accepts only letters, digits, underscore and hyphen.
func Slug(value string) error {
	if value == "" {
		return NewFieldError("slug", "slug is required")
	}
	if !slugRe.MatchString(value) {
		return NewFieldError("slug", "slug contains forbidden characters")
	}
	return nil
}

// Role accepts only the closed role set.
func Role(value string) error {
	switch value {
	case "user", "moderator", "admin":
		return nil
	}
	return NewFieldError("role", fmt.Sprintf("unknown role %q", value))
}
