// Package booking validates the client-only booking request form.
// Nothing is persisted or sent; a valid request only yields a confirmation.
package booking

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the accepted booking date format.
const DateLayout = "2006-01-02"

const (
	minNameLength    = 2
	maxCommentLength = 500
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid booking request")

// FieldError is a validation failure of one form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every invalid field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Request is a booking form submission.
type Request struct {
	ListingID string
	Name      string
	Email     string
	Date      string
	Comment   string
}

// Validate checks the request and returns a *ValidationError listing every
// invalid field, or nil.
func (r Request) Validate() error {
	var fields []FieldError
	add := func(field, msg string) {
		fields = append(fields, FieldError{Field: field, Message: msg})
	}

	name := strings.TrimSpace(r.Name)
	switch {
	case name == "":
		add("name", "Required")
	case utf8.RuneCountInString(name) < minNameLength:
		add("name", "Too short")
	}

	email := strings.TrimSpace(r.Email)
	if email == "" {
		add("email", "Required")
	} else if !validEmail(email) {
		add("email", "Invalid email")
	}

	date := strings.TrimSpace(r.Date)
	if date == "" {
		add("date", "Required")
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		add("date", "Invalid date, expected YYYY-MM-DD")
	}

	if utf8.RuneCountInString(r.Comment) > maxCommentLength {
		add("comment", "Too long")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// validEmail accepts a bare address with a dotted domain.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndex(s, "@")
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

// Confirmation returns the notice shown after a successful submission.
func (r Request) Confirmation(listingName string) string {
	name := strings.TrimSpace(r.Name)
	if listingName == "" {
		return fmt.Sprintf("Thanks, %s! Your booking request for %s has been sent.", name, strings.TrimSpace(r.Date))
	}
	return fmt.Sprintf("Thanks, %s! Your booking request for %s on %s has been sent.", name, listingName, strings.TrimSpace(r.Date))
}
