// Package forms holds the POST bodies of the caseworker screens and their
// validation. Validation is explicit rather than binding-tag driven so every
// failure carries a message suitable for the error summary at the top of
// the page.
package forms

import (
	"strings"
)

// FieldError is one entry in the page error summary, anchored to a field.
type FieldError struct {
	Field   string
	Message string
}

// Errors collects validation failures in display order.
type Errors []FieldError

func (e Errors) Any() bool { return len(e) > 0 }

// Get returns the message for a field, or empty.
func (e Errors) Get(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func (e *Errors) add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// LoginForm is the login page body.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

func (f *LoginForm) Validate() Errors {
	var errs Errors
	f.Username = strings.TrimSpace(f.Username)
	if f.Username == "" {
		errs.add("username", "Enter your username")
	}
	if f.Password == "" {
		errs.add("password", "Enter your password")
	}
	return errs
}

// checked reports whether a checkbox value was submitted as on.
func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "yes", "1":
		return true
	}
	return false
}
