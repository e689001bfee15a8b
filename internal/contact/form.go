// Package contact validates the contact form and forwards submissions.
package contact

import (
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// MinMessageLength is the shortest accepted message, in characters.
	MinMessageLength = 10
	// MaxSubjectLength is the longest accepted subject, in characters.
	MaxSubjectLength = 200
)

// Form is a contact form submission.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// ValidationErrors maps a field name to its problem.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + v[f]
	}
	return "invalid contact form: " + strings.Join(parts, "; ")
}

// Normalize trims surrounding whitespace from every field.
func (f Form) Normalize() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}

// Validate checks the trimmed form. It returns nil or a non-empty ValidationErrors.
func (f Form) Validate() error {
	f = f.Normalize()
	errs := ValidationErrors{}

	if f.Name == "" {
		errs["name"] = "Name is required"
	}

	switch {
	case f.Email == "":
		errs["email"] = "Email is required"
	case !validEmail(f.Email):
		errs["email"] = "Please enter a valid email address"
	}

	switch {
	case f.Message == "":
		errs["message"] = "Message is required"
	case utf8.RuneCountInString(f.Message) < MinMessageLength:
		errs["message"] = "Message must be at least 10 characters"
	}

	if utf8.RuneCountInString(f.Subject) > MaxSubjectLength {
		errs["subject"] = "Subject must be at most 200 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
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
