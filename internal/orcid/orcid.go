// Package orcid validates ORCID identifiers and builds ORCID profile links.
package orcid

import (
	"errors"
	"regexp"
	"strings"
)

// Pattern matches a bare ORCID iD: four groups of four digits, the last digit may be X.
var Pattern = regexp.MustCompile(`(?i)^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)

// ErrInvalidID is returned for input that is not an ORCID iD.
// Its message is shown to visitors as-is.
var ErrInvalidID = errors.New("Please enter a valid ORCID ID in the format: 0000-0000-0000-0000")

const profileBase = "https://orcid.org/"

// Validate trims the input and checks it against Pattern.
// It returns the identifier with the check character upper-cased.
func Validate(input string) (string, error) {
	id := strings.TrimSpace(input)
	if id == "" || !Pattern.MatchString(id) {
		return "", ErrInvalidID
	}
	return strings.ToUpper(id), nil
}

// IsValid reports whether input is a well-formed ORCID iD.
func IsValid(input string) bool {
	_, err := Validate(input)
	return err == nil
}

// ProfileURL returns the public profile page for an ORCID iD.
func ProfileURL(id string) string {
	return profileBase + id
}

// WorkURL returns the public page of one work in an ORCID record.
func WorkURL(id, putCode string) string {
	return profileBase + id + "/work/" + putCode
}
