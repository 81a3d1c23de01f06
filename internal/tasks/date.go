package tasks

import (
	"strings"
	"time"
)

// DueLayout is the only accepted due date format.
const DueLayout = "2006-01-02"

var (
	errEmptyText = &ValidationError{Field: "text", Message: "Task cannot be empty."}
	errBadDue    = &ValidationError{Field: "due", Message: "Please use YYYY-MM-DD format."}
)

// ValidateText trims text and rejects an empty result.
func ValidateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errEmptyText
	}
	return text, nil
}

// ValidateDue accepts "" (no due date) or a real calendar date in YYYY-MM-DD.
// The returned value is trimmed.
func ValidateDue(due string) (string, error) {
	due = strings.TrimSpace(due)
	if due == "" {
		return "", nil
	}
	// Zero-padded fields only, so stored dates sort lexicographically.
	// time.Parse also rejects month 13, day 40, Feb 30 and so on.
	if _, err := time.Parse(DueLayout, due); err != nil {
		return "", errBadDue
	}
	return due, nil
}
