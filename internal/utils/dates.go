package utils

import (
	"strings"
	"time"

	"github.com/skawamoto/campusboard/internal/constants"
)

// ParseDueDate parses a calendar date submitted by the task form.
// Empty input means no due date.
func ParseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(constants.DueDateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDueDate renders a due date back into the form's calendar-date
// shape. A nil due date renders empty.
func FormatDueDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(constants.DueDateLayout)
}
