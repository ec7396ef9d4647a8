package service

import (
	"errors"
	"fmt"
	"time"
)

const isoLayout = time.RFC3339

// ErrInvalidDueDate indicates a date field could not be parsed as RFC 3339.
var ErrInvalidDueDate = errors.New("invalid due date format")

func parseTimePtr(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(isoLayout, *value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDueDate, *value)
	}
	return &parsed, nil
}
