package service

import (
	"errors"
	"strings"

	"github.com/jask/kairo/internal/money"
)

// ParseAmount reads a user-typed amount with f, reporting failures as a
// *ValidationError on field.
func ParseAmount(f money.Formatter, field, input string) (int64, error) {
	v, err := f.Parse(input)
	if err == nil {
		return v, nil
	}
	reason := err.Error()
	switch {
	case errors.Is(err, money.ErrEmpty):
		reason = "required"
	case errors.Is(err, money.ErrNotNumber):
		reason = "not a number"
	case errors.Is(err, money.ErrFractional):
		reason = "must be a whole amount"
	case errors.Is(err, money.ErrNotPositive):
		reason = "must be greater than zero"
	}
	return 0, &ValidationError{Field: field, Reason: reason}
}

// RequireText trims s and rejects it when nothing is left.
func RequireText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: field, Reason: "required"}
	}
	return s, nil
}

func requirePositive(field string, amount int64) error {
	if amount <= 0 {
		return &ValidationError{Field: field, Reason: "must be greater than zero"}
	}
	return nil
}
