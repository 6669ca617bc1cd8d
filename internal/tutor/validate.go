package tutor

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MinInputChars = 3
	MaxInputChars = 5000
)

var (
	ErrEmptyInput    = errors.New("empty input")
	ErrInputTooShort = errors.New("input too short")
	ErrInputTooLong  = errors.New("input too long")
)

// InputValidationError rejects raw input before any routing happens.
type InputValidationError struct {
	Kind    error
	Message string
}

func (e *InputValidationError) Error() string { return e.Message }
func (e *InputValidationError) Unwrap() error { return e.Kind }

// ValidateInput checks the length bounds of raw input. Errors are
// *InputValidationError wrapping ErrEmptyInput, ErrInputTooShort or
// ErrInputTooLong.
func ValidateInput(text string) error {
	if text == "" {
		return &InputValidationError{Kind: ErrEmptyInput, Message: "Input cannot be empty."}
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinInputChars {
		return &InputValidationError{
			Kind:    ErrInputTooShort,
			Message: "Input is too short. Please provide at least 3 characters.",
		}
	}
	if utf8.RuneCountInString(text) > MaxInputChars {
		return &InputValidationError{
			Kind:    ErrInputTooLong,
			Message: "Input is too long. Please limit to 5000 characters.",
		}
	}
	return nil
}
