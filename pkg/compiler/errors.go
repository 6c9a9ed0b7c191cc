package compiler

import "fmt"

// InvalidChordError reports a malformed chord form.
type InvalidChordError struct {
	Reason string
}

func (e *InvalidChordError) Error() string {
	return fmt.Sprintf("invalid chord: %s", e.Reason)
}

// InvalidDurationError reports a duration token or form that could not be
// resolved.
type InvalidDurationError struct {
	Message string
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("invalid duration: %s", e.Message)
}

// InvalidClefError reports an unrecognized clef form.
type InvalidClefError struct {
	Message string
}

func (e *InvalidClefError) Error() string {
	return fmt.Sprintf("invalid clef: %s", e.Message)
}

// UnknownFormError reports a form whose head symbol is not recognized in a
// position where skipping is not allowed.
type UnknownFormError struct {
	Message string
}

func (e *UnknownFormError) Error() string {
	return fmt.Sprintf("unknown form: %s", e.Message)
}

// MissingFieldError reports a required positional field absent from a form.
type MissingFieldError struct {
	Name string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field: %s", e.Name)
}

// TypeMismatchError reports a form item of the wrong kind.
type TypeMismatchError struct {
	Expected string
	Found    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, found %s", e.Expected, e.Found)
}
