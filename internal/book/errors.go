package book

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrNotFound is wrapped by actions that reference a missing circle, member or draw.
	ErrNotFound = errors.New("not found")

	// ErrConfirmationRequired is returned by destructive actions submitted without Confirm.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// ValidationError carries every problem found with an action's input.
// An action that returns one has not changed the snapshot.
type ValidationError struct {
	errs *multierror.Error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.errs.Error()
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.errs.WrappedErrors()
}

// Problems returns one message per failed check, in the order they were found.
func (e *ValidationError) Problems() []string {
	problems := make([]string, 0, len(e.errs.Errors))
	for _, err := range e.errs.Errors {
		problems = append(problems, err.Error())
	}
	return problems
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

type validator struct {
	errs *multierror.Error
}

func (v *validator) check(ok bool, format string, args ...any) {
	if !ok {
		v.errs = multierror.Append(v.errs, fmt.Errorf(format, args...))
	}
}

func (v *validator) add(err error) {
	v.errs = multierror.Append(v.errs, err)
}

func (v *validator) err() error {
	if v.errs.ErrorOrNil() == nil {
		return nil
	}
	v.errs.ErrorFormat = func(errs []error) string {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return strings.Join(msgs, "; ")
	}
	return &ValidationError{errs: v.errs}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

func confirmationRequired(what string) error {
	return fmt.Errorf("%s: %w", what, ErrConfirmationRequired)
}
