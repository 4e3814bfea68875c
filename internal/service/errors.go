package service

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/umaralireal1/qisst2026/internal/backup"
	"github.com/umaralireal1/qisst2026/internal/book"
)

// connectError maps a domain error onto the Connect code a client can act on.
func connectError(err error) *connect.Error {
	switch {
	case book.IsValidation(err):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, book.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case book.IsConfirmationRequired(err):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, backup.ErrNotConfigured), errors.Is(err, backup.ErrEmptySnapshot):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, backup.ErrInvalidPayload), errors.Is(err, backup.ErrTransport):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(format string, args ...any) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}
