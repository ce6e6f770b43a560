package internal

import (
	"errors"
	"fmt"

	"github.com/DrGermanius/Reconciler/internal/model"
)

var (
	ErrNoRecords = errors.New("no records")

	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidIdentifiers = errors.New("no order identifier supplied")
	ErrMalformedBody      = errors.New("malformed notification body")
	ErrUnsupportedStatus  = errors.New("unsupported target status")
	ErrTerminalConflict   = errors.New("order is in a terminal state")
	ErrIllegalState       = errors.New("illegal order state")
	ErrConcurrentUpdate   = errors.New("order was modified concurrently")

	ErrUnauthorized = errors.New("unauthorized")
)

// TerminalConflictError is returned when a confirmation would overwrite a cancellation
// or a refund.
type TerminalConflictError struct {
	OrderID string
	State   model.State
}

func (e *TerminalConflictError) Error() string {
	return fmt.Sprintf("order %s cannot be confirmed: already %s", e.OrderID, e.State)
}

func (e *TerminalConflictError) Is(target error) bool {
	return target == ErrTerminalConflict
}
