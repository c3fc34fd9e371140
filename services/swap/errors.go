package swap

import "fmt"

// Error codes returned by the swap engine. Callers map these onto HTTP
// status categories; Conflict and Unavailable are safe to retry because the
// failed attempt made no partial change.
const (
	CodeNotFound        = "notFound"
	CodeForbidden       = "forbidden"
	CodeInvalidState    = "invalidState"
	CodeSelfSwap        = "selfSwap"
	CodeAlreadyResolved = "alreadyResolved"
	CodeConflict        = "conflict"
	CodeUnavailable     = "unavailable"
)

// SwapError is a typed failure surfaced by the swap engine.
type SwapError struct {
	Code    string
	Message string
}

func (e *SwapError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(msg string) error {
	return &SwapError{Code: CodeNotFound, Message: msg}
}

func NewForbiddenError(msg string) error {
	return &SwapError{Code: CodeForbidden, Message: msg}
}

func NewInvalidStateError(msg string) error {
	return &SwapError{Code: CodeInvalidState, Message: msg}
}

func NewSelfSwapError(msg string) error {
	return &SwapError{Code: CodeSelfSwap, Message: msg}
}

func NewAlreadyResolvedError(msg string) error {
	return &SwapError{Code: CodeAlreadyResolved, Message: msg}
}

func NewConflictError(msg string) error {
	return &SwapError{Code: CodeConflict, Message: msg}
}

func NewUnavailableError(msg string) error {
	return &SwapError{Code: CodeUnavailable, Message: msg}
}
