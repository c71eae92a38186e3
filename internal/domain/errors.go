package domain

import "errors"

// Stable error kinds surfaced at the API boundary. Call sites wrap these with
// fmt.Errorf("...: %w", ...) so handlers can map them with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
	ErrInternal     = errors.New("internal error")
)

// KindOf returns the machine-readable kind for a core error, or "internal"
// for anything unclassified.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}
