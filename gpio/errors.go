package gpio

import "errors"

// Error is the type of the validation errors of this package
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrorInvalidPin        = Error("Pin number isn't valid")
	ErrorInvalidDirection  = Error("Direction must be 'input' or 'output'")
	ErrorInvalidExportMode = Error("Export mode must be 'needed', 'off' or 'force'")
	ErrorInvalidClass      = Error("Board revision class must be 1 or 2")
)

// IsValidationError reports whether err was caused by invalid arguments. These
// errors are always returned before any helper or filesystem access happens.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrorInvalidPin) ||
		errors.Is(err, ErrorInvalidDirection) ||
		errors.Is(err, ErrorInvalidExportMode)
}
