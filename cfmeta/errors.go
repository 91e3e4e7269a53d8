package cfmeta

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a value cannot cross the native
	// boundary, such as a string with an embedded NUL byte. The metadata
	// is left unchanged and the call may be retried with corrected input.
	ErrInvalidArgument = errors.New("invalid argument")
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
