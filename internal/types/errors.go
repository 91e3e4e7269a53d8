package types

import (
	"fmt"
	"strings"
)

// ErrWarn collects findings that do not stop an operation but that a
// caller may want to surface, such as a live file whose sequence numbers
// are out of order.
type ErrWarn struct {
	Warnings []string
}

func (e *ErrWarn) Error() string {
	return strings.Join(e.Warnings, "\n")
}

func (e *ErrWarn) Is(target error) bool {
	_, ok := target.(*ErrWarn)
	return ok
}

func (e *ErrWarn) Add(s string, arg ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(s, arg...))
}

func (e *ErrWarn) Len() int {
	return len(e.Warnings)
}

// If returns e when at least one warning was added, nil otherwise.
func (e *ErrWarn) If() error {
	if len(e.Warnings) > 0 {
		return e
	}
	return nil
}
