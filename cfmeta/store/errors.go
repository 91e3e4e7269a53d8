package store

import (
	"errors"
	"fmt"
)

var (
	ErrObjectExists      = errors.New("object already exists in store")
	ErrObjectStore       = errors.New("object store error")
	ErrExportExists      = errors.New("export already exists")
	ErrExportNotFound    = errors.New("export not found")
	ErrChecksumMismatch  = errors.New("checksum mismatch")
	ErrInvalidExport     = errors.New("invalid export object")
	ErrInvalidFlatbuffer = errors.New("invalid export flatbuffer")
)

// RetryableError wraps a bucket failure that may succeed if the call is
// repeated. errors.Is(err, ErrObjectStore) holds for every RetryableError.
type RetryableError struct {
	msg string
	err error
}

func errRetryable(err error, f string, args ...any) error {
	return &RetryableError{msg: fmt.Sprintf(f, args...), err: err}
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.err)
}

func (e *RetryableError) Unwrap() error {
	return e.err
}

func (e *RetryableError) Is(target error) bool {
	return target == ErrObjectStore
}
