package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the interview id references no stored record.
	ErrNotFound = errors.New("interview not found")

	// ErrInvalidInput means a required parameter was empty or missing.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGatewayUnavailable means the model gateway failed or timed out.
	// The orchestrator absorbs it; it never reaches the HTTP layer.
	ErrGatewayUnavailable = errors.New("model gateway unavailable")
)

// StorageError wraps a persistence failure with the operation that failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
