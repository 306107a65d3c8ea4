package oauthdata

import "errors"

var (
	ErrEmptyEmail     = errors.New("record email must not be empty")
	ErrScopeDelimiter = errors.New("scope must not contain the delimiter character")
)

// StorageError wraps a failure from the backing store so the original cause
// stays attached instead of being swallowed.
type StorageError struct {
	Op    string // "save", "load", "remove" or "clear"
	Email string // empty for whole-store operations
	Cause error
}

func (e *StorageError) Error() string {
	msg := e.Op + " oauth record"
	if e.Email != "" {
		msg += " for " + e.Email
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// IsStorageFailure reports whether err originates from the backing store.
func IsStorageFailure(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}
