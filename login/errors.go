package login

import "errors"

var (
	ErrNotLoggedIn      = errors.New("no account is logged in")
	ErrEmailNotReturned = errors.New("identity endpoint returned no email address")
)

// IOError marks a transport-level failure during token exchange or an
// identity query. Unlike ErrEmailNotReturned, these failures are considered
// transient and retryable by convention.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return "network request failed: " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsIOFailure reports whether err is a transport-level failure.
func IsIOFailure(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
