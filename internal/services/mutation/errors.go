package mutation

import "errors"

// expectedError marks a caller-facing refusal (missing resource, invalid
// input) raised inside a mutation, as opposed to an infrastructure failure
type expectedError struct {
	err error
}

func (e expectedError) Error() string { return e.err.Error() }
func (e expectedError) Unwrap() error { return e.err }

// Expected marks err as a caller-facing refusal. errors.Is and errors.As keep
// matching the wrapped error.
func Expected(err error) error {
	if err == nil {
		return nil
	}
	return expectedError{err: err}
}

// IsExpected reports whether err was marked with Expected
func IsExpected(err error) bool {
	var e expectedError
	return errors.As(err, &e)
}
