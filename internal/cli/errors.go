package cli

import "errors"

// reportedError marks a failure whose details were already rendered
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already printed by a command
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
