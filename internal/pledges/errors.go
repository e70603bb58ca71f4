package pledges

import "errors"

// ErrPledgeNotFound is returned when a toggle targets an unknown pledge.
var ErrPledgeNotFound = errors.New("pledge not found")

// ValidationError reports rejected pledge text.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
