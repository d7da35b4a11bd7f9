package workassist

import (
	"errors"
	"fmt"
)

// ErrRequestFailed marks transport-level failures: the request never got a
// usable response (connection refused, timeout, undecodable body).
var ErrRequestFailed = errors.New("workassist: request failed")

// RejectionError is a well-formed backend response that explicitly signals
// failure, either through success=false or an error field.
type RejectionError struct {
	Op      string
	Status  int
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s rejected by backend", e.Op)
	}
	return fmt.Sprintf("%s rejected by backend: %s", e.Op, e.Message)
}

// IsRejection reports whether err carries a *RejectionError.
func IsRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}

// RejectionMessage returns the server-provided message of a rejection, or
// an empty string when err is not a rejection or carried no message.
func RejectionMessage(err error) string {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Message
	}
	return ""
}
