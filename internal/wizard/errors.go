package wizard

import (
	"errors"
	"fmt"

	"github.com/nightrabbit666/workassist/pkg/workassist"
)

// ErrorKind classifies a failed wizard operation.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	// KindValidation is caught before any request is sent.
	KindValidation
	// KindRequestFailure means no usable response arrived.
	KindRequestFailure
	// KindBackendRejection is a response explicitly signalling failure.
	KindBackendRejection
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindRequestFailure:
		return "request_failure"
	case KindBackendRejection:
		return "backend_rejection"
	default:
		return "unknown"
	}
}

var (
	ErrAnalysisInFlight = errors.New("analysis already in progress")
	ErrSaveInFlight     = errors.New("save already in progress")
	ErrStaleEdit        = errors.New("parameter list was replaced since this edit began")
	ErrWrongStep        = errors.New("action not available on this step")
)

// ValidationError reports input rejected locally.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Classify maps an error to its kind.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var verr *ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, ErrAnalysisInFlight),
		errors.Is(err, ErrSaveInFlight),
		errors.Is(err, ErrStaleEdit),
		errors.Is(err, ErrWrongStep):
		return KindValidation
	case workassist.IsRejection(err):
		return KindBackendRejection
	default:
		return KindRequestFailure
	}
}

// UserMessage renders err for display. Backend messages are shown when the
// server sent one; transport failures get a generic retryable message.
func UserMessage(op string, err error) string {
	switch Classify(err) {
	case KindNone:
		return ""
	case KindValidation:
		return err.Error()
	case KindBackendRejection:
		if msg := workassist.RejectionMessage(err); msg != "" {
			return fmt.Sprintf("%s failed: %s", op, msg)
		}
		return fmt.Sprintf("%s failed", op)
	default:
		return fmt.Sprintf("%s request failed, please retry", op)
	}
}
