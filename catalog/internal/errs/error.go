package errs

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrHasDependents = errors.New("author has books")
)

// ValidationError carries the human readable messages of every failed field
// check, in field order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

type ErrKind uint8

const (
	KindInternal ErrKind = iota
	KindNotFound
	KindValidationFailed
)

func (k ErrKind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindValidationFailed:
		return "ValidationFailed"
	default:
		return "Internal"
	}
}

// Kind classifies err. Anything that is neither a missing record nor a failed
// form check is internal.
func Kind(err error) ErrKind {
	var verr *ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.As(err, &verr):
		return KindValidationFailed
	default:
		return KindInternal
	}
}

// Messages returns the validation messages of err, or nil.
func Messages(err error) []string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Messages
	}
	return nil
}
