package domain

import (
	"errors"
	"fmt"
)

// Rejection is a caller-facing failure with a human-readable reason.
// Error returns the reason verbatim; Unwrap exposes the sentinel kind for errors.Is.
type Rejection struct {
	Kind   error
	Reason string
}

// Reject builds a Rejection of the given kind with a formatted reason
func Reject(kind error, format string, args ...interface{}) *Rejection {
	return &Rejection{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func (r *Rejection) Error() string {
	return r.Reason
}

func (r *Rejection) Unwrap() error {
	return r.Kind
}

// ReasonOf extracts the reason of a Rejection anywhere in the chain
func ReasonOf(err error) (string, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Reason, true
	}
	return "", false
}
