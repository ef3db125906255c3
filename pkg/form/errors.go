package form

import (
	"errors"
	"fmt"
)

// ErrRejected matches any submission refused by its token check.
var ErrRejected = errors.New("submission rejected")

// RejectionError reports a submission whose token did not verify. It wraps
// the underlying nonce error, so errors.Is(err, nonce.ErrVerificationFailed)
// also holds.
type RejectionError struct {
	FormID string
	Err    error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("form %q: %v: %v", e.FormID, ErrRejected, e.Err)
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrRejected.
func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}
