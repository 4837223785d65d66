package services

import (
	"errors"
	"fmt"
)

var (
	// ErrPasswordMismatch is the only validation failure the reset flow
	// reports with a specific message.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrInvalidResetToken covers missing, already used and expired tokens
	// alike. The conflation is deliberate: the caller must not learn which
	// condition failed. The specific cause is logged server-side only.
	ErrInvalidResetToken = errors.New("invalid or expired token")
)

// DeliveryError marks a failure of the email transport, as opposed to a
// business failure. Token state persisted before the send stays valid.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("email delivery failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
