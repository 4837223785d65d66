package models

import "time"

// PasswordResetToken is a single-use reset grant. At most one unconsumed,
// unexpired token may exist per user: previous tokens are bulk-invalidated
// before a new one is minted.
type PasswordResetToken struct {
	ID        int       `json:"id"`
	Token     string    `json:"token"`
	UserID    int       `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
	IPAddress string    `json:"ip_address,omitempty"`
}

// PasswordResetAttempt is the audit row written for every processed
// forgot-password call. Append-only from the request path; only the
// cleanup sweeps delete rows.
type PasswordResetAttempt struct {
	ID                 int       `json:"id"`
	Email              string    `json:"email"`
	IPAddress          string    `json:"ip_address,omitempty"`
	AttemptedAt        time.Time `json:"attempted_at"`
	NextAttemptAllowed time.Time `json:"next_attempt_allowed"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type ValidateTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// ForgotPasswordResult is the data block of the forgot-password envelope.
// The same success-shaped body is returned whether or not the account
// exists; only the rate-limited case carries cooldown metadata.
type ForgotPasswordResult struct {
	EmailSent            bool       `json:"emailSent"`
	Email                string     `json:"email,omitempty"`
	NextAttemptAllowed   *time.Time `json:"nextAttemptAllowed,omitempty"`
	RemainingTimeSeconds *int64     `json:"remainingTimeSeconds,omitempty"`
}
