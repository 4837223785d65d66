package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"printstore/internal/keylock"
	"printstore/internal/models"
	"printstore/internal/repositories"
)

type PasswordResetService interface {
	// ProcessForgotPassword runs the full reset-request transaction for one
	// email: rate gate, audit row, invalidation of previous tokens, minting
	// and email dispatch. The returned result is success-shaped whether or
	// not the account exists. A *DeliveryError is the only error kind a
	// healthy store can produce.
	ProcessForgotPassword(email, clientIP string) (*models.ForgotPasswordResult, error)
	// ResetPassword consumes a token and updates the credential atomically.
	ResetPassword(token, newPassword, confirmPassword string) error
	// ValidateToken reports whether the token exists, is unused and is not
	// expired. Side-effect free.
	ValidateToken(token string) bool
	// CleanupExpiredTokens and CleanupExpiredAttempts are the idempotent
	// purge jobs driven by the background scheduler.
	CleanupExpiredTokens()
	CleanupExpiredAttempts()
}

type PasswordResetOptions struct {
	TokenTTL    time.Duration // default 1h
	RateWindow  time.Duration // default 1h
	MaxAttempts int           // tokens per rate window, default 3
}

type passwordResetService struct {
	userRepo    repositories.UserRepository
	tokenRepo   repositories.PasswordResetTokenRepository
	attemptRepo repositories.PasswordResetAttemptRepository
	emails      EmailService
	auth        AuthService
	alerts      *AlertService
	locks       *keylock.KeyedMutex
	opts        PasswordResetOptions
	now         func() time.Time
}

func NewPasswordResetService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.PasswordResetTokenRepository,
	attemptRepo repositories.PasswordResetAttemptRepository,
	emails EmailService,
	auth AuthService,
	alerts *AlertService,
	opts PasswordResetOptions,
) PasswordResetService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = time.Hour
	}
	if opts.RateWindow <= 0 {
		opts.RateWindow = time.Hour
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	return &passwordResetService{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		attemptRepo: attemptRepo,
		emails:      emails,
		auth:        auth,
		alerts:      alerts,
		locks:       keylock.New(),
		opts:        opts,
		now:         time.Now,
	}
}

func (s *passwordResetService) ProcessForgotPassword(email, clientIP string) (*models.ForgotPasswordResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	// Serialize all work for one identity: two concurrent requests for the
	// same email must not both pass the rate gate or both mint a token.
	unlock := s.locks.Lock(email)
	defer unlock()

	now := s.now()

	issued, err := s.tokenRepo.CountByEmailSince(email, now.Add(-s.opts.RateWindow))
	if err != nil {
		return nil, fmt.Errorf("count recent tokens: %w", err)
	}
	if issued >= s.opts.MaxAttempts {
		next := now.Add(s.opts.RateWindow)
		remaining := int64(next.Sub(now) / time.Second)
		if remaining < 0 {
			remaining = 0
		}
		log.Printf("[password-reset] rate limited email=%q issued=%d/%d next=%s",
			email, issued, s.opts.MaxAttempts, next.Format(time.RFC3339))
		return &models.ForgotPasswordResult{
			EmailSent:            false,
			Email:                email,
			NextAttemptAllowed:   &next,
			RemainingTimeSeconds: &remaining,
		}, nil
	}

	// Audit row for every processed request, found account or not. The
	// recorded cooldown matches the one promised to the caller.
	attempt := &models.PasswordResetAttempt{
		Email:              email,
		IPAddress:          clientIP,
		AttemptedAt:        now,
		NextAttemptAllowed: now.Add(s.opts.RateWindow),
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || !user.Active {
		// Same response shape as the sent case so that callers cannot probe
		// for registered addresses.
		log.Printf("[password-reset] request for unknown or inactive email=%q", email)
		return &models.ForgotPasswordResult{EmailSent: false}, nil
	}

	invalidated, err := s.tokenRepo.InvalidateAllForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("invalidate previous tokens: %w", err)
	}
	if invalidated > 0 {
		log.Printf("[password-reset] invalidated %d previous token(s) userID=%d", invalidated, user.ID)
	}

	token := &models.PasswordResetToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.opts.TokenTTL),
		CreatedAt: now,
		IPAddress: clientIP,
	}
	if err := s.tokenRepo.Create(token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	log.Printf("[password-reset] token issued userID=%d expires=%s", user.ID, token.ExpiresAt.Format(time.RFC3339))

	if err := s.emails.SendPasswordResetEmail(user.Email, user.FullName, token.Token); err != nil {
		// The token stays valid; issuance is decoupled from delivery.
		log.Printf("[password-reset] delivery failed userID=%d: %v", user.ID, err)
		s.alerts.Notify(fmt.Sprintf("password reset mail delivery failed for user %d: %v", user.ID, err))
		return nil, &DeliveryError{Err: err}
	}

	return &models.ForgotPasswordResult{EmailSent: true, Email: email}, nil
}

func (s *passwordResetService) ResetPassword(token, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	token = strings.TrimSpace(token)

	pr, err := s.tokenRepo.GetByToken(token)
	if err != nil {
		return fmt.Errorf("lookup token: %w", err)
	}
	if pr == nil {
		log.Printf("[password-reset] reset with unknown token")
		return ErrInvalidResetToken
	}
	if pr.Used {
		log.Printf("[password-reset] reset with already used token userID=%d", pr.UserID)
		return ErrInvalidResetToken
	}
	if s.now().After(pr.ExpiresAt) {
		log.Printf("[password-reset] reset with expired token userID=%d", pr.UserID)
		return ErrInvalidResetToken
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.tokenRepo.Consume(pr.ID, pr.UserID, hash); err != nil {
		return fmt.Errorf("consume token: %w", err)
	}
	log.Printf("[password-reset] password updated userID=%d", pr.UserID)
	return nil
}

func (s *passwordResetService) ValidateToken(token string) bool {
	pr, err := s.tokenRepo.GetByToken(strings.TrimSpace(token))
	if err != nil || pr == nil {
		return false
	}
	return !pr.Used && s.now().Before(pr.ExpiresAt)
}

func (s *passwordResetService) CleanupExpiredTokens() {
	n, err := s.tokenRepo.DeleteExpired(s.now())
	if err != nil {
		log.Printf("[cleanup] expired token sweep failed: %v", err)
		s.alerts.Notify(fmt.Sprintf("reset token sweep failed: %v", err))
		return
	}
	if n > 0 {
		log.Printf("[cleanup] deleted %d expired reset token(s)", n)
	}
}

func (s *passwordResetService) CleanupExpiredAttempts() {
	now := s.now()
	byCooldown, err := s.attemptRepo.DeleteByNextAttemptBefore(now)
	if err != nil {
		log.Printf("[cleanup] attempt sweep (cooldown) failed: %v", err)
		s.alerts.Notify(fmt.Sprintf("reset attempt sweep failed: %v", err))
		return
	}
	byAge, err := s.attemptRepo.DeleteByAttemptedBefore(now.Add(-24 * time.Hour))
	if err != nil {
		log.Printf("[cleanup] attempt sweep (age) failed: %v", err)
		s.alerts.Notify(fmt.Sprintf("reset attempt sweep failed: %v", err))
		return
	}
	if byCooldown > 0 || byAge > 0 {
		log.Printf("[cleanup] deleted reset attempts: by_cooldown=%d by_age=%d", byCooldown, byAge)
	}
}
