package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"printstore/internal/models"
)

type PasswordResetTokenRepository interface {
	Create(t *models.PasswordResetToken) error
	// GetByToken returns (nil, nil) when no row matches.
	GetByToken(token string) (*models.PasswordResetToken, error)
	// InvalidateAllForUser flips used=TRUE on every live token of the user
	// and reports how many rows were touched.
	InvalidateAllForUser(userID int) (int64, error)
	// CountByEmailSince counts tokens minted for the given email after the
	// cutoff. Keyed by the account email so every IP shares one budget.
	CountByEmailSince(email string, since time.Time) (int, error)
	// Consume sets the user's password hash and marks the token used inside
	// one transaction; partial application is never left behind.
	Consume(tokenID, userID int, passwordHash string) error
	DeleteExpired(now time.Time) (int64, error)
}

type passwordResetTokenRepository struct {
	DB *sql.DB
}

func NewPasswordResetTokenRepository(db *sql.DB) PasswordResetTokenRepository {
	return &passwordResetTokenRepository{DB: db}
}

func (r *passwordResetTokenRepository) Create(t *models.PasswordResetToken) error {
	const q = `
		INSERT INTO password_reset_tokens (token, user_id, expires_at, used, created_at, ip_address)
		VALUES ($1, $2, $3, FALSE, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRow(q, t.Token, t.UserID, t.ExpiresAt, t.CreatedAt, t.IPAddress).Scan(&t.ID)
}

func (r *passwordResetTokenRepository) GetByToken(token string) (*models.PasswordResetToken, error) {
	const q = `
		SELECT id, token, user_id, expires_at, used, created_at, COALESCE(ip_address, '')
		FROM password_reset_tokens
		WHERE token = $1
	`
	t := &models.PasswordResetToken{}
	err := r.DB.QueryRow(q, token).Scan(&t.ID, &t.Token, &t.UserID, &t.ExpiresAt, &t.Used, &t.CreatedAt, &t.IPAddress)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *passwordResetTokenRepository) InvalidateAllForUser(userID int) (int64, error) {
	const q = `
		UPDATE password_reset_tokens SET used = TRUE
		WHERE user_id = $1 AND used = FALSE
	`
	res, err := r.DB.Exec(q, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *passwordResetTokenRepository) CountByEmailSince(email string, since time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM password_reset_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE LOWER(u.email) = LOWER($1) AND t.created_at > $2
	`
	var n int
	if err := r.DB.QueryRow(q, email, since).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *passwordResetTokenRepository) Consume(tokenID, userID int, passwordHash string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	res, err := tx.Exec(`UPDATE password_reset_tokens SET used = TRUE WHERE id = $1 AND used = FALSE`, tokenID)
	if err != nil {
		return fmt.Errorf("mark token used: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// lost the race against another consumer; roll everything back
		return sql.ErrNoRows
	}
	return tx.Commit()
}

func (r *passwordResetTokenRepository) DeleteExpired(now time.Time) (int64, error) {
	const q = `
		DELETE FROM password_reset_tokens WHERE expires_at < $1
	`
	res, err := r.DB.Exec(q, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
