package repositories

import (
	"database/sql"
	"time"

	"printstore/internal/models"
)

type PasswordResetAttemptRepository interface {
	Create(a *models.PasswordResetAttempt) error
	DeleteByNextAttemptBefore(cutoff time.Time) (int64, error)
	DeleteByAttemptedBefore(cutoff time.Time) (int64, error)
}

type passwordResetAttemptRepository struct {
	DB *sql.DB
}

func NewPasswordResetAttemptRepository(db *sql.DB) PasswordResetAttemptRepository {
	return &passwordResetAttemptRepository{DB: db}
}

func (r *passwordResetAttemptRepository) Create(a *models.PasswordResetAttempt) error {
	const q = `
		INSERT INTO password_reset_attempts (email, ip_address, attempted_at, next_attempt_allowed)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRow(q, a.Email, a.IPAddress, a.AttemptedAt, a.NextAttemptAllowed).Scan(&a.ID)
}

func (r *passwordResetAttemptRepository) DeleteByNextAttemptBefore(cutoff time.Time) (int64, error) {
	const q = `
		DELETE FROM password_reset_attempts WHERE next_attempt_allowed < $1
	`
	return r.execCount(q, cutoff)
}

func (r *passwordResetAttemptRepository) DeleteByAttemptedBefore(cutoff time.Time) (int64, error) {
	const q = `
		DELETE FROM password_reset_attempts WHERE attempted_at < $1
	`
	return r.execCount(q, cutoff)
}

func (r *passwordResetAttemptRepository) execCount(q string, cutoff time.Time) (int64, error) {
	res, err := r.DB.Exec(q, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
