package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"printstore/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	// GetByEmail matches case-insensitively and returns (nil, nil) when no
	// row exists, so callers can treat lookup misses without error plumbing.
	GetByEmail(email string) (*models.User, error)
	UpdatePassword(userID int, passwordHash string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (full_name, email, password_hash, role_id, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(q,
		user.FullName,
		strings.ToLower(strings.TrimSpace(user.Email)),
		user.PasswordHash,
		user.RoleID,
		user.Active,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `
		SELECT id, full_name, email, password_hash, role_id, active, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, full_name, email, password_hash, role_id, active, created_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`
	return r.scanOne(r.DB.QueryRow(q, strings.TrimSpace(email)))
}

func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	const q = `
		UPDATE users SET password_hash = $1 WHERE id = $2
	`
	_, err := r.DB.Exec(q, passwordHash, userID)
	return err
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.RoleID, &u.Active, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
