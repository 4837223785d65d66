package services

import (
	"fmt"
	"log"
	"strings"

	"printstore/internal/models"
	"printstore/internal/repositories"
)

type UserService interface {
	Register(req models.RegisterRequest) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
}

type userService struct {
	repo   repositories.UserRepository
	emails EmailService
	auth   AuthService
}

func NewUserService(repo repositories.UserRepository, emails EmailService, auth AuthService) UserService {
	return &userService{repo: repo, emails: emails, auth: auth}
}

func (s *userService) Register(req models.RegisterRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hash,
		RoleID:       models.RoleCustomer,
		Active:       true,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	// best effort, registration does not depend on SMTP
	if err := s.emails.SendWelcomeEmail(user.Email, user.FullName); err != nil {
		log.Printf("[users] welcome email failed for userID=%d: %v", user.ID, err)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(email)
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}
