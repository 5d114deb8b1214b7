package services

import (
	"errors"
	"log"
	"strings"

	"ardhi/internal/authz"
	"ardhi/internal/models"
	"ardhi/internal/repositories"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type UserService interface {
	Register(req *models.RegisterRequest) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
}

type userService struct {
	repo         repositories.UserRepository
	emailService EmailService
	authService  AuthService
}

func NewUserService(repo repositories.UserRepository, emailService EmailService, authService AuthService) UserService {
	return &userService{
		repo:         repo,
		emailService: emailService,
		authService:  authService,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(req *models.RegisterRequest) (*models.User, error) {
	email := NormalizeEmail(req.Email)

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = authz.DefaultRole
	}
	if !authz.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
	}
	// уникальность email дублируется индексом в БД
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
			// warn but do not fail registration
			log.Printf("[users][register] warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

func (s *userService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.repo.GetByEmail(NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if !s.authService.CheckPassword(strings.TrimSpace(password), user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
