package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"ardhi/internal/repositories"
)

var (
	ErrEmailNotFound    = errors.New("email not found")
	ErrCodeInvalid      = errors.New("invalid or expired code")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

const (
	resetCodeTTL = 15 * time.Minute
	maxCodeDraws = 5
)

type PasswordResetService interface {
	RequestReset(email string) error
	ConfirmReset(code, newPassword string) error
}

type passwordResetService struct {
	users  repositories.UserRepository
	emails EmailService
	auth   AuthService
}

func NewPasswordResetService(users repositories.UserRepository, emails EmailService, auth AuthService) PasswordResetService {
	return &passwordResetService{
		users:  users,
		emails: emails,
		auth:   auth,
	}
}

// generateCode — равномерный 6-значный код в диапазоне 100000–999999.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (s *passwordResetService) RequestReset(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return ErrEmailNotFound
	}
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrEmailNotFound
	}

	// код глобально уникален среди активных: иначе подтверждение по коду
	// без user id было бы неоднозначным
	var code string
	for i := 0; i < maxCodeDraws; i++ {
		c, err := generateCode()
		if err != nil {
			return err
		}
		holder, err := s.users.GetByActiveResetCode(c)
		if err != nil {
			return err
		}
		if holder == nil || holder.ID == user.ID {
			code = c
			break
		}
	}
	if code == "" {
		return errors.New("could not generate a unique reset code")
	}

	expires := time.Now().Add(resetCodeTTL)
	if err := s.users.SetResetCode(user.ID, code, expires); err != nil {
		return err
	}

	if err := s.emails.SendResetCodeEmail(user.Email, code); err != nil {
		log.Printf("[password-reset] failed to send code to %s: %v", user.Email, err)
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

func (s *passwordResetService) ConfirmReset(code, newPassword string) error {
	code = strings.TrimSpace(code)
	newPassword = strings.TrimSpace(newPassword)
	if code == "" {
		return ErrCodeInvalid
	}
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	user, err := s.users.GetByActiveResetCode(code)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrCodeInvalid
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	// один UPDATE: новый хеш + погашенный код, код одноразовый
	return s.users.UpdatePasswordAndClearReset(user.ID, hash)
}
