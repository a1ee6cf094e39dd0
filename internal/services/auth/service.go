// Package auth issues and resolves session tokens. Authentication itself
// is the development-only scheme carried over from the original system:
// the password must equal the username. Sessions are explicit rows, not a
// process-wide current-user singleton.
package auth

import (
	"context"
	"errors"
	"time"

	"exchange-office-backend/internal/models"
	"exchange-office-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
)

type Service struct {
	users    *repository.UserRepository
	sessions *repository.SessionRepository
}

func NewService(users *repository.UserRepository, sessions *repository.SessionRepository) *Service {
	return &Service{users: users, sessions: sessions}
}

func (s *Service) Login(ctx context.Context, username, password string) (*models.Session, *models.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	// Development-only check, kept from the original system.
	if password != username {
		return nil, nil, ErrInvalidCredentials
	}

	session := &models.Session{
		Token:     uuid.New(),
		UserID:    user.ID,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

func (s *Service) Logout(ctx context.Context, token uuid.UUID) error {
	return s.sessions.Delete(token)
}

// UserForToken resolves the acting user of a request.
func (s *Service) UserForToken(ctx context.Context, token uuid.UUID) (*models.User, error) {
	session, err := s.sessions.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	user, err := s.users.GetByID(session.UserID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return user, nil
}
