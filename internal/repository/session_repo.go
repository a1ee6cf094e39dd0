package repository

import (
	"exchange-office-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

func (r *SessionRepository) GetByToken(token uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := r.db.First(&session, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Delete(token uuid.UUID) error {
	return r.db.Delete(&models.Session{}, "token = ?", token).Error
}
