package services

import (
	"context"
	"errors"

	"formpilot-api/config"
	"formpilot-api/models"
	"formpilot-api/utils"

	"gorm.io/gorm"
)

var ErrInvalidContact = errors.New("name, valid email and message are required")

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	if db == nil {
		db = config.DB
	}
	return &ContactService{db: db}
}

func (s *ContactService) Create(ctx context.Context, in ContactInput) (*models.Contact, error) {
	c := &models.Contact{
		Name:    utils.SanitizeInput(in.Name),
		Email:   utils.SanitizeInput(in.Email),
		Subject: utils.SanitizeInput(in.Subject),
		Message: utils.SanitizeInput(in.Message),
	}
	if c.Name == "" || c.Message == "" || !utils.ValidateEmail(c.Email) {
		return nil, ErrInvalidContact
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// List returns contact messages newest first for the admin inbox.
func (s *ContactService) List(ctx context.Context, limit, offset int) ([]models.Contact, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	q := s.db.WithContext(ctx).Model(&models.Contact{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var contacts []models.Contact
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&contacts).Error; err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}
