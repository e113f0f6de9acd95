package services

import (
	"context"
	"errors"

	"formpilot-api/config"
	"formpilot-api/models"

	"gorm.io/gorm"
)

var (
	ErrFormNotFound       = errors.New("form not found")
	ErrSubmissionNotFound = errors.New("submission not found")
)

// FormRegistry resolves a public form id to its configuration.
type FormRegistry interface {
	LookupForm(ctx context.Context, formID string) (*models.Form, error)
}

// SubmissionStore persists accepted submissions.
type SubmissionStore interface {
	InsertSubmission(ctx context.Context, sub *models.Submission) error
}

// ServiceRepository implements FormRegistry and SubmissionStore on the
// service-level connection. It bypasses owner scoping and must only be handed
// to the public intake path.
type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	if db == nil {
		db = config.DB
	}
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) LookupForm(ctx context.Context, formID string) (*models.Form, error) {
	var form models.Form
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		First(&form).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFormNotFound
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *ServiceRepository) InsertSubmission(ctx context.Context, sub *models.Submission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}
