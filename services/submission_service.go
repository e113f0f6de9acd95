package services

import (
	"context"
	"time"

	"formpilot-api/config"
	"formpilot-api/models"

	"gorm.io/gorm"
)

const (
	defaultSubmissionLimit = 50
	maxSubmissionLimit     = 500
)

type SubmissionFilter struct {
	FormID string
	Limit  int
	Offset int
}

// AccountSummary is what the account page shows.
type AccountSummary struct {
	TotalForms         int64 `json:"total_forms"`
	TotalSubmissions   int64 `json:"total_submissions"`
	MonthlySubmissions int64 `json:"monthly_submissions"`
}

// SubmissionService is the owner-scoped dashboard view over submissions.
type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	if db == nil {
		db = config.DB
	}
	return &SubmissionService{db: db}
}

func (s *SubmissionService) ownedFormIDs(ctx context.Context, ownerID string) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Form{}).Select("form_id").Where("user_id = ?", ownerID)
}

// Normalize applies the default and maximum page size.
func (f SubmissionFilter) Normalize() SubmissionFilter {
	if f.Limit <= 0 {
		f.Limit = defaultSubmissionLimit
	}
	if f.Limit > maxSubmissionLimit {
		f.Limit = maxSubmissionLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

func (s *SubmissionService) List(ctx context.Context, ownerID string, f SubmissionFilter) ([]models.Submission, int64, error) {
	f = f.Normalize()

	q := s.db.WithContext(ctx).Model(&models.Submission{})
	if f.FormID != "" {
		var owned int64
		if err := s.db.WithContext(ctx).Model(&models.Form{}).
			Where("form_id = ? AND user_id = ?", f.FormID, ownerID).
			Count(&owned).Error; err != nil {
			return nil, 0, err
		}
		if owned == 0 {
			return nil, 0, ErrFormNotFound
		}
		q = q.Where("form_id = ?", f.FormID)
	} else {
		q = q.Where("form_id IN (?)", s.ownedFormIDs(ctx, ownerID))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []models.Submission
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&subs).Error; err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (s *SubmissionService) Delete(ctx context.Context, ownerID, submissionID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND form_id IN (?)", submissionID, s.ownedFormIDs(ctx, ownerID)).
		Delete(&models.Submission{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

// Summary counts the owner's forms, their submissions, and submissions in
// the 30 days before now.
func (s *SubmissionService) Summary(ctx context.Context, ownerID string, now time.Time) (*AccountSummary, error) {
	var out AccountSummary
	if err := s.db.WithContext(ctx).Model(&models.Form{}).
		Where("user_id = ?", ownerID).
		Count(&out.TotalForms).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Submission{}).
		Where("form_id IN (?)", s.ownedFormIDs(ctx, ownerID)).
		Count(&out.TotalSubmissions).Error; err != nil {
		return nil, err
	}
	since := now.UTC().AddDate(0, 0, -30)
	if err := s.db.WithContext(ctx).Model(&models.Submission{}).
		Where("form_id IN (?) AND created_at >= ?", s.ownedFormIDs(ctx, ownerID), since).
		Count(&out.MonthlySubmissions).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
