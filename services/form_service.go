package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"formpilot-api/config"
	"formpilot-api/models"
	"formpilot-api/utils"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const maxFormIDAttempts = 5

var (
	ErrInvalidNotifyEmail = errors.New("invalid notify email")
	ErrUnsafeRedirect     = errors.New("redirect_url must be an absolute http or https URL")
	ErrFormIDExhausted    = errors.New("could not allocate a unique form id")
)

// FormSettingsInput is the editable part of a form.
type FormSettingsInput struct {
	NotifyEmail string `json:"notify_email"`
	RedirectURL string `json:"redirect_url"`
}

func (in FormSettingsInput) normalize() (string, *string, error) {
	notify := utils.SanitizeInput(in.NotifyEmail)
	if !utils.ValidateEmail(notify) {
		return "", nil, ErrInvalidNotifyEmail
	}
	redirect := utils.OptionalString(in.RedirectURL)
	if redirect != nil && !utils.IsSafeRedirect(*redirect) {
		return "", nil, ErrUnsafeRedirect
	}
	return notify, redirect, nil
}

// FormService is the owner-scoped dashboard view over forms.
type FormService struct {
	db    *gorm.DB
	newID func() (string, error)
}

func NewFormService(db *gorm.DB) *FormService {
	if db == nil {
		db = config.DB
	}
	return &FormService{db: db, newID: models.GenerateFormID}
}

func (s *FormService) ListByOwner(ctx context.Context, ownerID string) ([]models.Form, error) {
	var forms []models.Form
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&forms).Error
	return forms, err
}

func (s *FormService) GetOwned(ctx context.Context, ownerID, formID string) (*models.Form, error) {
	var form models.Form
	err := s.db.WithContext(ctx).
		Where("form_id = ? AND user_id = ?", formID, ownerID).
		First(&form).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFormNotFound
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// Create stores a new form under a freshly generated id, retrying on the
// rare id collision.
func (s *FormService) Create(ctx context.Context, ownerID string, in FormSettingsInput) (*models.Form, error) {
	notify, redirect, err := in.normalize()
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxFormIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return nil, fmt.Errorf("generate form id: %w", err)
		}
		form := &models.Form{
			FormID:      id,
			UserID:      ownerID,
			NotifyEmail: notify,
			RedirectURL: redirect,
		}
		err = s.db.WithContext(ctx).Create(form).Error
		if err == nil {
			return form, nil
		}
		if !isDuplicateKey(err) {
			return nil, err
		}
	}
	return nil, ErrFormIDExhausted
}

func (s *FormService) UpdateSettings(ctx context.Context, ownerID, formID string, in FormSettingsInput) (*models.Form, error) {
	notify, redirect, err := in.normalize()
	if err != nil {
		return nil, err
	}

	form, err := s.GetOwned(ctx, ownerID, formID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&models.Form{}).
		Where("form_id = ? AND user_id = ?", formID, ownerID).
		Updates(map[string]interface{}{
			"notify_email": notify,
			"redirect_url": redirect,
		}).Error
	if err != nil {
		return nil, err
	}

	form.NotifyEmail = notify
	form.RedirectURL = redirect
	return form, nil
}

// Delete removes the form and all of its submissions.
func (s *FormService) Delete(ctx context.Context, ownerID, formID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("form_id = ? AND user_id = ?", formID, ownerID).Delete(&models.Form{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrFormNotFound
		}
		return tx.Where("form_id = ?", formID).Delete(&models.Submission{}).Error
	})
}

// EmbedInfo describes how to point an HTML form at the intake endpoint.
type EmbedInfo struct {
	FormID        string   `json:"form_id"`
	SubmitURL     string   `json:"submit_url"`
	Fields        []string `json:"fields"`
	HoneypotField string   `json:"honeypot_field"`
}

func BuildEmbedInfo(baseURL, formID string) EmbedInfo {
	return EmbedInfo{
		FormID:        formID,
		SubmitURL:     fmt.Sprintf("%s/api/submit?form_id=%s", strings.TrimRight(baseURL, "/"), formID),
		Fields:        []string{"name", "email", "mobile", "remark"},
		HoneypotField: "_hp",
	}
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
