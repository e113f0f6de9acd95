package services

import (
	"context"
	"fmt"

	"formpilot-api/config"
	"formpilot-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AccountService removes a user together with everything they own.
type AccountService struct {
	db       *gorm.DB
	identity IdentityAdmin
	logger   *zap.Logger
}

func NewAccountService(db *gorm.DB, identity IdentityAdmin, logger *zap.Logger) *AccountService {
	if db == nil {
		db = config.DB
	}
	if identity == nil {
		identity = NoopIdentityAdmin{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{db: db, identity: identity, logger: logger}
}

// DeleteAccount deletes the user's submissions and forms in one transaction,
// then the identity, then records an audit event. A failed audit insert is
// logged only.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	var formCount int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Form{}).Select("form_id").Where("user_id = ?", userID)
		if err := tx.Where("form_id IN (?)", owned).Delete(&models.Submission{}).Error; err != nil {
			return fmt.Errorf("delete submissions: %w", err)
		}
		res := tx.Where("user_id = ?", userID).Delete(&models.Form{})
		if res.Error != nil {
			return fmt.Errorf("delete forms: %w", res.Error)
		}
		formCount = res.RowsAffected
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.identity.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}

	audit := &models.AdminAudit{
		Event:  models.AuditEventAccountDeleted,
		UserID: userID,
		Meta:   models.AuditMeta{"forms_deleted": formCount},
	}
	if err := s.db.WithContext(ctx).Create(audit).Error; err != nil {
		s.logger.Warn("audit insert failed", zap.String("user_id", userID), zap.Error(err))
	}

	s.logger.Info("account deleted", zap.String("user_id", userID), zap.Int64("forms_deleted", formCount))
	return nil
}
