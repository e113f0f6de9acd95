package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const AuditEventAccountDeleted = "account_deleted"

// AuditMeta is a free-form JSON object stored alongside an audit event.
type AuditMeta map[string]interface{}

func (m AuditMeta) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *AuditMeta) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*m = AuditMeta{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("admin_audit.meta: unsupported type")
	}
	return json.Unmarshal(raw, m)
}

// AdminAudit represents the admin_audit table
type AdminAudit struct {
	ID        string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	Event     string    `gorm:"column:event;size:64" json:"event"`
	UserID    string    `gorm:"column:user_id;size:64" json:"user_id"`
	Meta      AuditMeta `gorm:"column:meta;type:json" json:"meta"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (AdminAudit) TableName() string {
	return "admin_audit"
}

func (a *AdminAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	return nil
}
