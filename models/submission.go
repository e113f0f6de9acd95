package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission represents one accepted lead in the submissions table.
type Submission struct {
	ID        string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	FormID    string    `gorm:"column:form_id;index;size:16" json:"form_id"`
	Name      string    `gorm:"column:name" json:"name"`
	Email     string    `gorm:"column:email;size:320" json:"email"`
	Mobile    *string   `gorm:"column:mobile" json:"mobile"`
	Remark    *string   `gorm:"column:remark" json:"remark"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

// BeforeCreate assigns the server-side id and timestamp.
func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return nil
}
