package models

import (
	"crypto/rand"
	"math/big"
	"time"
)

const (
	formIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	formIDLength   = 6
)

// Form represents the forms table
type Form struct {
	FormID      string    `gorm:"primaryKey;column:form_id;size:16" json:"form_id"`
	UserID      string    `gorm:"column:user_id;index;size:64" json:"user_id"`
	NotifyEmail string    `gorm:"column:notify_email;size:320" json:"notify_email"`
	RedirectURL *string   `gorm:"column:redirect_url;size:2048" json:"redirect_url"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Form) TableName() string {
	return "forms"
}

// HasRedirect reports whether a non-empty redirect_url is configured.
func (f *Form) HasRedirect() bool {
	return f.RedirectURL != nil && *f.RedirectURL != ""
}

// GenerateFormID returns a random base-36 token used as a public form id.
func GenerateFormID() (string, error) {
	buf := make([]byte, formIDLength)
	limit := big.NewInt(int64(len(formIDAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf[i] = formIDAlphabet[n.Int64()]
	}
	return string(buf), nil
}
