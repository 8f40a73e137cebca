package model

import (
	"time"

	"gorm.io/gorm"
)

// User is a registered account. The password is stored only as a bcrypt hash;
// plaintext never reaches this struct or the database.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"size:255;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Photo        string `json:"photo" gorm:"size:255;default:'default.jpg'"`

	// Confirmed flips to true once the email confirmation token is redeemed.
	// Login and password recovery require it.
	Confirmed bool `json:"confirmed" gorm:"default:false;index"`

	PasswordChangedAt *time.Time `json:"-"`

	// PasswordResetToken holds the sha256 digest of the last issued reset
	// token, never the plaintext. Both fields are cleared after a reset.
	PasswordResetToken   *string    `json:"-" gorm:"size:64;index"`
	PasswordResetExpires *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time. Comparison is at second granularity to match JWT
// timestamps.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Unix() < u.PasswordChangedAt.Unix()
}
