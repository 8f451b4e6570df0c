package models

import "time"

type VerificationPurpose string

const (
	PurposeSignup VerificationPurpose = "signup"
	PurposeReset  VerificationPurpose = "reset"
)

// EmailVerification keeps track of OTP codes sent to users. Records are
// ephemeral: expiry or too many failed attempts deletes them (and, for
// signups, the pending user account with them).
type EmailVerification struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	Email     string              `gorm:"index;not null" json:"email"`
	Code      string              `json:"-"`
	Purpose   VerificationPurpose `gorm:"type:VARCHAR(10)" json:"purpose"`
	Attempts  int                 `json:"attempts"`
	ExpiresAt time.Time           `json:"expires_at"`
	CreatedAt time.Time           `json:"created_at"`
}
