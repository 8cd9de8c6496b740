package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	// OTP fields are set and cleared together while a reset is pending.
	OTPHash        *string    `db:"otp_hash" json:"-"`
	OTPExpiryLocal *string    `db:"otp_expiry_local" json:"-"`
	OTPExpiresAt   *time.Time `db:"otp_expires_at" json:"-"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

func (u *User) HasPendingReset() bool {
	return u.OTPHash != nil && u.OTPExpiresAt != nil
}
