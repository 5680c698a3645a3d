package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. The password hash never leaves the
// process: API responses expose PublicUser instead.
type User struct {
	BaseModel
	Name         string     `json:"name"`
	Email        string     `gorm:"uniqueIndex" json:"email"`
	PasswordHash string     `json:"-"`
	OTP          *string    `json:"-"`
	OTPExpires   *time.Time `json:"-"`
	IsVerified   bool       `json:"is_verified"`
	Role         string     `json:"role"`
	Orders       []Order    `json:"orders,omitempty"`
}

// PublicUser is the client-facing projection of a User.
type PublicUser struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Public returns the projection safe to serialize in responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		IsVerified: u.IsVerified,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// MarkVerified flips the account to verified and retires the OTP. The code
// and its expiry are always cleared together so a used code cannot be
// replayed.
func (u *User) MarkVerified() {
	u.IsVerified = true
	u.OTP = nil
	u.OTPExpires = nil
}
