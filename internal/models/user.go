package models

import "time"

const (
	RoleStudent   = "student"
	RoleProfessor = "professor"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'student'" json:"role"`

	// Google OAuth credentials used by the calendar synchronizer.
	// Populated by the OAuth callback flow for professors only.
	GoogleAccessToken  string     `gorm:"size:512" json:"-"`
	GoogleRefreshToken string     `gorm:"size:512" json:"-"`
	GoogleTokenExpiry  *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsProfessor() bool {
	return u.Role == RoleProfessor
}

func (u *User) HasGoogleCredentials() bool {
	return u.GoogleAccessToken != "" && u.GoogleRefreshToken != ""
}
