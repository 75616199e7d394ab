package model

import "time"

// User represents an authenticated user in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string    `json:"-" gorm:"size:200;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(50);not null;default:'user'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Projects []Project `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Notes    []Note    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
