package model

import "time"

// Project is a named piece of work owned by a single user.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"size:500"`
	ImageURL    string    `json:"image_url" gorm:"size:500"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnerID returns the id of the user the project belongs to.
func (p *Project) OwnerID() uint {
	return p.UserID
}
