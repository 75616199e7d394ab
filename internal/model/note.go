package model

import "time"

// Note is a short piece of text owned by a single user.
type Note struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"size:1000;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerID returns the id of the user the note belongs to.
func (n *Note) OwnerID() uint {
	return n.UserID
}
