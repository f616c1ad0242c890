package models

import "time"

// Profile holds the display name a user shows to their teams.
type Profile struct {
	UserID      string    `gorm:"type:varchar(36);primarykey" json:"user_id"`
	DisplayName string    `gorm:"type:varchar(100);not null" json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
