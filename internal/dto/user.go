package dto

import (
	"time"

	"github.com/yukikurage/team-task-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ProfileDTO represents a profile in API responses
type ProfileDTO struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
	}
}

// ToProfileDTO converts a Profile model to ProfileDTO
func ToProfileDTO(profile models.Profile) ProfileDTO {
	return ProfileDTO{
		UserID:      profile.UserID,
		DisplayName: profile.DisplayName,
		UpdatedAt:   profile.UpdatedAt,
	}
}
