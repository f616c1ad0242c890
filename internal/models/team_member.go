package models

import "time"

type TeamRole string

const (
	RoleLeader  TeamRole = "leader"
	RoleAdvisor TeamRole = "advisor"
)

type TeamMember struct {
	TeamID   string    `gorm:"type:varchar(36);primarykey" json:"team_id"`
	UserID   string    `gorm:"type:varchar(36);primarykey" json:"user_id"`
	Role     TeamRole  `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`

	// Relations
	Team Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// IsLeader reports whether the membership carries the leader role.
func (m TeamMember) IsLeader() bool {
	return m.Role == RoleLeader
}
