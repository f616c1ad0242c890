package dto

import (
	"time"

	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/services"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamWithRoleDTO represents a team with the caller's role
type TeamWithRoleDTO struct {
	TeamDTO
	Role     models.TeamRole `json:"role"`
	JoinedAt time.Time       `json:"joined_at"`
}

// TeamMemberDTO represents a member in a team
type TeamMemberDTO struct {
	User        UserDTO         `json:"user"`
	DisplayName string          `json:"display_name"`
	Role        models.TeamRole `json:"role"`
	JoinedAt    time.Time       `json:"joined_at"`
}

// ProgressDTO summarizes completed tasks of a team
type ProgressDTO struct {
	Total   int64 `json:"total"`
	Done    int64 `json:"done"`
	Percent int   `json:"pct"`
}

// TeamDetailDTO represents detailed team information
type TeamDetailDTO struct {
	TeamDTO
	Members  []TeamMemberDTO `json:"members"`
	YourRole models.TeamRole `json:"your_role"`
	Progress ProgressDTO     `json:"progress"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:        team.ID,
		Name:      team.Name,
		CreatedBy: team.CreatedBy,
		CreatedAt: team.CreatedAt,
	}
}

// ToTeamWithRoleDTO converts a membership with its team loaded
func ToTeamWithRoleDTO(member models.TeamMember) TeamWithRoleDTO {
	return TeamWithRoleDTO{
		TeamDTO:  ToTeamDTO(member.Team),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

// ToTeamDetailDTO converts a team overview to DTO
func ToTeamDetailDTO(overview services.TeamOverview) TeamDetailDTO {
	members := make([]TeamMemberDTO, len(overview.Members))
	for i, view := range overview.Members {
		members[i] = TeamMemberDTO{
			User:        ToUserDTO(view.Member.User),
			DisplayName: view.DisplayName,
			Role:        view.Member.Role,
			JoinedAt:    view.Member.JoinedAt,
		}
	}

	return TeamDetailDTO{
		TeamDTO:  ToTeamDTO(overview.Team),
		Members:  members,
		YourRole: overview.Role,
		Progress: ProgressDTO{
			Total:   overview.Progress.Total,
			Done:    overview.Progress.Done,
			Percent: overview.Progress.Percent,
		},
	}
}
