package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-api/internal/dto"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/services"
)

// TeamHandler serves the caller's teams.
type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// ListTeams returns the teams the caller belongs to with their role in each.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	memberships, err := h.teamService.ListTeamsForUser(c.Request.Context(), actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	teams := make([]dto.TeamWithRoleDTO, len(memberships))
	for i, m := range memberships {
		teams[i] = dto.ToTeamWithRoleDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// GetTeam returns a team with its members, the caller's role and progress.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	overview, err := h.teamService.GetTeamOverview(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDetailDTO(*overview))
}
