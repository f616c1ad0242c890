package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/services"
)

// MembershipChecker resolves the caller's membership in a team.
type MembershipChecker interface {
	RequireMember(ctx context.Context, actor services.Actor, teamID string) (*models.TeamMember, error)
}

// RequireTeamAccess checks if the user is a member of the team named by the
// :id route parameter. Non-members see 404 so team existence is not leaked.
func RequireTeamAccess(teams MembershipChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if _, err := teams.RequireMember(c.Request.Context(), actor, c.Param("id")); err != nil {
			apierrors.Respond(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}
