package handlers

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/middleware"
	"github.com/yukikurage/team-task-api/internal/services"
)

// Procedure names as reported in metrics.
const (
	procCreateTeam    = "create_team"
	procJoinTeam      = "join_team"
	procSetTaskStatus = "set_task_status"
	procCreateTask    = "create_task"
	procDeleteTask    = "delete_task"
	procUpsertProfile = "upsert_profile"
)

// requireActor returns the authenticated caller or writes a 401.
func requireActor(c *gin.Context) (services.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return services.Actor{}, false
	}
	return actor, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}
