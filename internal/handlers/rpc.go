package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-api/internal/dto"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/metrics"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/services"
)

// RPCHandler exposes the domain procedures under /api/rpc. Request bodies
// use the p_-prefixed parameter names clients already send.
type RPCHandler struct {
	teamService *services.TeamService
	taskService *services.TaskService
	metrics     *metrics.Metrics
}

func NewRPCHandler(teamService *services.TeamService, taskService *services.TaskService, m *metrics.Metrics) *RPCHandler {
	return &RPCHandler{
		teamService: teamService,
		taskService: taskService,
		metrics:     m,
	}
}

type teamCredentialsRequest struct {
	Name     string `json:"p_name"`
	Password string `json:"p_password"`
}

type setTaskStatusRequest struct {
	TaskID string  `json:"p_task_id"`
	Status string  `json:"p_status"`
	Reason *string `json:"p_reason"`
}

// CreateTeam handles create_team.
func (h *RPCHandler) CreateTeam(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req teamCredentialsRequest
	if !bindJSON(c, &req) {
		return
	}

	membership, err := h.teamService.CreateTeam(c.Request.Context(), actor, services.TeamCredentials{
		Name:     req.Name,
		Password: req.Password,
	})
	h.metrics.ObserveProcedure(procCreateTeam, err)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamWithRoleDTO(*membership))
}

// JoinTeam handles join_team.
func (h *RPCHandler) JoinTeam(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req teamCredentialsRequest
	if !bindJSON(c, &req) {
		return
	}

	membership, err := h.teamService.JoinTeam(c.Request.Context(), actor, services.TeamCredentials{
		Name:     req.Name,
		Password: req.Password,
	})
	h.metrics.ObserveProcedure(procJoinTeam, err)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamWithRoleDTO(*membership))
}

// SetTaskStatus handles set_task_status.
func (h *RPCHandler) SetTaskStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req setTaskStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.SetTaskStatus(c.Request.Context(), actor, services.SetTaskStatusInput{
		TaskID: req.TaskID,
		Status: models.TaskStatus(req.Status),
		Reason: req.Reason,
	})
	h.metrics.ObserveProcedure(procSetTaskStatus, err)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}
