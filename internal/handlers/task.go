package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-api/internal/dto"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/metrics"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/services"
	"github.com/yukikurage/team-task-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
	metrics     *metrics.Metrics
}

func NewTaskHandler(taskService *services.TaskService, m *metrics.Metrics) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		metrics:     m,
	}
}

// ListTasks returns the tasks of a team ordered by due date.
// Optional filters: assigned_to (a user id, or "me") and status.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	input := services.ListTasksInput{
		TeamID:     c.Param("id"),
		Pagination: params,
	}

	if assignee := c.Query("assigned_to"); assignee != "" {
		if assignee == "me" {
			assignee = actor.UserID
		}
		input.AssignedTo = &assignee
	}
	if status := c.Query("status"); status != "" {
		s := models.TaskStatus(status)
		input.Status = &s
	}

	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), actor, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// CreateTask creates a task in the team. Leaders only.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req struct {
		AssignedTo  string     `json:"assigned_to"`
		Title       string     `json:"title"`
		Description string     `json:"description"`
		DueAt       *time.Time `json:"due_at"`
	}
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), actor, services.CreateTaskInput{
		TeamID:      c.Param("id"),
		AssignedTo:  req.AssignedTo,
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
	})
	h.metrics.ObserveProcedure(procCreateTask, err)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// DeleteTask permanently deletes a task and returns it. Leaders only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	task, err := h.taskService.DeleteTask(c.Request.Context(), actor, c.Param("id"))
	h.metrics.ObserveProcedure(procDeleteTask, err)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// GenerateTasks drafts tasks from free text. Nothing is persisted.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}

	drafts, err := h.taskService.GenerateTasks(c.Request.Context(), actor, services.GenerateTasksInput{
		TeamID: c.Param("id"),
		Text:   req.Text,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": drafts,
	})
}
