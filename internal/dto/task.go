package dto

import (
	"time"

	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            string            `json:"id"`
	TeamID        string            `json:"team_id"`
	AssignedTo    string            `json:"assigned_to"`
	Title         string            `json:"title"`
	Description   *string           `json:"description"`
	AssignedAt    time.Time         `json:"assigned_at"`
	DueAt         time.Time         `json:"due_at"`
	Status        models.TaskStatus `json:"status"`
	NotDoneReason *string           `json:"not_done_reason"`
	CompletedAt   *time.Time        `json:"completed_at"`
	CreatedBy     string            `json:"created_by"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:            task.ID,
		TeamID:        task.TeamID,
		AssignedTo:    task.AssignedTo,
		Title:         task.Title,
		Description:   task.Description,
		AssignedAt:    task.AssignedAt,
		DueAt:         task.DueAt,
		Status:        task.Status,
		NotDoneReason: task.NotDoneReason,
		CompletedAt:   task.CompletedAt,
		CreatedBy:     task.CreatedBy,
		UpdatedAt:     task.UpdatedAt,
	}
}

// ToTaskListResponse converts a page of tasks to the list response
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
