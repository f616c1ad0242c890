package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/team-task-api/internal/constants"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = apierrors.NotFoundError("task not found")
	ErrTaskIDRequired         = apierrors.Validation("task id is required")
	ErrTitleRequired          = apierrors.Validation("title is required")
	ErrTitleTooLong           = apierrors.Validation(fmt.Sprintf("title must be at most %d characters", constants.MaxTaskTitleLength))
	ErrDueAtRequired          = apierrors.Validation("due_at is required")
	ErrAssigneeRequired       = apierrors.Validation("assigned_to is required")
	ErrAssigneeNotMember      = apierrors.Validation("assignee is not a member of this team")
	ErrInvalidTaskStatus      = apierrors.Validation("status must be one of pending, completed, not_completed")
	ErrReasonRequired         = apierrors.Validation("a reason is required when a task is not completed")
	ErrReasonNotAllowed       = apierrors.Validation("a reason is only allowed when a task is not completed")
	ErrLeaderRequired         = apierrors.Authorization("only team leaders can manage tasks")
	ErrNotTaskAssignee        = apierrors.Authorization("only the assignee can change the status of this task")
	ErrDraftTextRequired      = apierrors.Validation("text is required")
	ErrAIServiceNotConfigured = apierrors.Unavailable("AI service is not configured")
	ErrAINoTasksGenerated     = apierrors.Validation("no tasks could be drafted from the text")
)

// TaskDrafter turns free text into task drafts.
type TaskDrafter interface {
	DraftTasks(ctx context.Context, text string) ([]GeneratedTask, error)
}

// TaskService handles task business logic
type TaskService struct {
	store   *repository.Store
	drafter TaskDrafter
	log     *zap.Logger
	now     func() time.Time
}

// NewTaskService creates a new TaskService. drafter may be nil, in which case
// task drafting reports the AI service as unavailable.
func NewTaskService(store *repository.Store, drafter TaskDrafter, log *zap.Logger) *TaskService {
	return &TaskService{
		store:   store,
		drafter: drafter,
		log:     log,
		now:     time.Now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	TeamID      string
	AssignedTo  string
	Title       string
	Description string
	DueAt       *time.Time
}

// SetTaskStatusInput represents input for changing a task's status
type SetTaskStatusInput struct {
	TaskID string
	Status models.TaskStatus
	Reason *string
}

// ListTasksInput represents filters for listing a team's tasks
type ListTasksInput struct {
	TeamID     string
	AssignedTo *string
	Status     *models.TaskStatus
	Pagination utils.PaginationParams
}

// GenerateTasksInput represents input for AI task drafting
type GenerateTasksInput struct {
	TeamID string
	Text   string
}

// CreateTask creates a pending task assigned to a member of the team.
func (s *TaskService) CreateTask(ctx context.Context, actor Actor, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > constants.MaxTaskTitleLength {
		return nil, ErrTitleTooLong
	}
	if input.DueAt == nil || input.DueAt.IsZero() {
		return nil, ErrDueAtRequired
	}
	assignee := strings.TrimSpace(input.AssignedTo)
	if assignee == "" {
		return nil, ErrAssigneeRequired
	}

	var created *models.Task
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireLeader(ctx, tx, input.TeamID, actor.UserID, ErrTeamNotFound); err != nil {
			return err
		}

		if _, err := tx.Teams.FindMember(ctx, input.TeamID, assignee); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssigneeNotMember
			}
			return fmt.Errorf("failed to verify assignee: %w", err)
		}

		task := &models.Task{
			TeamID:     input.TeamID,
			AssignedTo: assignee,
			Title:      title,
			AssignedAt: s.now(),
			DueAt:      *input.DueAt,
			Status:     models.TaskStatusPending,
			CreatedBy:  actor.UserID,
		}
		if description := strings.TrimSpace(input.Description); description != "" {
			task.Description = &description
		}

		if err := tx.Tasks.Create(ctx, task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		created = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// DeleteTask permanently deletes a task. Only leaders of the task's team may
// delete it. The deleted task is returned.
func (s *TaskService) DeleteTask(ctx context.Context, actor Actor, taskID string) (*models.Task, error) {
	if taskID == "" {
		return nil, ErrTaskIDRequired
	}

	var deleted *models.Task
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		task, err := tx.Tasks.FindByIDForUpdate(ctx, taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to find task: %w", err)
		}

		if err := requireLeader(ctx, tx, task.TeamID, actor.UserID, ErrTaskNotFound); err != nil {
			return err
		}

		if err := tx.Tasks.Delete(ctx, task.ID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		deleted = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

// SetTaskStatus changes the status of a task assigned to the actor.
// completed_at and not_done_reason are rewritten together with the status
// while the task row is locked.
func (s *TaskService) SetTaskStatus(ctx context.Context, actor Actor, input SetTaskStatusInput) (*models.Task, error) {
	if strings.TrimSpace(input.TaskID) == "" {
		return nil, ErrTaskIDRequired
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	var reason string
	if input.Reason != nil {
		reason = strings.TrimSpace(*input.Reason)
	}
	switch {
	case input.Status == models.TaskStatusNotCompleted && reason == "":
		return nil, ErrReasonRequired
	case input.Status != models.TaskStatusNotCompleted && reason != "":
		return nil, ErrReasonNotAllowed
	}

	var updated *models.Task
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		task, err := tx.Tasks.FindByIDForUpdate(ctx, strings.TrimSpace(input.TaskID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to find task: %w", err)
		}

		// Everyone but the current assignee is refused, team members or not.
		if task.AssignedTo != actor.UserID {
			return ErrNotTaskAssignee
		}

		task.ApplyStatus(input.Status, reason, s.now())
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return fmt.Errorf("failed to update task status: %w", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ListTasks returns a page of the team's tasks ordered by due date.
func (s *TaskService) ListTasks(ctx context.Context, actor Actor, input ListTasksInput) ([]models.Task, int64, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, 0, ErrInvalidTaskStatus
	}

	if _, err := s.store.Teams.FindMember(ctx, input.TeamID, actor.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrTeamNotFound
		}
		return nil, 0, fmt.Errorf("failed to verify membership: %w", err)
	}

	pagination := input.Pagination
	if pagination.Limit == 0 {
		pagination = utils.NewPaginationParams(pagination.Page, pagination.Limit)
	}
	tasks, total, err := s.store.Tasks.List(ctx, repository.TaskFilter{
		TeamID:     input.TeamID,
		AssignedTo: input.AssignedTo,
		Status:     input.Status,
		Pagination: &pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GenerateTasks drafts tasks from free text for a team leader. Drafts are not persisted.
func (s *TaskService) GenerateTasks(ctx context.Context, actor Actor, input GenerateTasksInput) ([]GeneratedTask, error) {
	if s.drafter == nil {
		return nil, ErrAIServiceNotConfigured
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrDraftTextRequired
	}

	if err := requireLeader(ctx, s.store, input.TeamID, actor.UserID, ErrTeamNotFound); err != nil {
		return nil, err
	}

	drafts, err := s.drafter.DraftTasks(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(drafts) > constants.MaxAIGeneratedTasks {
		s.log.Warn("truncating drafted tasks",
			zap.String("team_id", input.TeamID),
			zap.Int("drafted", len(drafts)),
			zap.Int("max", constants.MaxAIGeneratedTasks),
		)
		drafts = drafts[:constants.MaxAIGeneratedTasks]
	}

	valid := make([]GeneratedTask, 0, len(drafts))
	cutoff := s.now().Add(-24 * time.Hour)
	for _, draft := range drafts {
		draft.Title = strings.TrimSpace(draft.Title)
		if draft.Title == "" {
			continue
		}

		if draft.DueAt != nil && draft.DueAt.Before(cutoff) {
			draft.DueAt = nil
		}

		valid = append(valid, draft)
	}

	if len(valid) == 0 {
		return nil, ErrAINoTasksGenerated
	}

	return valid, nil
}

// requireLeader checks that userID leads teamID. A missing membership is
// reported as notFound so callers do not learn about teams they cannot see.
func requireLeader(ctx context.Context, store *repository.Store, teamID, userID string, notFound error) error {
	member, err := store.Teams.FindMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return fmt.Errorf("failed to verify membership: %w", err)
	}
	if !member.IsLeader() {
		return ErrLeaderRequired
	}
	return nil
}
