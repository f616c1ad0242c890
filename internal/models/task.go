package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending      TaskStatus = "pending"
	TaskStatusCompleted    TaskStatus = "completed"
	TaskStatusNotCompleted TaskStatus = "not_completed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusNotCompleted:
		return true
	}
	return false
}

type Task struct {
	ID            string     `gorm:"type:varchar(36);primarykey" json:"id"`
	TeamID        string     `gorm:"type:varchar(36);not null" json:"team_id"`
	AssignedTo    string     `gorm:"type:varchar(36);not null" json:"assigned_to"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	Description   *string    `gorm:"type:text" json:"description"`
	AssignedAt    time.Time  `gorm:"not null" json:"assigned_at"`
	DueAt         time.Time  `gorm:"not null" json:"due_at"`
	Status        TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	NotDoneReason *string    `gorm:"type:text" json:"not_done_reason"`
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedBy     string     `gorm:"type:varchar(36);not null" json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ApplyStatus moves the task to status, keeping completed_at and
// not_done_reason consistent with it. reason is only kept for not_completed.
func (t *Task) ApplyStatus(status TaskStatus, reason string, now time.Time) {
	t.Status = status
	t.CompletedAt = nil
	t.NotDoneReason = nil

	switch status {
	case TaskStatusCompleted:
		t.CompletedAt = &now
	case TaskStatusNotCompleted:
		t.NotDoneReason = &reason
	}
}
