package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStatus_Valid(t *testing.T) {
	assert.True(t, TaskStatusPending.Valid())
	assert.True(t, TaskStatusCompleted.Valid())
	assert.True(t, TaskStatusNotCompleted.Valid())
	assert.False(t, TaskStatus("done").Valid())
	assert.False(t, TaskStatus("").Valid())
}

func TestTask_ApplyStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	task := &Task{Status: TaskStatusPending}

	task.ApplyStatus(TaskStatusCompleted, "", now)
	require.NotNil(t, task.CompletedAt)
	assert.True(t, task.CompletedAt.Equal(now))
	assert.Nil(t, task.NotDoneReason)

	task.ApplyStatus(TaskStatusNotCompleted, "client unavailable", now.Add(time.Hour))
	assert.Nil(t, task.CompletedAt)
	require.NotNil(t, task.NotDoneReason)
	assert.Equal(t, "client unavailable", *task.NotDoneReason)

	task.ApplyStatus(TaskStatusPending, "ignored", now)
	assert.Equal(t, TaskStatusPending, task.Status)
	assert.Nil(t, task.CompletedAt)
	assert.Nil(t, task.NotDoneReason)
}

func TestTeamMember_IsLeader(t *testing.T) {
	assert.True(t, TeamMember{Role: RoleLeader}.IsLeader())
	assert.False(t, TeamMember{Role: RoleAdvisor}.IsLeader())
}
