package database

import (
	"fmt"
	"strings"

	"github.com/yukikurage/team-task-api/internal/models"
	"gorm.io/gorm"
)

type index struct {
	model   interface{}
	table   string
	name    string
	columns []string
}

// indexes backs the read paths: team task lists ordered by due date, the
// per-assignee filter, and a user's team list ordered by join date.
var indexes = []index{
	{&models.Task{}, "tasks", "idx_tasks_team_due", []string{"team_id", "due_at"}},
	{&models.Task{}, "tasks", "idx_tasks_team_assignee", []string{"team_id", "assigned_to"}},
	{&models.Task{}, "tasks", "idx_tasks_team_status", []string{"team_id", "status"}},
	{&models.TeamMember{}, "team_members", "idx_team_members_user_joined", []string{"user_id", "joined_at"}},
}

// AddIndexes creates any missing composite index. It is safe to run repeatedly.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
