// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-task-api/internal/database"
	"github.com/yukikurage/team-task-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory SQLite database closed at test cleanup.
// It is limited to a single connection so that every query sees the same
// in-memory database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser inserts a user whose password is "password".
func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTeam inserts a team with password "secret". leader gets the leader
// role and every other user joins as an advisor.
func CreateTeam(t *testing.T, db *gorm.DB, name string, leader *models.User, advisors ...*models.User) *models.Team {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	team := &models.Team{
		Name:         name,
		PasswordHash: string(hash),
		CreatedBy:    leader.ID,
	}
	require.NoError(t, db.Omit("Members").Create(team).Error)

	require.NoError(t, db.Omit("Team", "User").Create(&models.TeamMember{
		TeamID:   team.ID,
		UserID:   leader.ID,
		Role:     models.RoleLeader,
		JoinedAt: time.Now(),
	}).Error)
	for _, a := range advisors {
		require.NoError(t, db.Omit("Team", "User").Create(&models.TeamMember{
			TeamID:   team.ID,
			UserID:   a.ID,
			Role:     models.RoleAdvisor,
			JoinedAt: time.Now(),
		}).Error)
	}
	return team
}
