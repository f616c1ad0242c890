package repository

import (
	"context"

	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/utils"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// TeamRepository defines the interface for team and membership data access
type TeamRepository interface {
	// Create creates a new team
	Create(ctx context.Context, team *models.Team) error

	// FindByID finds a team by ID
	FindByID(ctx context.Context, id string) (*models.Team, error)

	// FindByName finds a team by its unique name
	FindByName(ctx context.Context, name string) (*models.Team, error)

	// AddMember inserts a membership. It reports false without error when
	// the (team, user) pair already exists.
	AddMember(ctx context.Context, member *models.TeamMember) (bool, error)

	// FindMember finds a specific team member
	FindMember(ctx context.Context, teamID, userID string) (*models.TeamMember, error)

	// ListMembersByUserID lists a user's memberships, newest first, with teams loaded
	ListMembersByUserID(ctx context.Context, userID string) ([]models.TeamMember, error)

	// ListMembers lists all members of a team in join order, with users loaded
	ListMembers(ctx context.Context, teamID string) ([]models.TeamMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// FindByIDForUpdate finds a task and locks its row until the surrounding
	// transaction ends
	FindByIDForUpdate(ctx context.Context, id string) (*models.Task, error)

	// List retrieves the tasks of a team ordered by due date
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// Update saves every column of the task
	Update(ctx context.Context, task *models.Task) error

	// Delete permanently removes a task
	Delete(ctx context.Context, id string) error

	// CountByStatus counts a team's tasks per status
	CountByStatus(ctx context.Context, teamID string) (map[models.TaskStatus]int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	TeamID     string
	AssignedTo *string
	Status     *models.TaskStatus
	Pagination *utils.PaginationParams
}

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	// Upsert creates or replaces the profile keyed by user ID
	Upsert(ctx context.Context, profile *models.Profile) error

	// FindByUserID finds the profile of a user
	FindByUserID(ctx context.Context, userID string) (*models.Profile, error)

	// ListByUserIDs returns the profiles that exist for the given users
	ListByUserIDs(ctx context.Context, userIDs []string) ([]models.Profile, error)
}

// Store groups the repositories sharing one connection or transaction.
type Store struct {
	db *gorm.DB

	Users    UserRepository
	Teams    TeamRepository
	Tasks    TaskRepository
	Profiles ProfileRepository
}

// NewStore creates a Store backed by db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Users:    NewUserRepository(db),
		Teams:    NewTeamRepository(db),
		Tasks:    NewTaskRepository(db),
		Profiles: NewProfileRepository(db),
	}
}

// Transaction runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
