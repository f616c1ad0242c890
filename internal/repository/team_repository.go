package repository

import (
	"context"

	"github.com/yukikurage/team-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// Create creates a new team
func (r *GormTeamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(team).Error
}

// FindByID finds a team by ID
func (r *GormTeamRepository) FindByID(ctx context.Context, id string) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// FindByName finds a team by name
func (r *GormTeamRepository) FindByName(ctx context.Context, name string) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// AddMember inserts a membership, ignoring an existing (team, user) pair
func (r *GormTeamRepository) AddMember(ctx context.Context, member *models.TeamMember) (bool, error) {
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(member)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindMember finds a specific team member
func (r *GormTeamRepository) FindMember(ctx context.Context, teamID, userID string) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembersByUserID lists all teams a user is a member of
func (r *GormTeamRepository) ListMembersByUserID(ctx context.Context, userID string) ([]models.TeamMember, error) {
	var memberships []models.TeamMember
	if err := r.db.WithContext(ctx).
		Preload("Team").
		Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListMembers lists all members of a team
func (r *GormTeamRepository) ListMembers(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ?", teamID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
