package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/team-task-api/internal/constants"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrTeamNameRequired       = apierrors.Validation("team name is required")
	ErrTeamNameTooLong        = apierrors.Validation(fmt.Sprintf("team name must be at most %d characters", constants.MaxTeamNameLength))
	ErrTeamPasswordTooShort   = apierrors.Validation(fmt.Sprintf("team password must be at least %d characters", constants.MinTeamPasswordLength))
	ErrTeamNameTaken          = apierrors.ConflictError("team name already taken")
	ErrInvalidTeamCredentials = apierrors.Authorization("invalid team name or password")
	ErrAlreadyTeamMember      = apierrors.ConflictError("already a member of this team")
	ErrTeamNotFound           = apierrors.NotFoundError("team not found")
)

// TeamService provides business logic for teams and memberships.
type TeamService struct {
	store *repository.Store
	now   func() time.Time
}

// NewTeamService creates a new TeamService.
func NewTeamService(store *repository.Store) *TeamService {
	return &TeamService{
		store: store,
		now:   time.Now,
	}
}

// TeamCredentials are the name and shared password of a team.
type TeamCredentials struct {
	Name     string
	Password string
}

// MemberView is a team member together with the display name from their profile.
type MemberView struct {
	Member      models.TeamMember
	DisplayName string
}

// Progress summarizes how many of a team's tasks are completed.
type Progress struct {
	Total   int64
	Done    int64
	Percent int
}

// NewProgress builds a Progress from per-status task counts.
func NewProgress(counts map[models.TaskStatus]int64) Progress {
	var p Progress
	for _, n := range counts {
		p.Total += n
	}
	p.Done = counts[models.TaskStatusCompleted]
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Done) * 100 / float64(p.Total)))
	}
	return p
}

// TeamOverview is everything a member sees on a team's page.
type TeamOverview struct {
	Team     models.Team
	Role     models.TeamRole
	Members  []MemberView
	Progress Progress
}

// CreateTeam creates a team and makes the actor its leader in one transaction.
func (s *TeamService) CreateTeam(ctx context.Context, actor Actor, input TeamCredentials) (*models.TeamMember, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if utf8.RuneCountInString(name) > constants.MaxTeamNameLength {
		return nil, ErrTeamNameTooLong
	}
	if utf8.RuneCountInString(input.Password) < constants.MinTeamPasswordLength {
		return nil, ErrTeamPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash team password: %w", err)
	}

	var membership *models.TeamMember
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Teams.FindByName(ctx, name); err == nil {
			return ErrTeamNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check team name: %w", err)
		}

		team := &models.Team{
			Name:         name,
			PasswordHash: string(hashedPassword),
			CreatedBy:    actor.UserID,
		}
		if err := tx.Teams.Create(ctx, team); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrTeamNameTaken
			}
			return fmt.Errorf("failed to create team: %w", err)
		}

		member := &models.TeamMember{
			TeamID:   team.ID,
			UserID:   actor.UserID,
			Role:     models.RoleLeader,
			JoinedAt: s.now(),
		}
		inserted, err := tx.Teams.AddMember(ctx, member)
		if err != nil {
			return fmt.Errorf("failed to add leader to team: %w", err)
		}
		if !inserted {
			return fmt.Errorf("leader membership for team %s already exists", team.ID)
		}

		member.Team = *team
		membership = member
		return nil
	})
	if err != nil {
		return nil, err
	}

	return membership, nil
}

// JoinTeam adds the actor to the named team as an advisor. An unknown name
// and a wrong password fail the same way.
func (s *TeamService) JoinTeam(ctx context.Context, actor Actor, input TeamCredentials) (*models.TeamMember, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	var membership *models.TeamMember
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		team, err := tx.Teams.FindByName(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidTeamCredentials
			}
			return fmt.Errorf("failed to find team: %w", err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(team.PasswordHash), []byte(input.Password)); err != nil {
			return ErrInvalidTeamCredentials
		}

		member := &models.TeamMember{
			TeamID:   team.ID,
			UserID:   actor.UserID,
			Role:     models.RoleAdvisor,
			JoinedAt: s.now(),
		}
		inserted, err := tx.Teams.AddMember(ctx, member)
		if err != nil {
			return fmt.Errorf("failed to add member to team: %w", err)
		}
		if !inserted {
			return ErrAlreadyTeamMember
		}

		member.Team = *team
		membership = member
		return nil
	})
	if err != nil {
		return nil, err
	}

	return membership, nil
}

// ListTeamsForUser returns the actor's memberships, most recently joined first.
func (s *TeamService) ListTeamsForUser(ctx context.Context, actor Actor) ([]models.TeamMember, error) {
	memberships, err := s.store.Teams.ListMembersByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return memberships, nil
}

// RequireMember returns the actor's membership in the team. Teams the actor
// does not belong to are reported as not found.
func (s *TeamService) RequireMember(ctx context.Context, actor Actor, teamID string) (*models.TeamMember, error) {
	member, err := s.store.Teams.FindMember(ctx, teamID, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}
	return member, nil
}

// GetTeamOverview returns the team with its members, the actor's role and task progress.
func (s *TeamService) GetTeamOverview(ctx context.Context, actor Actor, teamID string) (*TeamOverview, error) {
	member, err := s.RequireMember(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}

	team, err := s.store.Teams.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	members, err := s.store.Teams.ListMembers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	profiles, err := s.store.Profiles.ListByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		names[p.UserID] = p.DisplayName
	}

	views := make([]MemberView, 0, len(members))
	for _, m := range members {
		views = append(views, MemberView{Member: m, DisplayName: names[m.UserID]})
	}

	counts, err := s.store.Tasks.CountByStatus(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return &TeamOverview{
		Team:     *team,
		Role:     member.Role,
		Members:  views,
		Progress: NewProgress(counts),
	}, nil
}
