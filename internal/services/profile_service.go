package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/team-task-api/internal/constants"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidDisplayName = apierrors.Validation(fmt.Sprintf(
		"display name must be between %d and %d characters",
		constants.MinDisplayNameLength, constants.MaxDisplayNameLength,
	))
	ErrProfileNotFound = apierrors.NotFoundError("profile not found")
)

// ProfileService manages the caller's own profile.
type ProfileService struct {
	profiles repository.ProfileRepository
}

func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// UpsertProfile creates or replaces the actor's display name. Repeating the
// same call leaves a single profile with the same name.
func (s *ProfileService) UpsertProfile(ctx context.Context, actor Actor, displayName string) (*models.Profile, error) {
	name := strings.TrimSpace(displayName)
	n := utf8.RuneCountInString(name)
	if n < constants.MinDisplayNameLength || n > constants.MaxDisplayNameLength {
		return nil, ErrInvalidDisplayName
	}

	profile := &models.Profile{
		UserID:      actor.UserID,
		DisplayName: name,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return s.GetProfile(ctx, actor)
}

func (s *ProfileService) GetProfile(ctx context.Context, actor Actor) (*models.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}
