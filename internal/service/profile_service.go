package service

import (
	"context"
	"io"
	"strings"

	"ironlog/internal/models"
	"ironlog/internal/repository"
	"ironlog/internal/validation"
)

// AvatarStore persists uploaded avatar images and returns their public URL.
type AvatarStore interface {
	Save(ctx context.Context, userID uint, r io.Reader) (string, error)
}

// ProfileService handles profile reads and updates.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	avatars     AvatarStore
}

// UpdateProfileInput carries the mutable public fields of a profile.
type UpdateProfileInput struct {
	UserID   uint
	Username *string
	FullName *string
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, avatars AvatarStore) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, avatars: avatars}
}

func (s *ProfileService) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

func (s *ProfileService) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", username)
	}
	return profile, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		profile.Username = username
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if len(name) > 100 {
			return nil, models.NewValidationError("Full name must not exceed 100 characters")
		}
		profile.FullName = name
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateAvatar stores the uploaded image and points the profile at it.
func (s *ProfileService) UpdateAvatar(ctx context.Context, userID uint, r io.Reader) (*models.Profile, error) {
	if s.avatars == nil {
		return nil, models.NewValidationError("Avatar uploads are not available")
	}
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.avatars.Save(ctx, userID, r)
	if err != nil {
		return nil, err
	}

	profile.AvatarURL = url
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
