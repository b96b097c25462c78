package service

import (
	"context"

	"github.com/google/uuid"

	"practicum-service/internal/model"
	"practicum-service/internal/repository"
)

type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error)
	Update(ctx context.Context, profile *model.UserProfile) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	return s.profileRepo.Get(ctx, userID)
}

func (s *profileService) Update(ctx context.Context, profile *model.UserProfile) error {
	if profile.IndividualGoal <= 0 {
		profile.IndividualGoal = model.DefaultIndividualGoal
	}
	if profile.GroupGoal <= 0 {
		profile.GroupGoal = model.DefaultGroupGoal
	}
	return s.profileRepo.Upsert(ctx, profile)
}
