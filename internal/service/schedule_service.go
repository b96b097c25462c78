package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"practicum-service/internal/model"
	"practicum-service/internal/repository"
	"practicum-service/internal/schedule"
)

// Report is the payload behind the progress dashboard and the hours report:
// per-type progress against the profile goals, per-client breakdowns, and
// the most recent sessions.
type Report struct {
	Individual        schedule.Progress `json:"individual"`
	Group             schedule.Progress `json:"group"`
	Overall           schedule.Progress `json:"overall"`
	IndividualClients schedule.Summary  `json:"individual_clients"`
	GroupClients      schedule.Summary  `json:"group_clients"`
	Recent            []model.Session   `json:"recent"`
}

const recentLimit = 5

type ScheduleService interface {
	View(ctx context.Context, userID uuid.UUID, spec schedule.FilterSpec, month time.Time) (*schedule.View, error)
	Report(ctx context.Context, userID uuid.UUID) (*Report, error)
	Groups(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type scheduleService struct {
	sessionRepo repository.SessionRepository
	clientRepo  repository.ClientRepository
	profileRepo repository.ProfileRepository
}

func NewScheduleService(sessionRepo repository.SessionRepository, clientRepo repository.ClientRepository, profileRepo repository.ProfileRepository) ScheduleService {
	return &scheduleService{
		sessionRepo: sessionRepo,
		clientRepo:  clientRepo,
		profileRepo: profileRepo,
	}
}

func (s *scheduleService) View(ctx context.Context, userID uuid.UUID, spec schedule.FilterSpec, month time.Time) (*schedule.View, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// A client filter that fell outside the active group filter behaves as
	// "all" instead of silently matching nothing.
	if !schedule.ClientVisible(spec.ClientID, spec.Group, clients) {
		spec.ClientID = schedule.FilterAll
	}

	view := schedule.BuildScheduleView(sessions, clients, spec, month)
	return &view, nil
}

func (s *scheduleService) Report(ctx context.Context, userID uuid.UUID) (*Report, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	goals := schedule.GoalsFrom(*profile)

	recent := sessions
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return &Report{
		Individual:        schedule.ProgressFor(sessions, model.TypeIndividual, goals.Individual),
		Group:             schedule.ProgressFor(sessions, model.TypeGroup, goals.Group),
		Overall:           schedule.OverallProgress(sessions, goals),
		IndividualClients: schedule.Aggregate(sessions, model.TypeIndividual, model.StatusCompleted),
		GroupClients:      schedule.Aggregate(sessions, model.TypeGroup, model.StatusCompleted),
		Recent:            recent,
	}, nil
}

// Groups lists the distinct group tags for the filter dropdown.
func (s *scheduleService) Groups(ctx context.Context, userID uuid.UUID) ([]string, error) {
	clients, err := s.clientRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return schedule.UniqueGroups(clients), nil
}
