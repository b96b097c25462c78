package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"practicum-service/internal/events"
	"practicum-service/internal/model"
	"practicum-service/internal/repository"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrInvalidType          = errors.New("invalid session type")
	ErrInvalidStatus        = errors.New("invalid session status")
	ErrInvalidDuration      = errors.New("duration must not be negative")
	ErrPlannedNeedsDuration = errors.New("a planned session needs a positive duration")
	ErrTransitionNotAllowed = errors.New("completed sessions cannot be reopened")
)

// TransitionPolicy decides whether a completed session may go back to
// planned. The one-way policy is the default; the bidirectional variant
// exists because the edit dialog in some deployments allows free toggling.
type TransitionPolicy struct {
	AllowReopen bool
}

type CreateSessionInput struct {
	Type     model.SessionType
	ClientID uuid.UUID
	Duration int
	Date     time.Time
	Status   model.SessionStatus
	Memo     *string
}

// EditSessionInput mirrors the edit dialog: nil fields stay as they are,
// ClearMemo wipes the memo.
type EditSessionInput struct {
	Type      *model.SessionType
	ClientID  *uuid.UUID
	Duration  *int
	Date      *time.Time
	Status    *model.SessionStatus
	Memo      *string
	ClearMemo bool
}

type SessionService interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateSessionInput) (*model.Session, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Session, error)
	Edit(ctx context.Context, userID, sessionID uuid.UUID, in EditSessionInput) error
	Complete(ctx context.Context, userID, sessionID uuid.UUID, at time.Time) error
	Reopen(ctx context.Context, userID, sessionID uuid.UUID) error
	SetIndexed(ctx context.Context, userID, sessionID uuid.UUID, indexed bool) error
	Delete(ctx context.Context, userID, sessionID uuid.UUID) error
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	clientRepo  repository.ClientRepository
	publisher   events.EventPublisher
	policy      TransitionPolicy
}

func NewSessionService(sessionRepo repository.SessionRepository, clientRepo repository.ClientRepository, pub events.EventPublisher, policy TransitionPolicy) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		clientRepo:  clientRepo,
		publisher:   pub,
		policy:      policy,
	}
}

func validDuration(duration int, status model.SessionStatus) error {
	if duration < 0 {
		return ErrInvalidDuration
	}
	// A zero-duration completed session records a no-show; a planned one
	// would just be an empty slot.
	if duration == 0 && status == model.StatusPlanned {
		return ErrPlannedNeedsDuration
	}
	return nil
}

func (s *sessionService) Create(ctx context.Context, userID uuid.UUID, in CreateSessionInput) (*model.Session, error) {
	if !in.Type.Valid() {
		return nil, ErrInvalidType
	}
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := validDuration(in.Duration, in.Status); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindByID(ctx, userID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	session := &model.Session{
		UserID:     userID,
		Type:       in.Type,
		ClientID:   in.ClientID,
		ClientName: client.Name,
		Duration:   in.Duration,
		Date:       in.Date,
		Status:     in.Status,
		Memo:       in.Memo,
	}

	created, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}

	go s.publisher.PublishSessionChanged(userID, created.ID, events.ChangeCreated)

	return created, nil
}

func (s *sessionService) List(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	return s.sessionRepo.ListByUser(ctx, userID)
}

func (s *sessionService) Edit(ctx context.Context, userID, sessionID uuid.UUID, in EditSessionInput) error {
	current, err := s.sessionRepo.FindByID(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrSessionNotFound
	}

	if in.Type != nil && !in.Type.Valid() {
		return ErrInvalidType
	}

	status := current.Status
	if in.Status != nil {
		if !in.Status.Valid() {
			return ErrInvalidStatus
		}
		if current.Status == model.StatusCompleted && *in.Status == model.StatusPlanned && !s.policy.AllowReopen {
			return ErrTransitionNotAllowed
		}
		status = *in.Status
	}

	if in.Duration != nil {
		if err := validDuration(*in.Duration, status); err != nil {
			return err
		}
	}

	params := repository.UpdateSessionParams{
		Type:      in.Type,
		Duration:  in.Duration,
		Date:      in.Date,
		Status:    in.Status,
		Memo:      in.Memo,
		ClearMemo: in.ClearMemo,
	}

	// Changing the client re-stamps the denormalized name.
	if in.ClientID != nil {
		client, err := s.clientRepo.FindByID(ctx, userID, *in.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return ErrClientNotFound
		}
		params.ClientID = in.ClientID
		params.ClientName = &client.Name
	}

	if err := s.sessionRepo.Update(ctx, userID, sessionID, params); err != nil {
		return mapNoRows(err)
	}

	go s.publisher.PublishSessionChanged(userID, sessionID, events.ChangeUpdated)

	return nil
}

// Complete flips a planned session to completed and stamps the completion
// time as the session date.
func (s *sessionService) Complete(ctx context.Context, userID, sessionID uuid.UUID, at time.Time) error {
	current, err := s.sessionRepo.FindByID(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrSessionNotFound
	}
	if current.Status == model.StatusCompleted {
		return nil
	}

	status := model.StatusCompleted
	if err := s.sessionRepo.Update(ctx, userID, sessionID, repository.UpdateSessionParams{
		Status: &status,
		Date:   &at,
	}); err != nil {
		return mapNoRows(err)
	}

	go s.publisher.PublishSessionChanged(userID, sessionID, events.ChangeUpdated)

	return nil
}

func (s *sessionService) Reopen(ctx context.Context, userID, sessionID uuid.UUID) error {
	if !s.policy.AllowReopen {
		return ErrTransitionNotAllowed
	}

	current, err := s.sessionRepo.FindByID(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrSessionNotFound
	}
	if current.Status == model.StatusPlanned {
		return nil
	}

	status := model.StatusPlanned
	if err := s.sessionRepo.Update(ctx, userID, sessionID, repository.UpdateSessionParams{Status: &status}); err != nil {
		return mapNoRows(err)
	}

	go s.publisher.PublishSessionChanged(userID, sessionID, events.ChangeUpdated)

	return nil
}

func (s *sessionService) SetIndexed(ctx context.Context, userID, sessionID uuid.UUID, indexed bool) error {
	if err := s.sessionRepo.SetIndexed(ctx, userID, sessionID, indexed); err != nil {
		return mapNoRows(err)
	}

	go s.publisher.PublishSessionChanged(userID, sessionID, events.ChangeUpdated)

	return nil
}

func (s *sessionService) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	if err := s.sessionRepo.Delete(ctx, userID, sessionID); err != nil {
		return mapNoRows(err)
	}

	go s.publisher.PublishSessionChanged(userID, sessionID, events.ChangeDeleted)

	return nil
}
