package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"practicum-service/internal/events"
	"practicum-service/internal/model"
	"practicum-service/internal/repository"
)

var ErrClientNameRequired = errors.New("client name is required")

type ClientService interface {
	Create(ctx context.Context, userID uuid.UUID, name, group string) (*model.Client, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Client, error)
	Update(ctx context.Context, userID, clientID uuid.UUID, name, group string) error
	Delete(ctx context.Context, userID, clientID uuid.UUID) error
}

type clientService struct {
	clientRepo  repository.ClientRepository
	sessionRepo repository.SessionRepository
	publisher   events.EventPublisher
}

func NewClientService(clientRepo repository.ClientRepository, sessionRepo repository.SessionRepository, pub events.EventPublisher) ClientService {
	return &clientService{
		clientRepo:  clientRepo,
		sessionRepo: sessionRepo,
		publisher:   pub,
	}
}

func (s *clientService) Create(ctx context.Context, userID uuid.UUID, name, group string) (*model.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrClientNameRequired
	}

	client := &model.Client{UserID: userID, Name: name}
	if group = strings.TrimSpace(group); group != "" {
		client.Group = &group
	}

	created, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		return nil, err
	}

	go s.publisher.PublishClientChanged(userID, created.ID, events.ChangeCreated)

	return created, nil
}

func (s *clientService) List(ctx context.Context, userID uuid.UUID) ([]model.Client, error) {
	return s.clientRepo.ListByUser(ctx, userID)
}

// Update renames and/or retags the client. An empty group clears the tag. A
// rename also rewrites the denormalized client_name on every session of that
// client, which is how Session.ClientName stays in sync.
func (s *clientService) Update(ctx context.Context, userID, clientID uuid.UUID, name, group string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrClientNameRequired
	}

	params := repository.UpdateClientParams{Name: &name}
	if group = strings.TrimSpace(group); group != "" {
		params.Group = &group
	} else {
		params.ClearGroup = true
	}

	if err := s.clientRepo.Update(ctx, userID, clientID, params); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrClientNotFound
		}
		return err
	}

	if err := s.sessionRepo.UpdateClientName(ctx, userID, clientID, name); err != nil {
		return err
	}

	go s.publisher.PublishClientChanged(userID, clientID, events.ChangeUpdated)
	go s.publisher.PublishSessionChanged(userID, uuid.Nil, events.ChangeUpdated)

	return nil
}

// Delete removes the client together with all of its sessions; the sessions
// table cascades on the client foreign key.
func (s *clientService) Delete(ctx context.Context, userID, clientID uuid.UUID) error {
	if err := s.clientRepo.Delete(ctx, userID, clientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrClientNotFound
		}
		return err
	}

	go s.publisher.PublishClientChanged(userID, clientID, events.ChangeDeleted)
	go s.publisher.PublishSessionChanged(userID, uuid.Nil, events.ChangeDeleted)

	return nil
}

// mapNoRows converts the repositories' zero-row signal into the service's
// not-found error.
func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSessionNotFound
	}
	return err
}
