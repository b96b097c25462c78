package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"practicum-service/internal/model"
	"practicum-service/internal/service"
)

type serviceEnv struct {
	sessions *memSessionRepo
	clients  *memClientRepo
	profiles *memProfileRepo
	userID   uuid.UUID
}

func newServiceEnv() *serviceEnv {
	sessions := newMemSessionRepo()
	return &serviceEnv{
		sessions: sessions,
		clients:  newMemClientRepo(sessions),
		profiles: newMemProfileRepo(),
		userID:   uuid.New(),
	}
}

func (e *serviceEnv) sessionService(policy service.TransitionPolicy) service.SessionService {
	return service.NewSessionService(e.sessions, e.clients, noopPublisher{}, policy)
}

func (e *serviceEnv) clientService() service.ClientService {
	return service.NewClientService(e.clients, e.sessions, noopPublisher{})
}

func (e *serviceEnv) addClient(t *testing.T, name, group string) *model.Client {
	t.Helper()
	client, err := e.clientService().Create(context.Background(), e.userID, name, group)
	require.NoError(t, err)
	return client
}

func TestSessionServiceCreate(t *testing.T) {
	env := newServiceEnv()
	svc := env.sessionService(service.TransitionPolicy{})
	client := env.addClient(t, "Alice", "")

	created, err := svc.Create(context.Background(), env.userID, service.CreateSessionInput{
		Type:     model.TypeIndividual,
		ClientID: client.ID,
		Duration: 60,
		Date:     time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
		Status:   model.StatusCompleted,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.Equal(t, "Alice", created.ClientName, "client name is stamped at creation")

	list, err := svc.List(context.Background(), env.userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestSessionServiceCreateValidation(t *testing.T) {
	env := newServiceEnv()
	svc := env.sessionService(service.TransitionPolicy{})
	client := env.addClient(t, "Alice", "")

	base := service.CreateSessionInput{
		Type:     model.TypeIndividual,
		ClientID: client.ID,
		Duration: 60,
		Date:     time.Now(),
		Status:   model.StatusPlanned,
	}

	tests := []struct {
		name    string
		mutate  func(*service.CreateSessionInput)
		wantErr error
	}{
		{"bad type", func(in *service.CreateSessionInput) { in.Type = "pair" }, service.ErrInvalidType},
		{"bad status", func(in *service.CreateSessionInput) { in.Status = "done" }, service.ErrInvalidStatus},
		{"negative duration", func(in *service.CreateSessionInput) { in.Duration = -30 }, service.ErrInvalidDuration},
		{"planned needs duration", func(in *service.CreateSessionInput) { in.Duration = 0 }, service.ErrPlannedNeedsDuration},
		{"unknown client", func(in *service.CreateSessionInput) { in.ClientID = uuid.New() }, service.ErrClientNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), env.userID, in)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSessionServiceCreateNoShow(t *testing.T) {
	env := newServiceEnv()
	svc := env.sessionService(service.TransitionPolicy{})
	client := env.addClient(t, "Alice", "")

	// A completed session with zero duration records a no-show.
	created, err := svc.Create(context.Background(), env.userID, service.CreateSessionInput{
		Type:     model.TypeIndividual,
		ClientID: client.ID,
		Duration: 0,
		Date:     time.Now(),
		Status:   model.StatusCompleted,
	})
	require.NoError(t, err)
	require.Equal(t, 0, created.Duration)
}

func TestSessionServiceEditPartial(t *testing.T) {
	env := newServiceEnv()
	svc := env.sessionService(service.TransitionPolicy{})
	client := env.addClient(t, "Alice", "")

	memo := "first meeting"
	created, err := svc.Create(context.Background(), env.userID, service.CreateSessionInput{
		Type:     model.TypeIndividual,
		ClientID: client.ID,
		Duration: 60,
		Date:     time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
		Status:   model.StatusPlanned,
		Memo:     &memo,
	})
	require.NoError(t, err)

	duration := 90
	err = svc.Edit(context.Background(), env.userID, created.ID, service.EditSessionInput{
		Duration: &duration,
	})
	require.NoError(t, err)

	got, err := env.sessions.FindByID(context.Background(), env.userID, created.ID)
	require.NoError(t, err)
	require.Equal(t, 90, got.Duration)
	require.Equal(t, model.TypeIndividual, got.Type, "untouched field survives a partial edit")
	require.NotNil(t, got.Memo, "memo survives when neither set nor cleared")

	err = svc.Edit(context.Background(), env.userID, created.ID, service.EditSessionInput{ClearMemo: true})
	require.NoError(t, err)

	got, err = env.sessions.FindByID(context.Background(), env.userID, created.ID)
	require.NoError(t, err)
	require.Nil(t, got.Memo)
}

func TestSessionServiceEditClientRestampsName(t *testing.T) {
	env := newServiceEnv()
	svc := env.sessionService(service.TransitionPolicy{})
	alice := env.addClient(t, "Alice", "")
	bob := env.addClient(t, "Bob", "")

	created, err := svc.Create(context.Background(), env.userID, service.CreateSessionInput{
		Type:     model.TypeIndividual,
		ClientID: alice.ID,
		Duration: 60,
		Date:     time.Now(),
		Status:   model.StatusPlanned,
	})
	require.NoError(t, err)

	err = svc.Edit(context.Background(), env.userID, created.ID, service.EditSessionInput{ClientID: &bob.ID})
	require.NoError(t, err)

	got, err := env.sessions.FindByID(context.Background(), env.userID, created.ID)
	require.NoError(t, err)
	require.Equal(t, bob.ID, got.ClientID)
	require.Equal(t, "Bob", got.ClientName)
}

func TestSessionServiceTransitionPolicy(t *testing.T) {
	planned := model.StatusPlanned

	t.Run("one-way rejects reopen", func(t *testing.T) {
		env := newServiceEnv()
		svc := env.sessionService(service.TransitionPolicy{AllowReopen: false})
		client := env.addClient(t, "Alice", "")

		created, err := svc.Create(context.Background(), env.userID, service.CreateSessionInput{
			Type:     model.TypeIndividual,
			ClientID: client.ID,
			Duration: 60,
			Date:     time.Now(),
			Status:   model.StatusCompleted,
		})
		require.NoError(t, err)

		err = svc.Edit(context.Background(), env.userID, created.ID, service.EditSessionInput{Status: &planned})
		require.ErrorIs(t, err, service.ErrTransitionNotAllowed)

		err = svc.Reopen(context.Background(), env.userID, created.ID)
		require.ErrorIs(t, err, service.ErrTransitionNotAllowed)
	})

	t.Run("bidirectional allows reopen", func(t *testing.T) {
		env := newServiceEnv()
		svc := env.sessionService(service.TransitionPolicy{AllowReopen: true})
		client := env.addClient(t, "Alice", "")

		created, err := svc.Create(context.Background(), env.userID, service.CreateSessionInput{
			Type:     model.TypeIndividual,
			ClientID: client.ID,
			Duration: 60,
			Date:     time.Now(),
			Status:   model.StatusCompleted,
		})
		require.NoError(t, err)

		require.NoError(t, svc.Reopen(context.Background(), env.userID, created.ID))

		got, err := env.sessions.FindByID(context.Background(), env.userID, created.ID)
		require.NoError(t, err)
		require.Equal(t, model.StatusPlanned, got.Status)
	})
}

func TestSessionServiceComplete(t *testing.T) {
	env := newServiceEnv()
	svc := env.sessionService(service.TransitionPolicy{})
	client := env.addClient(t, "Alice", "")

	created, err := svc.Create(context.Background(), env.userID, service.CreateSessionInput{
		Type:     model.TypeIndividual,
		ClientID: client.ID,
		Duration: 60,
		Date:     time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
		Status:   model.StatusPlanned,
	})
	require.NoError(t, err)

	at := time.Date(2024, time.March, 6, 14, 30, 0, 0, time.UTC)
	require.NoError(t, svc.Complete(context.Background(), env.userID, created.ID, at))

	got, err := env.sessions.FindByID(context.Background(), env.userID, created.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, got.Status)
	require.True(t, got.Date.Equal(at), "completion stamps the session date")

	// Completing an already-completed session is a no-op, not an error.
	require.NoError(t, svc.Complete(context.Background(), env.userID, created.ID, at.Add(time.Hour)))
	got, err = env.sessions.FindByID(context.Background(), env.userID, created.ID)
	require.NoError(t, err)
	require.True(t, got.Date.Equal(at))
}

func TestSessionServiceSetIndexed(t *testing.T) {
	env := newServiceEnv()
	svc := env.sessionService(service.TransitionPolicy{})
	client := env.addClient(t, "Alice", "")

	created, err := svc.Create(context.Background(), env.userID, service.CreateSessionInput{
		Type:     model.TypeIndividual,
		ClientID: client.ID,
		Duration: 60,
		Date:     time.Now(),
		Status:   model.StatusCompleted,
	})
	require.NoError(t, err)
	require.False(t, created.Indexed)

	require.NoError(t, svc.SetIndexed(context.Background(), env.userID, created.ID, true))

	got, err := env.sessions.FindByID(context.Background(), env.userID, created.ID)
	require.NoError(t, err)
	require.True(t, got.Indexed)
}

func TestSessionServiceNotFound(t *testing.T) {
	env := newServiceEnv()
	svc := env.sessionService(service.TransitionPolicy{AllowReopen: true})
	missing := uuid.New()

	duration := 90
	err := svc.Edit(context.Background(), env.userID, missing, service.EditSessionInput{Duration: &duration})
	require.ErrorIs(t, err, service.ErrSessionNotFound)

	require.ErrorIs(t, svc.Complete(context.Background(), env.userID, missing, time.Now()), service.ErrSessionNotFound)
	require.ErrorIs(t, svc.Reopen(context.Background(), env.userID, missing), service.ErrSessionNotFound)
	require.ErrorIs(t, svc.SetIndexed(context.Background(), env.userID, missing, true), service.ErrSessionNotFound)
	require.ErrorIs(t, svc.Delete(context.Background(), env.userID, missing), service.ErrSessionNotFound)
}

func TestSessionServiceScopedToUser(t *testing.T) {
	env := newServiceEnv()
	svc := env.sessionService(service.TransitionPolicy{})
	client := env.addClient(t, "Alice", "")

	created, err := svc.Create(context.Background(), env.userID, service.CreateSessionInput{
		Type:     model.TypeIndividual,
		ClientID: client.ID,
		Duration: 60,
		Date:     time.Now(),
		Status:   model.StatusCompleted,
	})
	require.NoError(t, err)

	otherUser := uuid.New()
	require.ErrorIs(t, svc.Delete(context.Background(), otherUser, created.ID), service.ErrSessionNotFound)

	list, err := svc.List(context.Background(), otherUser)
	require.NoError(t, err)
	require.Empty(t, list)
}
