package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"practicum-service/internal/model"
	"practicum-service/internal/repository"
)

const snapshotTimeout = 5 * time.Second

// Watcher turns the change events into push-style subscriptions: every
// notification delivers the user's full current collection, not a delta, so
// consumers replace their snapshot wholesale.
type Watcher struct {
	conn        *nats.Conn
	sessionRepo repository.SessionRepository
	clientRepo  repository.ClientRepository
}

func NewWatcher(natsURL string, sessionRepo repository.SessionRepository, clientRepo repository.ClientRepository) (*Watcher, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		conn:        nc,
		sessionRepo: sessionRepo,
		clientRepo:  clientRepo,
	}, nil
}

// SubscribeSessions invokes onChange with the full session collection,
// immediately and then after every change event, and returns an unsubscribe
// handle. A failed snapshot read is logged and skipped; the next event
// delivers the fresh state.
func (w *Watcher) SubscribeSessions(userID uuid.UUID, onChange func([]model.Session)) (func(), error) {
	push := func() {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()

		sessions, err := w.sessionRepo.ListByUser(ctx, userID)
		if err != nil {
			slog.Warn("Failed to load session snapshot", slog.String("user_id", userID.String()), slog.String("error", err.Error()))
			return
		}
		onChange(sessions)
	}

	sub, err := w.conn.Subscribe(SessionSubject(userID), func(msg *nats.Msg) {
		push()
	})
	if err != nil {
		return nil, err
	}

	push()

	return func() {
		if err := sub.Unsubscribe(); err != nil {
			slog.Warn("Failed to unsubscribe session watcher", slog.String("error", err.Error()))
		}
	}, nil
}

// SubscribeClients is the client-collection counterpart of SubscribeSessions.
func (w *Watcher) SubscribeClients(userID uuid.UUID, onChange func([]model.Client)) (func(), error) {
	push := func() {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()

		clients, err := w.clientRepo.ListByUser(ctx, userID)
		if err != nil {
			slog.Warn("Failed to load client snapshot", slog.String("user_id", userID.String()), slog.String("error", err.Error()))
			return
		}
		onChange(clients)
	}

	sub, err := w.conn.Subscribe(ClientSubject(userID), func(msg *nats.Msg) {
		push()
	})
	if err != nil {
		return nil, err
	}

	push()

	return func() {
		if err := sub.Unsubscribe(); err != nil {
			slog.Warn("Failed to unsubscribe client watcher", slog.String("error", err.Error()))
		}
	}, nil
}
