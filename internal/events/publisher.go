package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

const (
	sessionSubjectPrefix = "practicum.sessions.changed."
	clientSubjectPrefix  = "practicum.clients.changed."
)

func SessionSubject(userID uuid.UUID) string {
	return sessionSubjectPrefix + userID.String()
}

func ClientSubject(userID uuid.UUID) string {
	return clientSubjectPrefix + userID.String()
}

type EventPublisher interface {
	PublishSessionChanged(userID, sessionID uuid.UUID, kind ChangeKind) error
	PublishClientChanged(userID, clientID uuid.UUID, kind ChangeKind) error
}

type SessionChangedEvent struct {
	EventType  string     `json:"event_type"`
	UserID     uuid.UUID  `json:"user_id"`
	SessionID  uuid.UUID  `json:"session_id"`
	Kind       ChangeKind `json:"kind"`
	OccurredAt time.Time  `json:"occurred_at"`
}

type ClientChangedEvent struct {
	EventType  string     `json:"event_type"`
	UserID     uuid.UUID  `json:"user_id"`
	ClientID   uuid.UUID  `json:"client_id"`
	Kind       ChangeKind `json:"kind"`
	OccurredAt time.Time  `json:"occurred_at"`
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

func (p *NatsPublisher) PublishSessionChanged(userID, sessionID uuid.UUID, kind ChangeKind) error {
	event := SessionChangedEvent{
		EventType:  "session.changed",
		UserID:     userID,
		SessionID:  sessionID,
		Kind:       kind,
		OccurredAt: time.Now(),
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		slog.Error("Error marshalling session event", slog.String("error", err.Error()))
		return err
	}

	return p.conn.Publish(SessionSubject(userID), eventJSON)
}

func (p *NatsPublisher) PublishClientChanged(userID, clientID uuid.UUID, kind ChangeKind) error {
	event := ClientChangedEvent{
		EventType:  "client.changed",
		UserID:     userID,
		ClientID:   clientID,
		Kind:       kind,
		OccurredAt: time.Now(),
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		slog.Error("Error marshalling client event", slog.String("error", err.Error()))
		return err
	}

	return p.conn.Publish(ClientSubject(userID), eventJSON)
}
