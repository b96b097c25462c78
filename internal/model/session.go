package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionType string

const (
	TypeIndividual SessionType = "individual"
	TypeGroup      SessionType = "group"
)

func (t SessionType) Valid() bool {
	return t == TypeIndividual || t == TypeGroup
}

type SessionStatus string

const (
	StatusPlanned   SessionStatus = "planned"
	StatusCompleted SessionStatus = "completed"
)

func (s SessionStatus) Valid() bool {
	return s == StatusPlanned || s == StatusCompleted
}

// Session is one unit of practicum work, planned or completed, tied to one
// client. ClientName is a denormalized copy of the client's name at write
// time; the client-update pathway keeps it in sync on rename.
type Session struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	UserID     uuid.UUID     `db:"user_id" json:"user_id"`
	Type       SessionType   `db:"type" json:"type"`
	ClientID   uuid.UUID     `db:"client_id" json:"client_id"`
	ClientName string        `db:"client_name" json:"client_name"`
	Duration   int           `db:"duration" json:"duration"`
	Date       time.Time     `db:"date" json:"date"`
	Status     SessionStatus `db:"status" json:"status"`
	Indexed    bool          `db:"indexed" json:"indexed"`
	Memo       *string       `db:"memo" json:"memo,omitempty"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}
