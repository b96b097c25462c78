package model

import (
	"time"

	"github.com/google/uuid"
)

// Client is a person or group the practitioner works with. Group is a free
// text label used only for filtering; NULL means the client has no group.
type Client struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Group     *string   `db:"group_name" json:"group,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// GroupLabel returns the group tag, or "" when the client has none.
func (c Client) GroupLabel() string {
	if c.Group == nil {
		return ""
	}
	return *c.Group
}
