package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateSessionsTable, downCreateSessionsTable)
}

func upCreateSessionsTable(ctx context.Context, tx *sql.Tx) error {
	// Deleting a client removes its sessions with it.
	query := `
	CREATE TABLE sessions (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  user_id UUID NOT NULL,
	  type TEXT NOT NULL CHECK (type IN ('individual', 'group')),
	  client_id UUID NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
	  client_name TEXT NOT NULL,
	  duration INTEGER NOT NULL DEFAULT 0 CHECK (duration >= 0),
	  date TIMESTAMP WITH TIME ZONE NOT NULL,
	  status TEXT NOT NULL CHECK (status IN ('planned', 'completed')),
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX idx_sessions_user_id_date ON sessions (user_id, date DESC);
	CREATE INDEX idx_sessions_client_id ON sessions (client_id);
	`

	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	return nil
}

func downCreateSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS sessions;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
