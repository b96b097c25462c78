package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateClientsTable, downCreateClientsTable)
}

func upCreateClientsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE clients (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  user_id UUID NOT NULL,
	  name TEXT NOT NULL,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX idx_clients_user_id ON clients (user_id);
	`

	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	return nil
}

func downCreateClientsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS clients;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
