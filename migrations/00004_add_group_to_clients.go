package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddGroupToClients, downAddGroupToClients)
}

func upAddGroupToClients(ctx context.Context, tx *sql.Tx) error {
	query := `ALTER TABLE clients ADD COLUMN group_name TEXT;`

	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	return nil
}

func downAddGroupToClients(ctx context.Context, tx *sql.Tx) error {
	query := `ALTER TABLE clients DROP COLUMN IF EXISTS group_name;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
