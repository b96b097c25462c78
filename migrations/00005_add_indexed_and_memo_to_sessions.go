package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddIndexedAndMemoToSessions, downAddIndexedAndMemoToSessions)
}

func upAddIndexedAndMemoToSessions(ctx context.Context, tx *sql.Tx) error {
	query := `
	ALTER TABLE sessions ADD COLUMN indexed BOOLEAN NOT NULL DEFAULT FALSE;
	ALTER TABLE sessions ADD COLUMN memo TEXT;
	`

	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	return nil
}

func downAddIndexedAndMemoToSessions(ctx context.Context, tx *sql.Tx) error {
	query := `
	ALTER TABLE sessions DROP COLUMN IF EXISTS memo;
	ALTER TABLE sessions DROP COLUMN IF EXISTS indexed;
	`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
