package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUserProfilesTable, downCreateUserProfilesTable)
}

func upCreateUserProfilesTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE user_profiles (
	  user_id UUID PRIMARY KEY,
	  name TEXT NOT NULL DEFAULT '',
	  email TEXT NOT NULL DEFAULT '',
	  phone TEXT NOT NULL DEFAULT '',
	  institution TEXT NOT NULL DEFAULT '',
	  student_id TEXT NOT NULL DEFAULT '',
	  individual_goal INTEGER NOT NULL DEFAULT 90,
	  group_goal INTEGER NOT NULL DEFAULT 45,
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	`

	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	return nil
}

func downCreateUserProfilesTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS user_profiles;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
