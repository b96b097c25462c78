package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"practicum-service/internal/model"
)

// UpdateClientParams carries a partial client update. ClearGroup removes the
// group tag; a nil Group leaves it alone.
type UpdateClientParams struct {
	Name       *string
	Group      *string
	ClearGroup bool
}

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) (*model.Client, error)
	FindByID(ctx context.Context, userID, clientID uuid.UUID) (*model.Client, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Client, error)
	Update(ctx context.Context, userID, clientID uuid.UUID, params UpdateClientParams) error
	Delete(ctx context.Context, userID, clientID uuid.UUID) error
}

type postgresClientRepository struct {
	db *sqlx.DB
}

func NewPostgresClientRepository(db *sqlx.DB) ClientRepository {
	return &postgresClientRepository{db: db}
}

func (r *postgresClientRepository) Create(ctx context.Context, client *model.Client) (*model.Client, error) {
	query := `
		INSERT INTO clients (user_id, name, group_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	row := r.db.QueryRowxContext(ctx, query, client.UserID, client.Name, client.Group)
	if err := row.Scan(&client.ID, &client.CreatedAt); err != nil {
		return nil, err
	}

	return client, nil
}

func (r *postgresClientRepository) FindByID(ctx context.Context, userID, clientID uuid.UUID) (*model.Client, error) {
	var client model.Client
	query := `SELECT * FROM clients WHERE id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &client, query, clientID, userID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &client, nil
}

func (r *postgresClientRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Client, error) {
	clients := []model.Client{}
	query := `SELECT * FROM clients WHERE user_id = $1 ORDER BY name ASC`
	if err := r.db.SelectContext(ctx, &clients, query, userID); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *postgresClientRepository) Update(ctx context.Context, userID, clientID uuid.UUID, params UpdateClientParams) error {
	var group interface{}
	switch {
	case params.ClearGroup:
		group = nil
	case params.Group != nil:
		group = *params.Group
	}

	if params.Name != nil && (params.Group != nil || params.ClearGroup) {
		query := `UPDATE clients SET name = $1, group_name = $2 WHERE id = $3 AND user_id = $4`
		res, err := r.db.ExecContext(ctx, query, *params.Name, group, clientID, userID)
		if err != nil {
			return err
		}
		return requireRow(res)
	}
	if params.Name != nil {
		query := `UPDATE clients SET name = $1 WHERE id = $2 AND user_id = $3`
		res, err := r.db.ExecContext(ctx, query, *params.Name, clientID, userID)
		if err != nil {
			return err
		}
		return requireRow(res)
	}
	if params.Group != nil || params.ClearGroup {
		query := `UPDATE clients SET group_name = $1 WHERE id = $2 AND user_id = $3`
		res, err := r.db.ExecContext(ctx, query, group, clientID, userID)
		if err != nil {
			return err
		}
		return requireRow(res)
	}
	return nil
}

// Delete removes the client; the sessions FK cascades, so the client's
// sessions go with it.
func (r *postgresClientRepository) Delete(ctx context.Context, userID, clientID uuid.UUID) error {
	query := `DELETE FROM clients WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, clientID, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
