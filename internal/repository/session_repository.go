package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"practicum-service/internal/model"
)

// UpdateSessionParams carries a partial session update. Nil pointer fields
// are left untouched; ClearMemo removes the memo entirely, which is distinct
// from setting it to the empty string.
type UpdateSessionParams struct {
	Type       *model.SessionType
	ClientID   *uuid.UUID
	ClientName *string
	Duration   *int
	Date       *time.Time
	Status     *model.SessionStatus
	Memo       *string
	ClearMemo  bool
}

func (p UpdateSessionParams) Empty() bool {
	return p.Type == nil && p.ClientID == nil && p.ClientName == nil &&
		p.Duration == nil && p.Date == nil && p.Status == nil &&
		p.Memo == nil && !p.ClearMemo
}

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) (*model.Session, error)
	FindByID(ctx context.Context, userID, sessionID uuid.UUID) (*model.Session, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Session, error)
	Update(ctx context.Context, userID, sessionID uuid.UUID, params UpdateSessionParams) error
	SetIndexed(ctx context.Context, userID, sessionID uuid.UUID, indexed bool) error
	UpdateClientName(ctx context.Context, userID, clientID uuid.UUID, name string) error
	Delete(ctx context.Context, userID, sessionID uuid.UUID) error
}

type postgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

func (r *postgresSessionRepository) Create(ctx context.Context, session *model.Session) (*model.Session, error) {
	query := `
		INSERT INTO sessions (user_id, type, client_id, client_name, duration, date, status, indexed, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		session.UserID, session.Type, session.ClientID, session.ClientName,
		session.Duration, session.Date, session.Status, session.Indexed, session.Memo,
	)
	if err := row.Scan(&session.ID, &session.CreatedAt); err != nil {
		return nil, err
	}

	return session, nil
}

func (r *postgresSessionRepository) FindByID(ctx context.Context, userID, sessionID uuid.UUID) (*model.Session, error) {
	var session model.Session
	query := `SELECT * FROM sessions WHERE id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &session, query, sessionID, userID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

func (r *postgresSessionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	sessions := []model.Session{}
	query := `SELECT * FROM sessions WHERE user_id = $1 ORDER BY date DESC`
	if err := r.db.SelectContext(ctx, &sessions, query, userID); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *postgresSessionRepository) Update(ctx context.Context, userID, sessionID uuid.UUID, params UpdateSessionParams) error {
	set := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Type != nil {
		add("type", *params.Type)
	}
	if params.ClientID != nil {
		add("client_id", *params.ClientID)
	}
	if params.ClientName != nil {
		add("client_name", *params.ClientName)
	}
	if params.Duration != nil {
		add("duration", *params.Duration)
	}
	if params.Date != nil {
		add("date", *params.Date)
	}
	if params.Status != nil {
		add("status", *params.Status)
	}
	if params.ClearMemo {
		set = append(set, "memo = NULL")
	} else if params.Memo != nil {
		add("memo", *params.Memo)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, sessionID, userID)
	query := fmt.Sprintf("UPDATE sessions SET %s WHERE id = $%d AND user_id = $%d",
		joinClauses(set), len(args)-1, len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *postgresSessionRepository) SetIndexed(ctx context.Context, userID, sessionID uuid.UUID, indexed bool) error {
	query := `UPDATE sessions SET indexed = $1 WHERE id = $2 AND user_id = $3`
	res, err := r.db.ExecContext(ctx, query, indexed, sessionID, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *postgresSessionRepository) UpdateClientName(ctx context.Context, userID, clientID uuid.UUID, name string) error {
	query := `UPDATE sessions SET client_name = $1 WHERE client_id = $2 AND user_id = $3`
	_, err := r.db.ExecContext(ctx, query, name, clientID, userID)
	return err
}

func (r *postgresSessionRepository) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	query := `DELETE FROM sessions WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, sessionID, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func joinClauses(clauses []string) string {
	out := ""
	for i, c := range clauses {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

// requireRow turns a zero-row mutation into sql.ErrNoRows so services can
// map it to their not-found errors.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
