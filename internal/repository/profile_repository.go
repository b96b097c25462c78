package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"practicum-service/internal/model"
)

type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error)
	Upsert(ctx context.Context, profile *model.UserProfile) error
}

type postgresProfileRepository struct {
	db *sqlx.DB
}

func NewPostgresProfileRepository(db *sqlx.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

// Get returns the stored profile, or the default one (goals 90/45) when the
// user never saved settings.
func (r *postgresProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	var profile model.UserProfile
	query := `SELECT * FROM user_profiles WHERE user_id = $1`
	err := r.db.GetContext(ctx, &profile, query, userID)

	if err != nil {
		if err == sql.ErrNoRows {
			p := model.DefaultProfile(userID)
			return &p, nil
		}
		return nil, err
	}

	return &profile, nil
}

func (r *postgresProfileRepository) Upsert(ctx context.Context, profile *model.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, name, email, phone, institution, student_id, individual_goal, group_goal, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			institution = EXCLUDED.institution,
			student_id = EXCLUDED.student_id,
			individual_goal = EXCLUDED.individual_goal,
			group_goal = EXCLUDED.group_goal,
			updated_at = now()
	`

	_, err := r.db.ExecContext(ctx, query,
		profile.UserID, profile.Name, profile.Email, profile.Phone,
		profile.Institution, profile.StudentID, profile.IndividualGoal, profile.GroupGoal,
	)
	return err
}
