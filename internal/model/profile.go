package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultIndividualGoal = 90
	DefaultGroupGoal      = 45
)

// UserProfile holds per-account settings. The goal fields are target hours
// used as denominators for progress ratios.
type UserProfile struct {
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Phone          string    `db:"phone" json:"phone"`
	Institution    string    `db:"institution" json:"institution"`
	StudentID      string    `db:"student_id" json:"student_id"`
	IndividualGoal int       `db:"individual_goal" json:"individual_goal"`
	GroupGoal      int       `db:"group_goal" json:"group_goal"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultProfile is what a user gets before ever saving settings.
func DefaultProfile(userID uuid.UUID) UserProfile {
	return UserProfile{
		UserID:         userID,
		IndividualGoal: DefaultIndividualGoal,
		GroupGoal:      DefaultGroupGoal,
	}
}
