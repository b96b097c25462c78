package schedule

import (
	"sort"

	"github.com/google/uuid"

	"practicum-service/internal/model"
)

// ClientStats is the per-client breakdown row of a report table. A completed
// session with zero duration is a recorded no-show: it counts toward
// NotDoneCount and contributes nothing to TotalHours.
type ClientStats struct {
	ClientID     uuid.UUID `json:"client_id"`
	ClientName   string    `json:"client_name"`
	TotalHours   float64   `json:"total_hours"`
	SessionCount int       `json:"session_count"`
	DoneCount    int       `json:"done_count"`
	NotDoneCount int       `json:"not_done_count"`
}

type Summary struct {
	TotalHours float64       `json:"total_hours"`
	PerClient  []ClientStats `json:"per_client"`
}

// HoursByType sums the durations of sessions with the given type and status,
// in hours.
func HoursByType(sessions []model.Session, t model.SessionType, status model.SessionStatus) float64 {
	minutes := 0
	for _, s := range sessions {
		if s.Type == t && s.Status == status {
			minutes += s.Duration
		}
	}
	return float64(minutes) / 60
}

// Aggregate reduces the session collection into a type+status total and a
// per-client breakdown, sorted by descending hours. Clients with equal hours
// keep their first-appearance order.
func Aggregate(sessions []model.Session, t model.SessionType, status model.SessionStatus) Summary {
	index := make(map[uuid.UUID]int)
	perClient := make([]ClientStats, 0)

	for _, s := range sessions {
		if s.Type != t || s.Status != status {
			continue
		}
		i, ok := index[s.ClientID]
		if !ok {
			i = len(perClient)
			index[s.ClientID] = i
			perClient = append(perClient, ClientStats{ClientID: s.ClientID, ClientName: s.ClientName})
		}
		perClient[i].TotalHours += float64(s.Duration) / 60
		perClient[i].SessionCount++
		if s.Duration > 0 {
			perClient[i].DoneCount++
		} else {
			perClient[i].NotDoneCount++
		}
	}

	sort.SliceStable(perClient, func(i, j int) bool {
		return perClient[i].TotalHours > perClient[j].TotalHours
	})

	total := 0.0
	for _, cs := range perClient {
		total += cs.TotalHours
	}
	return Summary{TotalHours: total, PerClient: perClient}
}

// Goals are the target hours acting as progress denominators. They travel as
// an explicit value instead of ambient account state.
type Goals struct {
	Individual int `json:"individual"`
	Group      int `json:"group"`
}

// GoalsFrom reads the goals off a profile, falling back to the defaults for
// unset or nonsense values.
func GoalsFrom(p model.UserProfile) Goals {
	g := Goals{Individual: p.IndividualGoal, Group: p.GroupGoal}
	if g.Individual <= 0 {
		g.Individual = model.DefaultIndividualGoal
	}
	if g.Group <= 0 {
		g.Group = model.DefaultGroupGoal
	}
	return g
}

// Progress relates completed hours to a goal. Ratio is the raw quotient and
// may exceed 1.0 once the goal is met.
type Progress struct {
	CompletedHours float64 `json:"completed_hours"`
	PlannedHours   float64 `json:"planned_hours"`
	GoalHours      float64 `json:"goal_hours"`
	RemainingHours float64 `json:"remaining_hours"`
	Ratio          float64 `json:"ratio"`
}

// BarPercent clamps the ratio to 0-100 for progress-bar widths.
func (p Progress) BarPercent() float64 {
	pct := p.Ratio * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func newProgress(completed, planned, goal float64) Progress {
	p := Progress{CompletedHours: completed, PlannedHours: planned, GoalHours: goal}
	if goal > 0 {
		p.Ratio = completed / goal
	}
	if remaining := goal - completed; remaining > 0 {
		p.RemainingHours = remaining
	}
	return p
}

// ProgressFor computes progress for one session type against its goal.
func ProgressFor(sessions []model.Session, t model.SessionType, goalHours int) Progress {
	return newProgress(
		HoursByType(sessions, t, model.StatusCompleted),
		HoursByType(sessions, t, model.StatusPlanned),
		float64(goalHours),
	)
}

// OverallProgress combines both session types against the summed goals.
func OverallProgress(sessions []model.Session, goals Goals) Progress {
	completed := HoursByType(sessions, model.TypeIndividual, model.StatusCompleted) +
		HoursByType(sessions, model.TypeGroup, model.StatusCompleted)
	planned := HoursByType(sessions, model.TypeIndividual, model.StatusPlanned) +
		HoursByType(sessions, model.TypeGroup, model.StatusPlanned)
	return newProgress(completed, planned, float64(goals.Individual+goals.Group))
}
