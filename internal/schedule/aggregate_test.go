package schedule_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"practicum-service/internal/model"
	"practicum-service/internal/schedule"
)

func TestAggregate_TotalsMatchPerClientSum(t *testing.T) {
	c1, c2 := uuid.New(), uuid.New()
	sessions := []model.Session{
		{ID: uuid.New(), Type: model.TypeIndividual, Status: model.StatusCompleted, ClientID: c1, ClientName: "One", Duration: 60, Date: day(2024, time.March, 1)},
		{ID: uuid.New(), Type: model.TypeIndividual, Status: model.StatusCompleted, ClientID: c1, ClientName: "One", Duration: 90, Date: day(2024, time.March, 2)},
		{ID: uuid.New(), Type: model.TypeIndividual, Status: model.StatusCompleted, ClientID: c2, ClientName: "Two", Duration: 30, Date: day(2024, time.March, 3)},
		{ID: uuid.New(), Type: model.TypeIndividual, Status: model.StatusPlanned, ClientID: c2, ClientName: "Two", Duration: 120, Date: day(2024, time.March, 4)},
		{ID: uuid.New(), Type: model.TypeGroup, Status: model.StatusCompleted, ClientID: c2, ClientName: "Two", Duration: 45, Date: day(2024, time.March, 5)},
	}

	sum := schedule.Aggregate(sessions, model.TypeIndividual, model.StatusCompleted)

	perClientTotal := 0.0
	for _, cs := range sum.PerClient {
		perClientTotal += cs.TotalHours
	}
	require.InDelta(t, sum.TotalHours, perClientTotal, 1e-9)
	require.InDelta(t, 3.0, sum.TotalHours, 1e-9) // 60+90+30 minutes
	require.InDelta(t, sum.TotalHours, schedule.HoursByType(sessions, model.TypeIndividual, model.StatusCompleted), 1e-9)
}

func TestAggregate_ZeroDurationIsNoShow(t *testing.T) {
	c1 := uuid.New()
	sessions := []model.Session{
		{ID: uuid.New(), Type: model.TypeIndividual, Status: model.StatusCompleted, ClientID: c1, ClientName: "One", Duration: 60, Date: day(2024, time.March, 1)},
		{ID: uuid.New(), Type: model.TypeIndividual, Status: model.StatusCompleted, ClientID: c1, ClientName: "One", Duration: 0, Date: day(2024, time.March, 2)},
	}

	sum := schedule.Aggregate(sessions, model.TypeIndividual, model.StatusCompleted)
	require.Len(t, sum.PerClient, 1)

	cs := sum.PerClient[0]
	require.Equal(t, 2, cs.SessionCount)
	require.Equal(t, 1, cs.DoneCount)
	require.Equal(t, 1, cs.NotDoneCount)
	require.InDelta(t, 1.0, cs.TotalHours, 1e-9, "the no-show adds nothing")
}

func TestAggregate_SortedByHoursStableOnTies(t *testing.T) {
	c1, c2, c3 := uuid.New(), uuid.New(), uuid.New()
	sessions := []model.Session{
		{ID: uuid.New(), Type: model.TypeIndividual, Status: model.StatusCompleted, ClientID: c1, ClientName: "First", Duration: 60, Date: day(2024, time.March, 1)},
		{ID: uuid.New(), Type: model.TypeIndividual, Status: model.StatusCompleted, ClientID: c2, ClientName: "Second", Duration: 60, Date: day(2024, time.March, 2)},
		{ID: uuid.New(), Type: model.TypeIndividual, Status: model.StatusCompleted, ClientID: c3, ClientName: "Third", Duration: 120, Date: day(2024, time.March, 3)},
	}

	sum := schedule.Aggregate(sessions, model.TypeIndividual, model.StatusCompleted)
	require.Equal(t, "Third", sum.PerClient[0].ClientName)
	// c1 and c2 tie at one hour; input order breaks the tie.
	require.Equal(t, "First", sum.PerClient[1].ClientName)
	require.Equal(t, "Second", sum.PerClient[2].ClientName)
}

func TestAggregate_EmptyInput(t *testing.T) {
	sum := schedule.Aggregate(nil, model.TypeGroup, model.StatusCompleted)
	require.Zero(t, sum.TotalHours)
	require.Empty(t, sum.PerClient)
}

func TestGoalsFrom_Defaults(t *testing.T) {
	g := schedule.GoalsFrom(model.UserProfile{})
	require.Equal(t, model.DefaultIndividualGoal, g.Individual)
	require.Equal(t, model.DefaultGroupGoal, g.Group)

	g = schedule.GoalsFrom(model.UserProfile{IndividualGoal: 120, GroupGoal: 60})
	require.Equal(t, 120, g.Individual)
	require.Equal(t, 60, g.Group)
}

func TestProgressFor_RatioUnclampedBarClamped(t *testing.T) {
	c := uuid.New()
	sessions := []model.Session{
		{ID: uuid.New(), Type: model.TypeGroup, Status: model.StatusCompleted, ClientID: c, Duration: 60 * 50, Date: day(2024, time.March, 1)},
		{ID: uuid.New(), Type: model.TypeGroup, Status: model.StatusPlanned, ClientID: c, Duration: 90, Date: day(2024, time.April, 1)},
	}

	p := schedule.ProgressFor(sessions, model.TypeGroup, 45)
	require.InDelta(t, 50.0, p.CompletedHours, 1e-9)
	require.InDelta(t, 1.5, p.PlannedHours, 1e-9)
	require.InDelta(t, 50.0/45.0, p.Ratio, 1e-9, "raw ratio exceeds 1.0 once the goal is met")
	require.InDelta(t, 100.0, p.BarPercent(), 1e-9)
	require.Zero(t, p.RemainingHours)
}

func TestProgressFor_Remaining(t *testing.T) {
	c := uuid.New()
	sessions := []model.Session{
		{ID: uuid.New(), Type: model.TypeIndividual, Status: model.StatusCompleted, ClientID: c, Duration: 60 * 30, Date: day(2024, time.March, 1)},
	}

	p := schedule.ProgressFor(sessions, model.TypeIndividual, 90)
	require.InDelta(t, 60.0, p.RemainingHours, 1e-9)
	require.InDelta(t, (30.0/90.0)*100, p.BarPercent(), 1e-9)
}

func TestOverallProgress(t *testing.T) {
	c := uuid.New()
	sessions := []model.Session{
		{ID: uuid.New(), Type: model.TypeIndividual, Status: model.StatusCompleted, ClientID: c, Duration: 60, Date: day(2024, time.March, 1)},
		{ID: uuid.New(), Type: model.TypeGroup, Status: model.StatusCompleted, ClientID: c, Duration: 120, Date: day(2024, time.March, 2)},
	}

	p := schedule.OverallProgress(sessions, schedule.Goals{Individual: 90, Group: 45})
	require.InDelta(t, 3.0, p.CompletedHours, 1e-9)
	require.InDelta(t, 135.0, p.GoalHours, 1e-9)
	require.InDelta(t, 3.0/135.0, p.Ratio, 1e-9)
}
