package schedule

import (
	"sort"
	"time"

	"practicum-service/internal/model"
)

// View pairs the two projections of one session collection under one
// FilterSpec: the month grid and the flat list. Because both are derived
// from the same spec value, switching between them never changes which
// sessions are visible.
type View struct {
	Cells []Cell          `json:"cells"`
	List  []model.Session `json:"list"`
}

// BuildScheduleView populates the month grid and the session list from the
// same inputs. Cell sessions are restricted to the grid's date range and
// sorted ascending by timestamp; the list ignores the grid range, honors the
// optional single-day filter, and is sorted descending.
func BuildScheduleView(sessions []model.Session, clients []model.Client, spec FilterSpec, refMonth time.Time) View {
	lookup := NewClientLookup(clients)
	cells := BuildMonthGrid(refMonth)
	first := cells[0].Date
	last := cells[len(cells)-1].Date

	byDay := make(map[string][]model.Session)
	for _, s := range sessions {
		if spec.Matches(s, lookup) && InRange(s.Date, first, last) {
			key := DayKey(s.Date)
			byDay[key] = append(byDay[key], s)
		}
	}
	for i := range cells {
		day := byDay[cells[i].Key]
		sort.SliceStable(day, func(a, b int) bool {
			return day[a].Date.Before(day[b].Date)
		})
		cells[i].Sessions = day
	}

	return View{
		Cells: cells,
		List:  FilterSessions(sessions, clients, spec),
	}
}
