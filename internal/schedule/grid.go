package schedule

import (
	"time"

	"practicum-service/internal/model"
)

// GridCells is the fixed size of a month grid: six weeks of seven days.
const GridCells = 42

// Cell is a derived daily bucket of the month grid. Cells are regenerated on
// every month or filter change and never persisted.
type Cell struct {
	Date     time.Time       `json:"date"`
	Key      string          `json:"key"`
	InMonth  bool            `json:"in_month"`
	Sessions []model.Session `json:"sessions"`
}

// DayKey formats a timestamp as its local calendar day, YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// BuildMonthGrid returns the 42-cell Sunday-first grid covering the month of
// ref. The first cell is the Sunday on or before the 1st, so the last cell is
// always a Saturday; months that fit in five weeks still get the full six
// rows, with the overflow days marked InMonth=false.
func BuildMonthGrid(ref time.Time) []Cell {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]Cell, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, Cell{
			Date:    d,
			Key:     DayKey(d),
			InMonth: d.Month() == first.Month() && d.Year() == first.Year(),
		})
	}
	return cells
}

// InRange reports whether t falls on a calendar day between first and last,
// inclusive. Comparison is by day, so a session late on the last grid day
// still belongs to it.
func InRange(t, first, last time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	firstDay := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, first.Location())
	lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, last.Location())
	return !day.Before(firstDay) && !day.After(lastDay)
}
