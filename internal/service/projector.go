package service

import (
	"sync"
	"time"

	"practicum-service/internal/model"
	"practicum-service/internal/schedule"
)

// ScheduleProjector holds the latest session and client snapshots for one user
// together with the active filter and month, and recomputes the derived view
// whenever any of them change. Snapshots are replaced wholesale: an incoming
// collection supersedes the previous one entirely, so a late recompute can
// never resurrect stale rows.
type ScheduleProjector struct {
	mu       sync.Mutex
	sessions []model.Session
	clients  []model.Client
	spec     schedule.FilterSpec
	month    time.Time
	view     schedule.View
}

func NewScheduleProjector(spec schedule.FilterSpec, month time.Time) *ScheduleProjector {
	p := &ScheduleProjector{spec: spec, month: month}
	p.recompute()
	return p
}

// ApplySessions replaces the session snapshot and rebuilds the view.
func (p *ScheduleProjector) ApplySessions(sessions []model.Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions = sessions
	p.recompute()
}

// ApplyClients replaces the client snapshot and rebuilds the view. A client
// filter that no longer resolves under the active group falls back to "all".
func (p *ScheduleProjector) ApplyClients(clients []model.Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clients = clients
	if !schedule.ClientVisible(p.spec.ClientID, p.spec.Group, p.clients) {
		p.spec.ClientID = schedule.FilterAll
	}
	p.recompute()
}

func (p *ScheduleProjector) SetFilter(spec schedule.FilterSpec) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !schedule.ClientVisible(spec.ClientID, spec.Group, p.clients) {
		spec.ClientID = schedule.FilterAll
	}
	p.spec = spec
	p.recompute()
}

func (p *ScheduleProjector) SetMonth(month time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.month = month
	p.recompute()
}

// CurrentView returns the most recently computed view.
func (p *ScheduleProjector) CurrentView() schedule.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// Filter returns the active filter spec, after any fallback adjustments.
func (p *ScheduleProjector) Filter() schedule.FilterSpec {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.spec
}

// recompute must be called with mu held.
func (p *ScheduleProjector) recompute() {
	p.view = schedule.BuildScheduleView(p.sessions, p.clients, p.spec, p.month)
}
