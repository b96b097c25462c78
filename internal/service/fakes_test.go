package service_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"practicum-service/internal/events"
	"practicum-service/internal/model"
	"practicum-service/internal/repository"
)

// memSessionRepo is an in-memory SessionRepository. It applies partial
// updates the same way the SQL implementation does, including cascade
// deletes when its paired memClientRepo removes a client.
type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]model.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[uuid.UUID]model.Session)}
}

func (r *memSessionRepo) Create(_ context.Context, session *model.Session) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := *session
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	r.sessions[s.ID] = s
	return &s, nil
}

func (r *memSessionRepo) FindByID(_ context.Context, userID, sessionID uuid.UUID) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	out := s
	return &out, nil
}

func (r *memSessionRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Session, 0)
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *memSessionRepo) Update(_ context.Context, userID, sessionID uuid.UUID, params repository.UpdateSessionParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok || s.UserID != userID {
		return sql.ErrNoRows
	}
	if params.Type != nil {
		s.Type = *params.Type
	}
	if params.ClientID != nil {
		s.ClientID = *params.ClientID
	}
	if params.ClientName != nil {
		s.ClientName = *params.ClientName
	}
	if params.Duration != nil {
		s.Duration = *params.Duration
	}
	if params.Date != nil {
		s.Date = *params.Date
	}
	if params.Status != nil {
		s.Status = *params.Status
	}
	if params.ClearMemo {
		s.Memo = nil
	} else if params.Memo != nil {
		memo := *params.Memo
		s.Memo = &memo
	}
	r.sessions[sessionID] = s
	return nil
}

func (r *memSessionRepo) SetIndexed(_ context.Context, userID, sessionID uuid.UUID, indexed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok || s.UserID != userID {
		return sql.ErrNoRows
	}
	s.Indexed = indexed
	r.sessions[sessionID] = s
	return nil
}

func (r *memSessionRepo) UpdateClientName(_ context.Context, userID, clientID uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID && s.ClientID == clientID {
			s.ClientName = name
			r.sessions[id] = s
		}
	}
	return nil
}

func (r *memSessionRepo) Delete(_ context.Context, userID, sessionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok || s.UserID != userID {
		return sql.ErrNoRows
	}
	delete(r.sessions, sessionID)
	return nil
}

func (r *memSessionRepo) deleteByClient(userID, clientID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID && s.ClientID == clientID {
			delete(r.sessions, id)
		}
	}
}

type memClientRepo struct {
	mu      sync.Mutex
	clients map[uuid.UUID]model.Client

	// cascade mirrors the sessions foreign key.
	cascade *memSessionRepo
}

func newMemClientRepo(cascade *memSessionRepo) *memClientRepo {
	return &memClientRepo{clients: make(map[uuid.UUID]model.Client), cascade: cascade}
}

func (r *memClientRepo) Create(_ context.Context, client *model.Client) (*model.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *client
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	r.clients[c.ID] = c
	return &c, nil
}

func (r *memClientRepo) FindByID(_ context.Context, userID, clientID uuid.UUID) (*model.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[clientID]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	out := c
	return &out, nil
}

func (r *memClientRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Client, 0)
	for _, c := range r.clients {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *memClientRepo) Update(_ context.Context, userID, clientID uuid.UUID, params repository.UpdateClientParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[clientID]
	if !ok || c.UserID != userID {
		return sql.ErrNoRows
	}
	if params.Name != nil {
		c.Name = *params.Name
	}
	if params.ClearGroup {
		c.Group = nil
	} else if params.Group != nil {
		g := *params.Group
		c.Group = &g
	}
	r.clients[clientID] = c
	return nil
}

func (r *memClientRepo) Delete(_ context.Context, userID, clientID uuid.UUID) error {
	r.mu.Lock()
	c, ok := r.clients[clientID]
	if !ok || c.UserID != userID {
		r.mu.Unlock()
		return sql.ErrNoRows
	}
	delete(r.clients, clientID)
	r.mu.Unlock()
	if r.cascade != nil {
		r.cascade.deleteByClient(userID, clientID)
	}
	return nil
}

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]model.UserProfile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[uuid.UUID]model.UserProfile)}
}

func (r *memProfileRepo) Get(_ context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		def := model.DefaultProfile(userID)
		return &def, nil
	}
	out := p
	return &out, nil
}

func (r *memProfileRepo) Upsert(_ context.Context, profile *model.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = *profile
	return nil
}

// noopPublisher swallows change events. Services publish from goroutines, so
// asserting on them would race; the watcher tests cover delivery instead.
type noopPublisher struct{}

func (noopPublisher) PublishSessionChanged(uuid.UUID, uuid.UUID, events.ChangeKind) error {
	return nil
}

func (noopPublisher) PublishClientChanged(uuid.UUID, uuid.UUID, events.ChangeKind) error {
	return nil
}
