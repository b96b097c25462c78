package schedule

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"practicum-service/internal/model"
)

// Special filter values. The zero value of every FilterSpec field passes, so
// an empty spec matches every session.
const (
	FilterAll        = "all"
	FilterGroupNone  = "none"
	FilterNotIndexed = "notIndexed"
)

// FilterSpec is a set of independently toggleable predicates, ANDed
// together. The same spec value drives both the calendar and the list
// projection so the two views never disagree.
type FilterSpec struct {
	Type     string `json:"type" query:"type"`
	Status   string `json:"status" query:"status"`
	Indexed  string `json:"indexed" query:"indexed"`
	Group    string `json:"group" query:"group"`
	ClientID string `json:"client_id" query:"client_id"`
	DateKey  string `json:"date_key" query:"date_key"`
	Keyword  string `json:"keyword" query:"keyword"`
}

// ClientLookup resolves a session's client by id. A nil lookup is valid and
// finds nothing.
type ClientLookup map[uuid.UUID]model.Client

func NewClientLookup(clients []model.Client) ClientLookup {
	lookup := make(ClientLookup, len(clients))
	for _, c := range clients {
		lookup[c.ID] = c
	}
	return lookup
}

func pass(v string) bool {
	return v == "" || v == FilterAll
}

func (f FilterSpec) MatchType(s model.Session) bool {
	return pass(f.Type) || string(s.Type) == f.Type
}

func (f FilterSpec) MatchStatus(s model.Session) bool {
	return pass(f.Status) || string(s.Status) == f.Status
}

// MatchIndexed excludes indexed sessions when the notIndexed filter is on.
// An unset flag counts as not indexed.
func (f FilterSpec) MatchIndexed(s model.Session) bool {
	if f.Indexed != FilterNotIndexed {
		return true
	}
	return !s.Indexed
}

// MatchGroup resolves session -> client -> group. A session whose client is
// missing from the lookup is treated as having no group, never an error.
func (f FilterSpec) MatchGroup(s model.Session, lookup ClientLookup) bool {
	if pass(f.Group) {
		return true
	}
	group := ""
	if client, ok := lookup[s.ClientID]; ok {
		group = client.GroupLabel()
	}
	if f.Group == FilterGroupNone {
		return group == ""
	}
	return group == f.Group
}

func (f FilterSpec) MatchClient(s model.Session) bool {
	return pass(f.ClientID) || s.ClientID.String() == f.ClientID
}

func (f FilterSpec) MatchDay(s model.Session) bool {
	return f.DateKey == "" || DayKey(s.Date) == f.DateKey
}

func (f FilterSpec) MatchKeyword(s model.Session) bool {
	if f.Keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.ClientName), strings.ToLower(f.Keyword))
}

// Matches applies every predicate except the single-day one, which belongs
// to the list projection only (the calendar shows the whole month while the
// selected day narrows the list).
func (f FilterSpec) Matches(s model.Session, lookup ClientLookup) bool {
	return f.MatchType(s) &&
		f.MatchStatus(s) &&
		f.MatchIndexed(s) &&
		f.MatchGroup(s, lookup) &&
		f.MatchClient(s) &&
		f.MatchKeyword(s)
}

// FilterSessions returns the sessions matching spec, including the optional
// single-day filter, newest first.
func FilterSessions(sessions []model.Session, clients []model.Client, spec FilterSpec) []model.Session {
	lookup := NewClientLookup(clients)
	out := make([]model.Session, 0, len(sessions))
	for _, s := range sessions {
		if spec.Matches(s, lookup) && spec.MatchDay(s) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
