package schedule

import (
	"sort"

	"practicum-service/internal/model"
)

// SortClients orders clients for pickers: grouped clients first, by group
// then name, ungrouped clients last by name.
func SortClients(clients []model.Client) []model.Client {
	out := make([]model.Client, len(clients))
	copy(out, clients)
	sort.SliceStable(out, func(i, j int) bool {
		gi, gj := out[i].GroupLabel(), out[j].GroupLabel()
		if gi == "" && gj == "" {
			return out[i].Name < out[j].Name
		}
		if gi == "" {
			return false
		}
		if gj == "" {
			return true
		}
		if gi != gj {
			return gi < gj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// UniqueGroups returns the distinct non-empty group tags, sorted.
func UniqueGroups(clients []model.Client) []string {
	seen := make(map[string]bool)
	groups := make([]string, 0)
	for _, c := range clients {
		g := c.GroupLabel()
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// ClientVisible reports whether the client id is still selectable under the
// active group filter. Callers reset a stale client filter to "all" when this
// turns false.
func ClientVisible(clientID, group string, clients []model.Client) bool {
	if pass(clientID) {
		return true
	}
	for _, c := range clients {
		if c.ID.String() != clientID {
			continue
		}
		if pass(group) {
			return true
		}
		if group == FilterGroupNone {
			return c.GroupLabel() == ""
		}
		return c.GroupLabel() == group
	}
	return false
}
