package domain

import (
	"slices"

	"github.com/samber/lo"
)

// Roster is the set of participants known to the bot:
// the static allow-list plus everyone observed in the chat.
// It is not safe for concurrent use on its own, the Tracker owns the lock.
type Roster struct {
	static map[ParticipantKey]struct{}
	active map[ParticipantKey]struct{}
}

// NewRoster builds the static part of the roster from numeric user ids.
// Static participants are always keyed "id:<n>" and never change afterwards.
func NewRoster(staticIDs []int64) *Roster {
	static := make(map[ParticipantKey]struct{}, len(staticIDs))
	for _, id := range staticIDs {
		static[Resolve(lo.ToPtr(id), nil)] = struct{}{}
	}
	return &Roster{
		static: static,
		active: make(map[ParticipantKey]struct{}),
	}
}

// RecordActivity marks a participant as active. Unknown participants are ignored.
func (r *Roster) RecordActivity(userID *int64, handle *string) ParticipantKey {
	key := Resolve(userID, handle)
	if !key.IsUnknown() {
		r.active[key] = struct{}{}
	}
	return key
}

// Participants returns the whole roster sorted lexicographically.
func (r *Roster) Participants() []ParticipantKey {
	keys := lo.Union(lo.Keys(r.static), lo.Keys(r.active))
	slices.Sort(keys)
	return keys
}

// Missing returns the sorted roster minus the given greeted set.
func (r *Roster) Missing(greeted map[ParticipantKey]struct{}) []ParticipantKey {
	return lo.Filter(r.Participants(), func(key ParticipantKey, _ int) bool {
		_, ok := greeted[key]
		return !ok
	})
}
