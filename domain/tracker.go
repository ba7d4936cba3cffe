package domain

import (
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Tracker records who sent today's greeting and who is still missing.
// It has no notion of time: the daily reset is driven by the scheduler.
// Timer callbacks and inbound messages run on different goroutines,
// so every operation goes through the same mutex.
type Tracker struct {
	mu      sync.Mutex
	roster  *Roster
	greeted map[ParticipantKey]struct{}
}

// Snapshot is a consistent copy of the tracker state, all slices sorted.
type Snapshot struct {
	Roster  []ParticipantKey
	Greeted []ParticipantKey
	Missing []ParticipantKey
}

func NewTracker(staticIDs []int64) *Tracker {
	return &Tracker{
		roster:  NewRoster(staticIDs),
		greeted: make(map[ParticipantKey]struct{}),
	}
}

// RecordActivity adds the participant to the roster.
func (t *Tracker) RecordActivity(userID *int64, handle *string) ParticipantKey {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.roster.RecordActivity(userID, handle)
}

// RecordGreeting marks the participant as greeted for today.
// A greeting also counts as activity.
func (t *Tracker) RecordGreeting(userID *int64, handle *string) ParticipantKey {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := t.roster.RecordActivity(userID, handle)
	if !key.IsUnknown() {
		t.greeted[key] = struct{}{}
	}
	return key
}

// ResetDaily clears the greeted set. The roster is left untouched.
func (t *Tracker) ResetDaily() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.greeted)
}

// MissingParticipants returns the sorted keys of the roster that did not greet yet.
func (t *Tracker) MissingParticipants() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return lo.Map(t.roster.Missing(t.greeted), func(key ParticipantKey, _ int) string {
		return string(key)
	})
}

// Participants returns the sorted roster.
func (t *Tracker) Participants() []ParticipantKey {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.roster.Participants()
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

// CloseDay takes a snapshot of the ending day and resets it in one step,
// so a concurrent greeting is counted either before or after the reset.
func (t *Tracker) CloseDay() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.snapshot()
	clear(t.greeted)
	return s
}

func (t *Tracker) snapshot() Snapshot {
	greeted := lo.Keys(t.greeted)
	slices.Sort(greeted)
	return Snapshot{
		Roster:  t.roster.Participants(),
		Greeted: greeted,
		Missing: t.roster.Missing(t.greeted),
	}
}
