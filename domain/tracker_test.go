package domain

import (
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestTracker_MissingParticipants_UsesStaticRoster(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker([]int64{1, 2, 3})

	tracker.RecordGreeting(lo.ToPtr[int64](1), nil)
	tracker.RecordGreeting(lo.ToPtr[int64](2), nil)

	req.Equal([]string{"id:3"}, tracker.MissingParticipants())
}

func TestTracker_MissingParticipants_UsesActiveParticipantsAndHandles(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker(nil)

	tracker.RecordActivity(lo.ToPtr[int64](10), lo.ToPtr("alice"))
	tracker.RecordActivity(lo.ToPtr[int64](20), lo.ToPtr("bob"))
	tracker.RecordGreeting(lo.ToPtr[int64](10), lo.ToPtr("alice"))

	req.Equal([]string{"bob"}, tracker.MissingParticipants())
}

func TestTracker_NoGreeting_EveryoneIsMissing(t *testing.T) {
	req := require.New(t)
	// Given static ids and handles observed in the chat
	tracker := NewTracker([]int64{42, 7})
	tracker.RecordActivity(lo.ToPtr[int64](100), lo.ToPtr("zoe"))
	tracker.RecordActivity(lo.ToPtr[int64](101), lo.ToPtr("Bea"))

	// Then the whole union is missing, sorted by key
	req.Equal([]string{"Bea", "id:42", "id:7", "zoe"}, tracker.MissingParticipants())
}

func TestTracker_RecordGreeting_IsIdempotent(t *testing.T) {
	req := require.New(t)
	once := NewTracker([]int64{1, 2})
	twice := NewTracker([]int64{1, 2})

	once.RecordGreeting(lo.ToPtr[int64](1), nil)
	twice.RecordGreeting(lo.ToPtr[int64](1), nil)
	twice.RecordGreeting(lo.ToPtr[int64](1), nil)

	req.Equal(once.MissingParticipants(), twice.MissingParticipants())
	req.Equal(once.Snapshot(), twice.Snapshot())
}

func TestTracker_ResetDaily_RestoresFullRoster(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker([]int64{1, 2})
	tracker.RecordActivity(nil, lo.ToPtr("alice"))
	tracker.RecordGreeting(lo.ToPtr[int64](1), nil)
	tracker.RecordGreeting(lo.ToPtr[int64](3), lo.ToPtr("carol"))
	rosterBefore := tracker.Participants()

	tracker.ResetDaily()

	req.Equal(rosterBefore, tracker.Participants())
	req.Equal([]string{"alice", "carol", "id:1", "id:2"}, tracker.MissingParticipants())

	// Resetting twice changes nothing
	tracker.ResetDaily()
	req.Equal([]string{"alice", "carol", "id:1", "id:2"}, tracker.MissingParticipants())
}

func TestTracker_GreetingImpliesActivity(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker(nil)

	tracker.RecordGreeting(lo.ToPtr[int64](5), lo.ToPtr("bob"))

	req.NotContains(tracker.MissingParticipants(), "bob")
	req.Contains(tracker.Participants(), ParticipantKey("bob"))
}

func TestTracker_UnknownParticipant_IsNeverTracked(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker([]int64{1})

	req.Equal(UnknownParticipant, tracker.RecordActivity(nil, nil))
	req.Equal(UnknownParticipant, tracker.RecordGreeting(nil, lo.ToPtr("")))

	snapshot := tracker.Snapshot()
	req.NotContains(snapshot.Roster, UnknownParticipant)
	req.NotContains(snapshot.Greeted, UnknownParticipant)
	req.NotContains(snapshot.Missing, UnknownParticipant)
	req.Equal([]string{"id:1"}, tracker.MissingParticipants())
}

func TestTracker_EndToEndScenario(t *testing.T) {
	req := require.New(t)
	// Given ids 1 and 2 from the allow-list and alice seen in the chat
	tracker := NewTracker([]int64{1, 2})
	tracker.RecordActivity(lo.ToPtr[int64](99), lo.ToPtr("alice"))

	// When id 1 and alice greet
	tracker.RecordGreeting(lo.ToPtr[int64](1), nil)
	tracker.RecordGreeting(lo.ToPtr[int64](99), lo.ToPtr("alice"))

	// Then only id 2 is missing
	req.Equal([]string{"id:2"}, tracker.MissingParticipants())

	// And after the reset everyone is missing again
	tracker.ResetDaily()
	req.Equal([]string{"alice", "id:1", "id:2"}, tracker.MissingParticipants())
}

func TestTracker_CloseDay_SnapshotsThenResets(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker([]int64{1, 2})
	tracker.RecordGreeting(lo.ToPtr[int64](2), nil)

	snapshot := tracker.CloseDay()

	req.Equal([]ParticipantKey{"id:1", "id:2"}, snapshot.Roster)
	req.Equal([]ParticipantKey{"id:2"}, snapshot.Greeted)
	req.Equal([]ParticipantKey{"id:1"}, snapshot.Missing)
	req.Equal([]string{"id:1", "id:2"}, tracker.MissingParticipants())
}

func TestTracker_ConcurrentGreetingsAndResets_NoLostUpdates(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker(nil)
	const participants = 200

	var wg sync.WaitGroup
	for i := range participants {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			tracker.RecordGreeting(lo.ToPtr(id), nil)
		}(int64(i))
	}
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.ResetDaily()
			_ = tracker.MissingParticipants()
		}()
	}
	wg.Wait()

	// Roster growth is never undone by a reset
	req.Len(tracker.Participants(), participants)

	// Every greeted participant belongs to the roster
	snapshot := tracker.Snapshot()
	req.Subset(snapshot.Roster, snapshot.Greeted)
	req.Len(snapshot.Missing, participants-len(snapshot.Greeted))
}
