package repositories

import (
	"liftotron/domain"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func record(day time.Time, missing ...domain.ParticipantKey) domain.AttendanceRecord {
	return domain.NewAttendanceRecord(day, day.Add(24*time.Hour), domain.Snapshot{
		Roster:  []domain.ParticipantKey{"alice", "id:1"},
		Greeted: []domain.ParticipantKey{"alice"},
		Missing: missing,
	})
}

func Test_Append_And_List_NewestFirst(t *testing.T) {
	req := require.New(t)
	repository := NewAttendanceRepository(openDB(t), slog.Default())
	start := time.Date(2026, time.October, 10, 0, 0, 0, 0, time.UTC)

	records := []domain.AttendanceRecord{
		record(start, "id:1"),
		record(start.AddDate(0, 0, 1)),
		record(start.AddDate(0, 0, 2), "id:1"),
	}
	for _, r := range records {
		req.NoError(repository.Append(r))
	}

	fetched, err := repository.List(0)
	req.NoError(err)
	req.Len(fetched, 3)
	req.Equal("2026-10-12", fetched[0].Day)
	req.Equal("2026-10-11", fetched[1].Day)
	req.Equal("2026-10-10", fetched[2].Day)
	req.Equal(records[2].ID, fetched[0].ID)
	req.Equal([]string{"id:1"}, fetched[0].Missing)
	req.True(fetched[1].Complete())
	req.True(records[0].ClosedAt.Equal(fetched[2].ClosedAt))
}

func Test_List_WithLimit(t *testing.T) {
	req := require.New(t)
	repository := NewAttendanceRepository(openDB(t), slog.Default())
	start := time.Date(2026, time.October, 10, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		req.NoError(repository.Append(record(start.AddDate(0, 0, i))))
	}

	fetched, err := repository.List(2)

	req.NoError(err)
	req.Len(fetched, 2)
	req.Equal("2026-10-14", fetched[0].Day)
}

func Test_List_Empty(t *testing.T) {
	req := require.New(t)
	repository := NewAttendanceRepository(openDB(t), slog.Default())

	fetched, err := repository.List(10)

	req.NoError(err)
	req.Empty(fetched)
}
