package main

import (
	"bytes"
	"liftotron/domain"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func records() []domain.AttendanceRecord {
	return []domain.AttendanceRecord{
		{
			Day:      "2026-10-18",
			ClosedAt: time.Date(2026, time.October, 18, 22, 0, 0, 0, time.UTC),
			Roster:   []string{"alice", "id:2"},
			Greeted:  []string{"alice"},
			Missing:  []string{"id:2"},
		},
		{
			Day:      "2026-10-17",
			ClosedAt: time.Date(2026, time.October, 17, 22, 0, 0, 0, time.UTC),
			Roster:   []string{"alice", "bob", "id:2"},
			Greeted:  []string{"alice", "bob", "id:2"},
		},
	}
}

func TestSummarize(t *testing.T) {
	req := require.New(t)

	stats := Summarize(records())

	req.Equal([]ParticipantStat{
		{Key: "alice", Greeted: 2, Expected: 2},
		{Key: "bob", Greeted: 1, Expected: 1},
		{Key: "id:2", Greeted: 1, Expected: 2},
	}, stats)
	req.InDelta(0.5, stats[2].Rate(), 0.0001)
}

func TestSummarize_Empty(t *testing.T) {
	require.Empty(t, Summarize(nil))
	require.Zero(t, ParticipantStat{}.Rate())
}

func TestRenderRecords(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	RenderRecords(&buf, records(), false)

	out := buf.String()
	req.Contains(out, "2026-10-18")
	req.Contains(out, "1/2")
	req.Contains(out, "id:2")
	req.Contains(out, "3/3")
}

func TestRenderStats(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	RenderStats(&buf, Summarize(records()), 2)

	out := buf.String()
	req.Contains(out, "alice")
	req.Contains(out, "100%")
	req.Contains(out, "50%")
	req.Contains(strings.ToLower(out), "2 days")
}
