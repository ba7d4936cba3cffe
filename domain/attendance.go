package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// DayLayout is the format of AttendanceRecord.Day.
const DayLayout = "2006-01-02"

// AttendanceRecord is the closed state of one tracked day, kept in the journal.
type AttendanceRecord struct {
	ID       uuid.UUID `json:"id"`
	Day      string    `json:"day"`
	ClosedAt time.Time `json:"closed_at"`
	Roster   []string  `json:"roster"`
	Greeted  []string  `json:"greeted"`
	Missing  []string  `json:"missing"`
}

func NewAttendanceRecord(day time.Time, closedAt time.Time, s Snapshot) AttendanceRecord {
	return AttendanceRecord{
		ID:       uuid.New(),
		Day:      day.Format(DayLayout),
		ClosedAt: closedAt.UTC(),
		Roster:   toStrings(s.Roster),
		Greeted:  toStrings(s.Greeted),
		Missing:  toStrings(s.Missing),
	}
}

// Complete reports whether everyone on the roster greeted that day.
func (r AttendanceRecord) Complete() bool {
	return len(r.Missing) == 0
}

func toStrings(keys []ParticipantKey) []string {
	return lo.Map(keys, func(key ParticipantKey, _ int) string {
		return string(key)
	})
}
