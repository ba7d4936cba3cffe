package repositories

import (
	"encoding/json"
	"fmt"
	"liftotron/contract"
	"liftotron/domain"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

const attendancePrefix = "attendance:"

var _ contract.AttendanceJournal = AttendanceRepository{}

type AttendanceRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewAttendanceRepository(db *badger.DB, log *slog.Logger) AttendanceRepository {
	return AttendanceRepository{db: db, log: log}
}

// Append persists a closed day.
// The key is formatted as "attendance:{YYYY-MM-DD}:{closed_at_padded}:{uuid}" so that:
//  1. a prefix scan returns days in chronological order,
//  2. a day closed twice (restart, manual reset) keeps both records.
func (r AttendanceRepository) Append(record domain.AttendanceRecord) error {
	key := fmt.Sprintf("%s%s:%019d:%s",
		attendancePrefix,
		record.Day,
		record.ClosedAt.UnixNano(),
		record.ID,
	)
	bytes, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal attendance record: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// List returns the most recent records first, at most limit of them.
// A limit lower or equal to zero returns everything.
func (r AttendanceRepository) List(limit int) ([]domain.AttendanceRecord, error) {
	var records []domain.AttendanceRecord
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(attendancePrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts after the last possible key of the prefix
		for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(records) == limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d attendance records reached", limit))
				break
			}
			err := it.Item().Value(func(value []byte) error {
				var record domain.AttendanceRecord
				if err := json.Unmarshal(value, &record); err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
