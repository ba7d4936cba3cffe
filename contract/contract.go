//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"liftotron/domain"
	"reflect"
)

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// It is used for logging and supervision, avoiding manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Sender delivers outgoing messages to a chat.
// Media bodies are URLs.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendMarkdown(ctx context.Context, chatID int64, text string) error
	SendAnimation(ctx context.Context, chatID int64, url string) error
	SendPhoto(ctx context.Context, chatID int64, url string) error
}

// MemberDirectory lists members the transport is able to see.
type MemberDirectory interface {
	ChatAdministrators(ctx context.Context, chatID int64) ([]domain.Member, error)
}

// AttendanceJournal keeps one record per closed day.
type AttendanceJournal interface {
	Append(record domain.AttendanceRecord) error
	List(limit int) ([]domain.AttendanceRecord, error)
}
