package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
)

var (
	ErrWorkerPanic  = fmt.Errorf("worker panic")
	ErrConfig       = fmt.Errorf("invalid configuration")
	ErrUnauthorized = fmt.Errorf("unauthorized chat or user")
	ErrInvalidEvent = fmt.Errorf("invalid inbound event")
	ErrDelivery     = fmt.Errorf("message delivery failed")
	ErrFormatting   = fmt.Errorf("message formatting rejected")
)

// Kind classifies an error for the logging policy.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfig
	KindUnauthorized
	KindDelivery
	KindFormatting
	KindInvalidEvent
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindUnauthorized:
		return "unauthorized"
	case KindDelivery:
		return "delivery"
	case KindFormatting:
		return "formatting"
	case KindInvalidEvent:
		return "invalid_event"
	default:
		return "unknown"
	}
}

// Error carries the kind of failure and the operation that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of err, looking at *Error first and then at the sentinels.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	switch {
	case stderrors.Is(err, ErrConfig):
		return KindConfig
	case stderrors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case stderrors.Is(err, ErrFormatting):
		return KindFormatting
	case stderrors.Is(err, ErrDelivery):
		return KindDelivery
	case stderrors.Is(err, ErrInvalidEvent):
		return KindInvalidEvent
	default:
		return KindUnknown
	}
}

// Report logs err according to its kind. It is the only place deciding
// how loud a failure is, callers never log and report the same error.
func Report(log *slog.Logger, err error, attrs ...any) {
	if err == nil {
		log.Error("Error handler invoked without error context", attrs...)
		return
	}
	attrs = append(attrs, "kind", KindOf(err).String(), "error", err)
	switch KindOf(err) {
	case KindConfig:
		log.Error("Configuration error", attrs...)
	case KindUnauthorized:
		log.Warn("Unauthorized request blocked", attrs...)
	case KindFormatting:
		log.Warn("Message formatting rejected", attrs...)
	case KindInvalidEvent:
		log.Warn("Invalid inbound event dropped", attrs...)
	case KindDelivery:
		log.Error("Telegram API error", attrs...)
	default:
		log.Error("Unhandled error", attrs...)
	}
}
