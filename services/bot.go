package services

import (
	"context"
	"fmt"
	"liftotron/auth"
	"liftotron/contract"
	"liftotron/domain"
	"liftotron/errors"
	"liftotron/format"
	"liftotron/observability"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

type BotConfig struct {
	// Username of the bot, commands addressed to another bot are ignored
	Username           string
	GroupChatID        int64
	Location           *time.Location
	SyncAdministrators bool
}

// Bot reacts to inbound chat events and runs the scheduled jobs.
// It owns no tracker state: the tracker is built once in main and shared.
type Bot struct {
	log        *slog.Logger
	tracker    *domain.Tracker
	authorizer auth.Authorizer
	sender     contract.Sender
	directory  contract.MemberDirectory
	journal    contract.AttendanceJournal
	config     BotConfig
	now        func() time.Time

	mu       sync.Mutex
	openedAt time.Time // start of the period closed by the next reset
}

// NewBot wires the bot. directory and journal are optional.
func NewBot(
	log *slog.Logger,
	tracker *domain.Tracker,
	authorizer auth.Authorizer,
	sender contract.Sender,
	directory contract.MemberDirectory,
	journal contract.AttendanceJournal,
	config BotConfig,
) *Bot {
	if config.Location == nil {
		config.Location = time.Local
	}
	b := &Bot{
		log:        log,
		tracker:    tracker,
		authorizer: authorizer,
		sender:     sender,
		directory:  directory,
		journal:    journal,
		config:     config,
		now:        time.Now,
	}
	b.openedAt = b.now()
	return b
}

// WithClock replaces the wall clock, used by tests to label journal days.
func (b *Bot) WithClock(now func() time.Time) *Bot {
	b.now = now
	b.openedAt = now()
	return b
}

// HandleEvent processes one inbound message. Unauthorized and invalid events
// are dropped and reported through the returned error, never answered.
func (b *Bot) HandleEvent(ctx context.Context, evt domain.InboundEvent) error {
	if err := evt.Validate(); err != nil {
		observability.InboundEvents.WithLabelValues(observability.OutcomeInvalid).Inc()
		return fmt.Errorf("%w: %v", errors.ErrInvalidEvent, err)
	}
	if !b.authorizer.IsAuthorized(evt) {
		observability.InboundEvents.WithLabelValues(observability.OutcomeUnauthorized).Inc()
		return errors.ErrUnauthorized
	}

	if !evt.AddressedTo(b.config.Username) {
		observability.InboundEvents.WithLabelValues(observability.OutcomeIgnored).Inc()
		b.log.Debug("Ignoring command addressed to another bot", "text", lo.FromPtr(evt.Text))
		return nil
	}
	if name, args, ok := evt.Command(); ok {
		observability.InboundEvents.WithLabelValues(observability.OutcomeCommand).Inc()
		return b.handleCommand(ctx, *evt.ChatID, name, args)
	}
	if !evt.HasText() {
		return nil
	}

	b.tracker.RecordActivity(evt.UserID, evt.Handle)
	outcome := observability.OutcomeHandled
	if evt.IsGreeting() {
		key := b.tracker.RecordGreeting(evt.UserID, evt.Handle)
		b.log.Info("GM recorded", "participant", key)
		outcome = observability.OutcomeGreeting
	}
	observability.InboundEvents.WithLabelValues(outcome).Inc()
	b.observe()
	return nil
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, name, args string) error {
	switch name {
	case "start":
		return b.sender.SendText(ctx, chatID, startText)
	case "gm":
		return b.SendGreeting(ctx)
	case "lift":
		return b.lift(ctx, chatID, args)
	case "rollins":
		return b.sender.SendText(ctx, b.config.GroupChatID, rollinsQuote)
	case "nako":
		return b.sender.SendText(ctx, chatID, nakoPoem)
	default:
		b.log.Debug("Ignoring unknown command", "command", name)
		return nil
	}
}

// lift relays the text to the group as MarkdownV2 and falls back to plain
// text when Telegram rejects the formatting.
func (b *Bot) lift(ctx context.Context, chatID int64, args string) error {
	text := strings.TrimSpace(args)
	if text == "" {
		return b.sender.SendText(ctx, chatID, liftUsage)
	}
	err := b.sender.SendMarkdown(ctx, b.config.GroupChatID, format.LiftPayload(text))
	if errors.KindOf(err) != errors.KindFormatting {
		return err
	}
	b.log.Warn("MarkdownV2 parsing failed. Falling back to plain text", "error", err)
	return b.sender.SendText(ctx, b.config.GroupChatID, text)
}

// SendGreeting posts the morning greeting and its animation.
func (b *Bot) SendGreeting(ctx context.Context) error {
	if err := b.sender.SendText(ctx, b.config.GroupChatID, greetingText); err != nil {
		return err
	}
	return b.sender.SendAnimation(ctx, b.config.GroupChatID, greetingGIF)
}

// ResetDaily closes the current day: the greeted set is cleared and the
// closed day is appended to the journal. A journal failure does not undo the reset.
func (b *Bot) ResetDaily(_ context.Context) error {
	snapshot := b.tracker.CloseDay()

	b.mu.Lock()
	closedAt := b.now()
	record := domain.NewAttendanceRecord(b.openedAt.In(b.config.Location), closedAt, snapshot)
	b.openedAt = closedAt
	b.mu.Unlock()

	b.log.Info("Daily GM state reset",
		"day", record.Day,
		"greeted", len(record.Greeted),
		"missing", len(record.Missing))
	b.observe()

	if b.journal == nil {
		return nil
	}
	if err := b.journal.Append(record); err != nil {
		return fmt.Errorf("journal append for %s: %w", record.Day, err)
	}
	return nil
}

// CheckAttendance is the check-in deadline: thank the group when everyone
// greeted, otherwise name the missing participants.
func (b *Bot) CheckAttendance(ctx context.Context) error {
	b.syncAdministrators(ctx)

	missing := lo.Map(b.tracker.MissingParticipants(), func(key string, _ int) domain.ParticipantKey {
		return domain.ParticipantKey(key)
	})
	b.log.Info("Checking GM attendance", "missing", len(missing))

	if len(missing) == 0 {
		if err := b.sender.SendText(ctx, b.config.GroupChatID, allGreetedText); err != nil {
			return err
		}
		return b.sender.SendPhoto(ctx, b.config.GroupChatID, allGreetedPhoto)
	}
	return b.sender.SendText(ctx, b.config.GroupChatID, missingPrefix+format.Mentions(missing, ", "))
}

// SendPoem posts the evening poem and its picture.
func (b *Bot) SendPoem(ctx context.Context) error {
	if err := b.sender.SendText(ctx, b.config.GroupChatID, poem); err != nil {
		return err
	}
	return b.sender.SendPhoto(ctx, b.config.GroupChatID, poemPhoto)
}

// MentionEveryone is the weekly check-in reminder addressed to the whole roster.
func (b *Bot) MentionEveryone(ctx context.Context) error {
	b.syncAdministrators(ctx)

	text := weeklyText
	if mentions := format.Mentions(b.tracker.Participants(), " "); mentions != "" {
		text += " " + mentions
	}
	return b.sender.SendText(ctx, b.config.GroupChatID, text)
}

// syncAdministrators adds the group administrators to the roster.
// Failures are logged, the caller continues with the roster it has.
func (b *Bot) syncAdministrators(ctx context.Context) {
	if !b.config.SyncAdministrators || b.directory == nil {
		return
	}
	members, err := b.directory.ChatAdministrators(ctx, b.config.GroupChatID)
	if err != nil {
		errors.Report(b.log, err, "op", "sync_administrators")
		return
	}
	for _, member := range members {
		if member.IsBot {
			continue
		}
		b.tracker.RecordActivity(lo.ToPtr(member.UserID), lo.ToPtr(member.Handle))
	}
	b.observe()
}

func (b *Bot) observe() {
	snapshot := b.tracker.Snapshot()
	observability.ObserveAttendance(len(snapshot.Roster), len(snapshot.Greeted))
}
