package telegram

import (
	"context"
	"fmt"
	"liftotron/domain"
	"liftotron/errors"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"
)

const pollTimeoutSeconds = 60

// EventHandler consumes inbound events, services.Bot in production.
type EventHandler interface {
	HandleEvent(ctx context.Context, evt domain.InboundEvent) error
}

// UpdatesWorker long-polls Telegram and hands every message to the handler.
// Updates are processed one at a time, in arrival order.
// The updates channel is opened once, so a restarted Run keeps reading the same
// stream; Stop closes it and must be called once, at shutdown.
type UpdatesWorker struct {
	api     BotAPI
	handler EventHandler
	log     *slog.Logger
	updates tgbotapi.UpdatesChannel
}

func NewUpdatesWorker(api BotAPI, handler EventHandler, log *slog.Logger) *UpdatesWorker {
	config := tgbotapi.NewUpdate(0)
	config.Timeout = pollTimeoutSeconds
	return &UpdatesWorker{
		api:     api,
		handler: handler,
		log:     log,
		updates: api.GetUpdatesChan(config),
	}
}

func (w *UpdatesWorker) Run(ctx context.Context) error {
	w.log.Info("Polling Telegram updates")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-w.updates:
			if !ok {
				return nil
			}
			evt, ok := ToInboundEvent(update)
			if !ok {
				continue
			}
			if err := w.dispatch(ctx, evt); err != nil {
				errors.Report(w.log, err,
					"chat_id", lo.FromPtr(evt.ChatID),
					"user_id", lo.FromPtr(evt.UserID))
			}
		}
	}
}

// Stop ends long polling.
func (w *UpdatesWorker) Stop() {
	w.api.StopReceivingUpdates()
}

// dispatch turns a handler panic into an error so one bad update does not stop polling.
func (w *UpdatesWorker) dispatch(ctx context.Context, evt domain.InboundEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
		}
	}()
	return w.handler.HandleEvent(ctx, evt)
}

// ToInboundEvent keeps only what the bot needs from an update.
// Updates without a message (edits, callbacks, member changes) are skipped.
func ToInboundEvent(update tgbotapi.Update) (domain.InboundEvent, bool) {
	msg := update.Message
	if msg == nil {
		return domain.InboundEvent{}, false
	}
	var evt domain.InboundEvent
	if msg.Chat != nil {
		evt.ChatID = lo.ToPtr(msg.Chat.ID)
	}
	if msg.From != nil {
		evt.UserID = lo.ToPtr(msg.From.ID)
		if msg.From.UserName != "" {
			evt.Handle = lo.ToPtr(msg.From.UserName)
		}
	}
	if msg.Text != "" {
		evt.Text = lo.ToPtr(msg.Text)
	}
	return evt, true
}
