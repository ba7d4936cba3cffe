// Package telegram adapts the Telegram Bot API to the bot's ports.
package telegram

import (
	"context"
	stderrors "errors"
	"liftotron/contract"
	"liftotron/domain"
	"liftotron/errors"
	"liftotron/observability"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"
	"golang.org/x/time/rate"
)

// BotAPI is the subset of *tgbotapi.BotAPI used by the adapter.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetChatAdministrators(config tgbotapi.ChatAdministratorsConfig) ([]tgbotapi.ChatMember, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

var (
	_ contract.Sender          = (*Sender)(nil)
	_ contract.MemberDirectory = (*Sender)(nil)
)

// Sender delivers messages through the Bot API, throttled by a token bucket
// so bursts (check-in nag + photo, weekly mentions) stay under Telegram's group limits.
type Sender struct {
	api     BotAPI
	limiter *rate.Limiter
	log     *slog.Logger
}

func NewSender(api BotAPI, log *slog.Logger, perSecond float64, burst int) *Sender {
	return &Sender{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		log:     log,
	}
}

func (s *Sender) SendText(ctx context.Context, chatID int64, text string) error {
	return s.send(ctx, "text", tgbotapi.NewMessage(chatID, text))
}

func (s *Sender) SendMarkdown(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return s.send(ctx, "markdown", msg)
}

func (s *Sender) SendAnimation(ctx context.Context, chatID int64, url string) error {
	return s.send(ctx, "animation", tgbotapi.NewAnimation(chatID, tgbotapi.FileURL(url)))
}

func (s *Sender) SendPhoto(ctx context.Context, chatID int64, url string) error {
	return s.send(ctx, "photo", tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(url)))
}

func (s *Sender) ChatAdministrators(ctx context.Context, chatID int64) ([]domain.Member, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, errors.New(errors.KindDelivery, "get_chat_administrators", err)
	}
	members, err := s.api.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return nil, classify("get_chat_administrators", err)
	}
	return lo.FilterMap(members, func(m tgbotapi.ChatMember, _ int) (domain.Member, bool) {
		if m.User == nil {
			return domain.Member{}, false
		}
		return domain.Member{UserID: m.User.ID, Handle: m.User.UserName, IsBot: m.User.IsBot}, true
	}), nil
}

func (s *Sender) send(ctx context.Context, kind string, c tgbotapi.Chattable) error {
	op := "send_" + kind
	if err := s.limiter.Wait(ctx); err != nil {
		observability.OutboundMessages.WithLabelValues(kind, observability.StatusError).Inc()
		return errors.New(errors.KindDelivery, op, err)
	}
	if _, err := s.api.Send(c); err != nil {
		observability.OutboundMessages.WithLabelValues(kind, observability.StatusError).Inc()
		return classify(op, err)
	}
	observability.OutboundMessages.WithLabelValues(kind, observability.StatusOK).Inc()
	s.log.Debug("Message delivered", "kind", kind)
	return nil
}

// classify maps Bot API failures to error kinds: a 400 means Telegram refused
// the payload (usually MarkdownV2 entities), anything else is a delivery problem.
func classify(op string, err error) error {
	var apiErr *tgbotapi.Error
	if stderrors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
		return errors.New(errors.KindFormatting, op, err)
	}
	return errors.New(errors.KindDelivery, op, err)
}
