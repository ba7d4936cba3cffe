// Package format renders outgoing chat text.
package format

import (
	"liftotron/domain"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"
)

// MarkdownV2SpecialChars must be escaped with a backslash in MarkdownV2 text.
const MarkdownV2SpecialChars = "_*[]()~`>#+-=|{}.!"

func EscapeMarkdownV2(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, text)
}

// LiftPayload escapes text and keeps its line breaks visible in MarkdownV2.
func LiftPayload(text string) string {
	return strings.ReplaceAll(EscapeMarkdownV2(text), "\n", "  \n")
}

// Mentions joins participant mentions with sep ("@alice", "id:2", ...).
func Mentions(keys []domain.ParticipantKey, sep string) string {
	return strings.Join(lo.Map(keys, func(key domain.ParticipantKey, _ int) string {
		return key.Mention()
	}), sep)
}
