package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// InboundEvent is a chat message as delivered by the transport.
// Every field is optional on the wire, the event is validated once at the boundary.
type InboundEvent struct {
	ChatID *int64  `validate:"required"`
	UserID *int64  `validate:"omitempty"`
	Handle *string `validate:"omitempty"`
	Text   *string `validate:"omitempty"`
}

func (e InboundEvent) Validate() error {
	return validate.Struct(e)
}

func (e InboundEvent) HasText() bool {
	return e.Text != nil
}

// IsGreeting reports whether the message is the daily greeting ("gm", any case).
func (e InboundEvent) IsGreeting() bool {
	if e.Text == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*e.Text), "gm")
}

// Command splits "/name@bot arguments" into its name and raw arguments.
// Arguments are everything after the first space, line breaks included.
func (e InboundEvent) Command() (name, args string, ok bool) {
	name, _, args, ok = e.parseCommand()
	return name, args, ok
}

// AddressedTo reports whether a command targets the given bot username.
// "/gm" targets every bot in the chat, "/gm@other_bot" only other_bot.
// Plain messages are addressed to everyone.
func (e InboundEvent) AddressedTo(username string) bool {
	_, target, _, ok := e.parseCommand()
	if !ok || target == "" {
		return true
	}
	return username != "" && strings.EqualFold(target, username)
}

func (e InboundEvent) parseCommand() (name, target, args string, ok bool) {
	if e.Text == nil || !strings.HasPrefix(*e.Text, "/") {
		return "", "", "", false
	}
	head, args, _ := strings.Cut(*e.Text, " ")
	head, _, _ = strings.Cut(head, "\n")
	name, target, _ = strings.Cut(strings.TrimPrefix(head, "/"), "@")
	if name == "" {
		return "", "", "", false
	}
	return strings.ToLower(name), target, args, true
}
