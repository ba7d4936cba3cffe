package domain

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestInboundEvent_Validate(t *testing.T) {
	req := require.New(t)

	req.NoError(InboundEvent{ChatID: lo.ToPtr[int64](-1001)}.Validate())
	req.Error(InboundEvent{UserID: lo.ToPtr[int64](1), Text: lo.ToPtr("gm")}.Validate())
}

func TestInboundEvent_IsGreeting(t *testing.T) {
	req := require.New(t)

	for _, text := range []string{"gm", "GM", " Gm \n"} {
		req.True(InboundEvent{Text: lo.ToPtr(text)}.IsGreeting(), text)
	}
	for _, text := range []string{"gm everyone", "", "g m"} {
		req.False(InboundEvent{Text: lo.ToPtr(text)}.IsGreeting(), text)
	}
	req.False(InboundEvent{}.IsGreeting())
}

func TestInboundEvent_Command(t *testing.T) {
	req := require.New(t)

	name, args, ok := InboundEvent{Text: lo.ToPtr("/lift Line 1\nLine 2")}.Command()
	req.True(ok)
	req.Equal("lift", name)
	req.Equal("Line 1\nLine 2", args)

	name, args, ok = InboundEvent{Text: lo.ToPtr("/Start@liftotron_bot")}.Command()
	req.True(ok)
	req.Equal("start", name)
	req.Empty(args)

	_, _, ok = InboundEvent{Text: lo.ToPtr("gm")}.Command()
	req.False(ok)

	_, _, ok = InboundEvent{Text: lo.ToPtr("/")}.Command()
	req.False(ok)
}

func TestInboundEvent_AddressedTo(t *testing.T) {
	req := require.New(t)
	const bot = "liftotron_bot"

	req.True(InboundEvent{Text: lo.ToPtr("/gm")}.AddressedTo(bot))
	req.True(InboundEvent{Text: lo.ToPtr("/gm@liftotron_bot")}.AddressedTo(bot))
	req.True(InboundEvent{Text: lo.ToPtr("/lift@LiftoTron_Bot Beine")}.AddressedTo(bot))
	req.True(InboundEvent{Text: lo.ToPtr("gm")}.AddressedTo(bot))

	req.False(InboundEvent{Text: lo.ToPtr("/gm@some_other_bot")}.AddressedTo(bot))
	req.False(InboundEvent{Text: lo.ToPtr("/lift@some_other_bot x")}.AddressedTo(bot))
	req.False(InboundEvent{Text: lo.ToPtr("/gm@liftotron_bot")}.AddressedTo(""))
}
