package domain

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestResolve_IdentityPrecedence(t *testing.T) {
	req := require.New(t)

	req.Equal(ParticipantKey("alice"), Resolve(lo.ToPtr[int64](7), lo.ToPtr("alice")))
	req.Equal(ParticipantKey("id:7"), Resolve(lo.ToPtr[int64](7), nil))
	req.Equal(ParticipantKey("id:7"), Resolve(lo.ToPtr[int64](7), lo.ToPtr("")))
	req.Equal(UnknownParticipant, Resolve(nil, nil))
}

func TestResolve_HandleIsCaseSensitive(t *testing.T) {
	req := require.New(t)

	req.NotEqual(Resolve(nil, lo.ToPtr("Alice")), Resolve(nil, lo.ToPtr("alice")))
}

func TestParticipantKey_Mention(t *testing.T) {
	req := require.New(t)

	req.Equal("@alice", ParticipantKey("alice").Mention())
	req.Equal("id:12", ParticipantKey("id:12").Mention())
	req.Equal("unknown", UnknownParticipant.Mention())
}
