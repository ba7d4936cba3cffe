// Package domain contains core concepts of the greeting tracker.
// This file defines participant identities and how they are derived.
// No runtime, network, or transport logic should be added here.
package domain

import (
	"strconv"
	"strings"
)

// ParticipantKey is the canonical identity of a person in the group.
type ParticipantKey string

// UnknownParticipant is returned when neither a handle nor a numeric id is known.
// It never enters the roster or the greeted set.
const UnknownParticipant ParticipantKey = "unknown"

const idPrefix = "id:"

// Resolve derives the key of a participant.
// A non-empty handle wins and is kept verbatim (case-sensitive).
// Otherwise the numeric id is used as "id:<n>".
func Resolve(userID *int64, handle *string) ParticipantKey {
	if handle != nil && *handle != "" {
		return ParticipantKey(*handle)
	}
	if userID == nil {
		return UnknownParticipant
	}
	return ParticipantKey(idPrefix + strconv.FormatInt(*userID, 10))
}

func (k ParticipantKey) IsUnknown() bool {
	return k == UnknownParticipant
}

// IsHandle reports whether the key was derived from a display handle.
func (k ParticipantKey) IsHandle() bool {
	return !k.IsUnknown() && !strings.HasPrefix(string(k), idPrefix)
}

// Mention renders the key the way it is shown in group messages:
// "@handle" for handles, "id:<n>" left as is.
func (k ParticipantKey) Mention() string {
	if k.IsHandle() {
		return "@" + string(k)
	}
	return string(k)
}

func (k ParticipantKey) String() string {
	return string(k)
}

// Member is a chat member reported by the transport (e.g. a group administrator).
type Member struct {
	UserID int64
	Handle string
	IsBot  bool
}
