package auth

import "liftotron/domain"

// Authorizer gates inbound events on the chat and user allow-lists.
type Authorizer struct {
	allowedChats map[int64]struct{}
	allowedUsers map[int64]struct{}
}

// NewAuthorizer builds an Authorizer. A nil allowedUsers accepts every user
// of an allowed chat.
func NewAuthorizer(allowedChats, allowedUsers map[int64]struct{}) Authorizer {
	return Authorizer{allowedChats: allowedChats, allowedUsers: allowedUsers}
}

func (a Authorizer) IsAuthorized(evt domain.InboundEvent) bool {
	if evt.ChatID == nil {
		return false
	}
	if _, ok := a.allowedChats[*evt.ChatID]; !ok {
		return false
	}
	if a.allowedUsers == nil {
		return true
	}
	if evt.UserID == nil {
		return false
	}
	_, ok := a.allowedUsers[*evt.UserID]
	return ok
}
