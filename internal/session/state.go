// internal/session/state.go
package session

import "github.com/google/uuid"

// State is the per-request authentication snapshot the cart manager selects
// its store variant from. A request is either authenticated (UserID set) or
// anonymous (GuestID carries the device-scoped cart key); it is never both.
type State struct {
	UserID  *uuid.UUID
	GuestID string
}

func Anonymous(guestID string) State {
	return State{GuestID: guestID}
}

func Authenticated(userID uuid.UUID) State {
	return State{UserID: &userID}
}

func (s State) IsAuthenticated() bool {
	return s.UserID != nil
}

// Owner returns the store-level owner key for this session.
func (s State) Owner() string {
	if s.UserID != nil {
		return s.UserID.String()
	}
	return s.GuestID
}
