// internal/session/observer.go
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CartMerger is the slice of the cart manager the observer drives.
type CartMerger interface {
	MergeGuestCart(ctx context.Context, guestID string, userID uuid.UUID) error
	PublishEmptyCart(owner string)
}

// staleAfter matches the bearer token lifetime: past expiry a client
// cannot send an authenticated duplicate event, so the next sign-in is a
// genuine new edge.
const staleAfter = 24 * time.Hour

// Observer watches authentication transitions and fires the guest-cart
// merge exactly once per Anonymous -> Authenticated edge, tracked per user.
// A duplicate sign-in event for an already-authenticated user does not
// re-merge; a fresh sign-in after sign-out does, which is also how a failed
// merge gets its retry (the guest key survives a failure).
//
// Entries for users who never send SIGNED_OUT are swept once their tokens
// must have expired, so the map stays bounded in a long-lived process.
type Observer struct {
	mu            sync.Mutex
	authenticated map[uuid.UUID]time.Time
	carts         CartMerger
}

func NewObserver(carts CartMerger) *Observer {
	o := &Observer{
		authenticated: make(map[uuid.UUID]time.Time),
		carts:         carts,
	}

	go o.sweepStale()

	return o
}

func (o *Observer) sweepStale() {
	for {
		time.Sleep(time.Hour)
		o.pruneStale(staleAfter)
	}
}

func (o *Observer) pruneStale(maxAge time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for userID, lastSeen := range o.authenticated {
		if time.Since(lastSeen) > maxAge {
			delete(o.authenticated, userID)
		}
	}
}

// SignedIn handles an Anonymous -> Authenticated transition. The merge runs
// synchronously so the caller observes the merged cart; a merge failure is
// logged and the transition still completes (the guest cart stays intact
// for the next sign-in).
func (o *Observer) SignedIn(ctx context.Context, userID uuid.UUID, guestID string) {
	o.mu.Lock()
	_, already := o.authenticated[userID]
	o.authenticated[userID] = time.Now()
	o.mu.Unlock()

	if already || guestID == "" {
		return
	}

	if err := o.carts.MergeGuestCart(ctx, guestID, userID); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"guest_id": guestID,
			"error":    err,
		}).Error("Guest cart merge failed; guest cart retained for retry")
	}
}

// SignedOut handles an Authenticated -> Anonymous transition. The account
// rows stay persisted for the next sign-in; subscribers see an empty cart.
func (o *Observer) SignedOut(userID uuid.UUID) {
	o.mu.Lock()
	if _, ok := o.authenticated[userID]; !ok {
		o.mu.Unlock()
		return
	}
	delete(o.authenticated, userID)
	o.mu.Unlock()

	o.carts.PublishEmptyCart(userID.String())
}
