// internal/services/merge.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shineline/storefront-backend/internal/session"
)

// MergeGuestCart folds the guest cart into the user's account cart at
// sign-in. Per-entry upserts run sequentially; the first failure aborts the
// loop and the guest cart is NOT cleared, so the next sign-in transition
// can retry without losing items. Only a fully successful pass clears the
// guest key. An empty guest cart is a no-op: no account mutation, no clear.
func (s *CartService) MergeGuestCart(ctx context.Context, guestID string, userID uuid.UUID) error {
	entries, err := s.guest.List(ctx, guestID)
	if err != nil {
		return fmt.Errorf("failed to read guest cart: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	owner := userID.String()
	for i, e := range entries {
		if err := s.account.Add(ctx, owner, e, s.mode); err != nil {
			return fmt.Errorf("merge aborted at entry %d of %d: %w", i+1, len(entries), err)
		}
	}

	if err := s.guest.Clear(ctx, guestID); err != nil {
		// The account writes landed but the guest key survived; report the
		// pass as failed so the next sign-in retries instead of leaving two
		// live copies around.
		return fmt.Errorf("merged cart could not be cleared: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"guest_id": guestID,
		"user_id":  userID,
		"entries":  len(entries),
	}).Info("Guest cart merged into account")

	s.republish(ctx, session.Authenticated(userID))
	return nil
}
