// internal/handlers/session.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shineline/storefront-backend/internal/session"
	"github.com/shineline/storefront-backend/internal/utils"
)

// SessionHandler ingests authentication transition events from the auth
// provider's client. Sign-in events carry the bearer token of the freshly
// authenticated user plus the guest cart header, which is everything the
// merge needs.
type SessionHandler struct {
	observer *session.Observer
}

func NewSessionHandler(observer *session.Observer) *SessionHandler {
	return &SessionHandler{
		observer: observer,
	}
}

type SessionEventRequest struct {
	Event string `json:"event" validate:"required,oneof=SIGNED_IN SIGNED_OUT"`
}

// POST /session/events
func (h *SessionHandler) HandleEvent(c *gin.Context) {
	var req SessionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	userID, authenticated := utils.GetUserIDFromContext(c)

	switch req.Event {
	case "SIGNED_IN":
		if !authenticated {
			utils.BadRequestResponse(c, "SIGNED_IN event requires a bearer token", nil)
			return
		}
		guestID := c.GetHeader(GuestCartHeader)
		h.observer.SignedIn(c.Request.Context(), userID, guestID)
	case "SIGNED_OUT":
		if authenticated {
			h.observer.SignedOut(userID)
		}
	}

	utils.SuccessResponse(c, gin.H{"event": req.Event})
}
