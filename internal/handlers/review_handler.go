package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/helpers"
	"github.com/mdzoubir/eventconnect-backend/internal/middleware"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/repository"
)

type ReviewHandler struct {
	store *repository.Store
}

func NewReviewHandler(store *repository.Store) *ReviewHandler {
	return &ReviewHandler{store: store}
}

type ReviewRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
	Rating  int       `json:"rating" binding:"required"`
	Comment string    `json:"comment"`
}

// CreateReview requires an attending RSVP for the event; spectators cannot
// rate events they never reserved.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	eventID := req.EventID
	if req.Rating < 1 || req.Rating > 5 {
		helpers.RespondWithDomainError(c, domain.Validation("rating", "must be between 1 and 5"))
		return
	}

	if _, err := h.store.EventDetail(c.Request.Context(), eventID); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	attending, err := h.store.HasAttendingRSVP(c.Request.Context(), actor.ID, eventID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}
	if !attending {
		helpers.RespondWithDomainError(c, domain.Validation("event", "only attendees with an attending RSVP can review this event"))
		return
	}

	review := models.Review{
		UserID:  actor.ID,
		EventID: eventID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := h.store.CreateReview(c.Request.Context(), &review); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) EventReviews(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	reviews, err := h.store.ReviewsByEvent(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
