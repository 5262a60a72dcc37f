package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/helpers"
	"github.com/mdzoubir/eventconnect-backend/internal/middleware"
	"github.com/mdzoubir/eventconnect-backend/internal/policy"
	"github.com/mdzoubir/eventconnect-backend/internal/repository"
	"github.com/mdzoubir/eventconnect-backend/internal/services"
)

type WaitlistHandler struct {
	inventory *services.InventoryService
	store     *repository.Store
}

func NewWaitlistHandler(inventory *services.InventoryService, store *repository.Store) *WaitlistHandler {
	return &WaitlistHandler{inventory: inventory, store: store}
}

func (h *WaitlistHandler) Join(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	entry, err := h.inventory.JoinWaitlist(c.Request.Context(), eventID, actor.ID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *WaitlistHandler) EventWaitlist(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	event, err := h.store.EventAnyByID(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}
	if !policy.Allowed(actor, policy.ActionRecordRead, policy.Resource{EventOwnerID: event.CreatorID}) {
		helpers.RespondWithDomainError(c, domain.ErrForbidden)
		return
	}

	entries, err := h.store.WaitlistByEvent(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"waitlist": entries})
}
