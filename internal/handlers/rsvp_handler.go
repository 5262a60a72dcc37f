package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/mdzoubir/eventconnect-backend/internal/clock"
	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/helpers"
	"github.com/mdzoubir/eventconnect-backend/internal/middleware"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/policy"
	"github.com/mdzoubir/eventconnect-backend/internal/repository"
	"github.com/mdzoubir/eventconnect-backend/internal/services"
)

type RSVPHandler struct {
	inventory *services.InventoryService
	store     *repository.Store
	clock     clock.Clock
}

func NewRSVPHandler(inventory *services.InventoryService, store *repository.Store, clk clock.Clock) *RSVPHandler {
	return &RSVPHandler{inventory: inventory, store: store, clock: clk}
}

type RSVPRequest struct {
	TicketID      uuid.UUID `json:"ticket_id" binding:"required"`
	Quantity      int       `json:"quantity"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	PaymentMethod string    `json:"payment_method"`
}

func (h *RSVPHandler) CreateRSVP(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req RSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	reservation, err := h.inventory.ReserveTicket(c.Request.Context(), actor.ID, services.ReserveInput{
		TicketID:      req.TicketID,
		Quantity:      quantity,
		Status:        models.RSVPStatus(req.Status),
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"rsvp":        reservation.RSVP,
		"transaction": reservation.Transaction,
	})
}

func (h *RSVPHandler) MyRSVPs(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	rsvps, err := h.store.RSVPsByUser(c.Request.Context(), actor.ID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rsvps": rsvps})
}

// EventRSVPs lists an event's attendee records; only the organizer who
// created the event may read them.
func (h *RSVPHandler) EventRSVPs(c *gin.Context) {
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

	rsvps, err := h.store.RSVPsByEvent(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rsvps": rsvps})
}

// QRCode renders the signed check-in code of the caller's own RSVP as a PNG.
func (h *RSVPHandler) QRCode(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}
	rsvpID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid RSVP ID.")
		return
	}

	rsvp, err := h.store.RSVPByID(c.Request.Context(), rsvpID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}
	if rsvp.UserID != actor.ID {
		helpers.RespondWithDomainError(c, domain.ErrNotFound)
		return
	}

	png, err := qrcode.Encode(helpers.CheckInCode(rsvp.ID, rsvp.UserID), qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

type CheckInRequest struct {
	Code string `json:"code" binding:"required"`
}

// CheckIn validates a scanned code and marks the RSVP as checked in. Only the
// event's organizer may check attendees in, and a code is single-use.
func (h *RSVPHandler) CheckIn(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	rsvpID, userID, err := helpers.ParseCheckInCode(req.Code)
	if err != nil {
		helpers.RespondWithDomainError(c, domain.Validation("code", err.Error()))
		return
	}

	rsvp, err := h.store.RSVPByID(c.Request.Context(), rsvpID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}
	if rsvp.UserID != userID {
		helpers.RespondWithDomainError(c, domain.Validation("code", "check-in code does not match the reservation"))
		return
	}

	event, err := h.store.EventAnyByID(c.Request.Context(), rsvp.EventID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}
	if !policy.Allowed(actor, policy.ActionTicketManage, policy.Resource{EventOwnerID: event.CreatorID}) {
		helpers.RespondWithDomainError(c, domain.ErrForbidden)
		return
	}
	if rsvp.CheckedIn {
		helpers.RespondWithDomainError(c, domain.Validation("code", "this reservation is already checked in"))
		return
	}

	now := h.clock.Now()
	rsvp.CheckedIn = true
	rsvp.CheckedInAt = &now
	if err := h.store.SaveRSVP(c.Request.Context(), &rsvp); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Checked in.", "rsvp": rsvp})
}
