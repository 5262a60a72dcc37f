package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/helpers"
	"github.com/mdzoubir/eventconnect-backend/internal/middleware"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/policy"
	"github.com/mdzoubir/eventconnect-backend/internal/repository"
)

type TicketHandler struct {
	store *repository.Store
}

func NewTicketHandler(store *repository.Store) *TicketHandler {
	return &TicketHandler{store: store}
}

type TicketRequest struct {
	EventID   uuid.UUID `json:"event_id" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity" binding:"required"`
	SaleStart time.Time `json:"sale_start" binding:"required"`
	SaleEnd   time.Time `json:"sale_end" binding:"required"`
	IsActive  *bool     `json:"is_active"`
}

func (h *TicketHandler) authorizeEvent(c *gin.Context, eventID uuid.UUID) (models.Event, bool) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return models.Event{}, false
	}

	event, err := h.store.EventAnyByID(c.Request.Context(), eventID)
	if err != nil || event.IsDeleted {
		helpers.RespondWithDomainError(c, domain.ErrNotFound)
		return models.Event{}, false
	}
	if !policy.Allowed(actor, policy.ActionTicketManage, policy.Resource{EventOwnerID: event.CreatorID}) {
		helpers.RespondWithDomainError(c, domain.ErrForbidden)
		return models.Event{}, false
	}
	return event, true
}

func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if _, ok := h.authorizeEvent(c, req.EventID); !ok {
		return
	}
	if req.Quantity < 1 {
		helpers.RespondWithDomainError(c, domain.Validation("quantity", "must be at least 1"))
		return
	}
	if req.Price < 0 {
		helpers.RespondWithDomainError(c, domain.Validation("price", "must not be negative"))
		return
	}
	if req.SaleEnd.Before(req.SaleStart) {
		helpers.RespondWithDomainError(c, domain.Validation("sale_end", "must not be before sale_start"))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	ticket := models.Ticket{
		EventID:   req.EventID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Remaining: req.Quantity,
		SaleStart: req.SaleStart,
		SaleEnd:   req.SaleEnd,
		IsActive:  isActive,
	}
	if err := h.store.CreateTicket(c.Request.Context(), &ticket); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID.")
		return
	}

	ticket, err := h.store.TicketByID(c.Request.Context(), ticketID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) ListEventTickets(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	if _, err := h.store.EventDetail(c.Request.Context(), eventID); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}
	tickets, err := h.store.TicketsByEvent(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

type UpdateTicketRequest struct {
	Name      *string    `json:"name"`
	Price     *float64   `json:"price"`
	SaleStart *time.Time `json:"sale_start"`
	SaleEnd   *time.Time `json:"sale_end"`
	IsActive  *bool      `json:"is_active"`
}

func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID.")
		return
	}

	ticket, err := h.store.TicketByID(c.Request.Context(), ticketID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}
	if _, ok := h.authorizeEvent(c, ticket.EventID); !ok {
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.Name != nil {
		ticket.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			helpers.RespondWithDomainError(c, domain.Validation("price", "must not be negative"))
			return
		}
		ticket.Price = *req.Price
	}
	if req.SaleStart != nil {
		ticket.SaleStart = *req.SaleStart
	}
	if req.SaleEnd != nil {
		ticket.SaleEnd = *req.SaleEnd
	}
	if ticket.SaleEnd.Before(ticket.SaleStart) {
		helpers.RespondWithDomainError(c, domain.Validation("sale_end", "must not be before sale_start"))
		return
	}
	if req.IsActive != nil {
		ticket.IsActive = *req.IsActive
	}

	if err := h.store.SaveTicket(c.Request.Context(), &ticket); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID.")
		return
	}

	ticket, err := h.store.TicketByID(c.Request.Context(), ticketID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}
	if _, ok := h.authorizeEvent(c, ticket.EventID); !ok {
		return
	}

	if err := h.store.DeleteTicket(c.Request.Context(), ticketID); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ticket deleted."})
}
