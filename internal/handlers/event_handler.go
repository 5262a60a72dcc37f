package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdzoubir/eventconnect-backend/internal/clock"
	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/helpers"
	"github.com/mdzoubir/eventconnect-backend/internal/matching"
	"github.com/mdzoubir/eventconnect-backend/internal/middleware"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/policy"
	"github.com/mdzoubir/eventconnect-backend/internal/query"
	"github.com/mdzoubir/eventconnect-backend/internal/repository"
	"github.com/mdzoubir/eventconnect-backend/internal/services"
)

type EventHandler struct {
	events    *services.EventService
	inventory *services.InventoryService
	stats     *services.StatsService
	store     *repository.Store
	clock     clock.Clock
	log       *zerolog.Logger
}

func NewEventHandler(events *services.EventService, inventory *services.InventoryService, stats *services.StatsService, store *repository.Store, clk clock.Clock, log *zerolog.Logger) *EventHandler {
	return &EventHandler{events: events, inventory: inventory, stats: stats, store: store, clock: clk, log: log}
}

type EventRequest struct {
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	StartTime   time.Time              `json:"start_datetime" binding:"required"`
	EndTime     time.Time              `json:"end_datetime" binding:"required"`
	Location    services.LocationInput `json:"location" binding:"required"`
	Category    string                 `json:"category"`
	Tags        []string               `json:"tags"`
	Capacity    int                    `json:"capacity" binding:"required"`
	Price       float64                `json:"price"`
	MinimumAge  *int                   `json:"minimum_age"`
	Status      string                 `json:"status"`
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	spec := query.FromParams(
		c.Query("event_type"),
		c.Query("sorting"),
		c.Query("page"),
		c.Query("page_size"),
	)

	events, total, err := h.store.ListEvents(c.Request.Context(), spec, h.clock.Now())
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, query.NewPage(events, total, spec))
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	event, err := h.store.EventDetail(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	soldOut, err := h.inventory.IsSoldOut(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event, "sold_out": soldOut})
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	event, err := h.events.CreateEvent(c.Request.Context(), actor, services.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Category:    req.Category,
		Tags:        req.Tags,
		Capacity:    req.Capacity,
		Price:       req.Price,
		MinimumAge:  req.MinimumAge,
		Status:      models.EventStatus(req.Status),
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

type UpdateEventRequest struct {
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	StartTime   *time.Time              `json:"start_datetime"`
	EndTime     *time.Time              `json:"end_datetime"`
	Location    *services.LocationInput `json:"location"`
	Category    *string                 `json:"category"`
	Tags        []string                `json:"tags"`
	Capacity    *int                    `json:"capacity"`
	Price       *float64                `json:"price"`
	MinimumAge  *int                    `json:"minimum_age"`
	Status      *string                 `json:"status"`
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
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

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	in := services.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Category:    req.Category,
		Tags:        req.Tags,
		Capacity:    req.Capacity,
		Price:       req.Price,
		MinimumAge:  req.MinimumAge,
	}
	if req.Status != nil {
		status := models.EventStatus(*req.Status)
		in.Status = &status
	}

	event, err := h.events.UpdateEvent(c.Request.Context(), actor, eventID, in)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent cancels the event. The row survives with is_deleted set so
// RSVP and transaction history stays intact.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
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
	if err != nil || event.IsDeleted {
		helpers.RespondWithDomainError(c, domain.ErrNotFound)
		return
	}
	if !policy.Allowed(actor, policy.ActionEventDelete, policy.Resource{EventOwnerID: event.CreatorID}) {
		helpers.RespondWithDomainError(c, domain.ErrForbidden)
		return
	}

	if err := h.inventory.CancelEvent(c.Request.Context(), eventID); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event cancelled."})
}

func (h *EventHandler) MyEvents(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	events, err := h.store.EventsByCreator(c.Request.Context(), actor.ID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// MatchedEvents returns active events whose category name shares at least one
// keyword with the caller's stored interests.
func (h *EventHandler) MatchedEvents(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	user, err := h.store.UserByID(c.Request.Context(), actor.ID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	events, err := h.store.ActiveEvents(c.Request.Context())
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": matching.MatchEvents(user.Interests, events)})
}

func (h *EventHandler) ListCategories(c *gin.Context) {
	categories, err := h.store.CategoriesInUse(c.Request.Context())
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *EventHandler) EventStatistics(c *gin.Context) {
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

	stats, err := h.stats.EventStatistics(c.Request.Context(), actor, eventID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *EventHandler) UploadEventImage(c *gin.Context) {
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
	if err != nil || event.IsDeleted {
		helpers.RespondWithDomainError(c, domain.ErrNotFound)
		return
	}
	if !policy.Allowed(actor, policy.ActionEventUpdate, policy.Resource{EventOwnerID: event.CreatorID}) {
		helpers.RespondWithDomainError(c, domain.ErrForbidden)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Image file is required.")
		return
	}
	path, err := helpers.UploadFile(c, fileHeader, "events")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	image := models.EventImage{EventID: eventID, Path: path}
	if err := h.store.CreateImage(c.Request.Context(), &image); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, image)
}

func (h *EventHandler) SetPrimaryImage(c *gin.Context) {
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
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid image ID.")
		return
	}

	event, err := h.store.EventAnyByID(c.Request.Context(), eventID)
	if err != nil || event.IsDeleted {
		helpers.RespondWithDomainError(c, domain.ErrNotFound)
		return
	}
	if !policy.Allowed(actor, policy.ActionEventUpdate, policy.Resource{EventOwnerID: event.CreatorID}) {
		helpers.RespondWithDomainError(c, domain.ErrForbidden)
		return
	}

	if err := h.inventory.MarkPrimaryImage(c.Request.Context(), eventID, imageID); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Primary image updated."})
}
