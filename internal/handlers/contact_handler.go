package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/helpers"
	"github.com/mdzoubir/eventconnect-backend/internal/middleware"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/policy"
	"github.com/mdzoubir/eventconnect-backend/internal/repository"
)

type ContactHandler struct {
	store *repository.Store
}

func NewContactHandler(store *repository.Store) *ContactHandler {
	return &ContactHandler{store: store}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// CreateContact is an open endpoint; no authentication required.
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	contact := models.Contact{
		Name:    req.Name,
		Email:   strings.ToLower(req.Email),
		Message: req.Message,
	}
	if err := h.store.CreateContact(c.Request.Context(), &contact); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) ListContacts(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}
	if !policy.Allowed(actor, policy.ActionContactList, policy.Resource{}) {
		helpers.RespondWithDomainError(c, domain.ErrForbidden)
		return
	}

	contacts, err := h.store.ListContacts(c.Request.Context())
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *ContactHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	subscriber := models.Subscriber{Email: strings.ToLower(req.Email)}
	if err := h.store.CreateSubscriber(c.Request.Context(), &subscriber); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subscriber)
}

func (h *ContactHandler) ListSubscribers(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}
	if !policy.Allowed(actor, policy.ActionContactList, policy.Resource{}) {
		helpers.RespondWithDomainError(c, domain.ErrForbidden)
		return
	}

	subscribers, err := h.store.ListSubscribers(c.Request.Context())
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribers": subscribers})
}
