package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/helpers"
	"github.com/mdzoubir/eventconnect-backend/internal/middleware"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/repository"
)

type MessageHandler struct {
	store *repository.Store
}

func NewMessageHandler(store *repository.Store) *MessageHandler {
	return &MessageHandler{store: store}
}

type MessageRequest struct {
	ReceiverID uuid.UUID  `json:"receiver_id" binding:"required"`
	EventID    *uuid.UUID `json:"event_id"`
	Content    string     `json:"content" binding:"required"`
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		helpers.RespondWithDomainError(c, domain.Validation("content", "is required"))
		return
	}
	if req.ReceiverID == actor.ID {
		helpers.RespondWithDomainError(c, domain.Validation("receiver_id", "cannot message yourself"))
		return
	}

	if _, err := h.store.UserByID(c.Request.Context(), req.ReceiverID); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}
	if req.EventID != nil {
		if _, err := h.store.EventDetail(c.Request.Context(), *req.EventID); err != nil {
			helpers.RespondWithDomainError(c, err)
			return
		}
	}

	message := models.Message{
		SenderID:   actor.ID,
		ReceiverID: req.ReceiverID,
		EventID:    req.EventID,
		Content:    req.Content,
	}
	if err := h.store.CreateMessage(c.Request.Context(), &message); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) MyMessages(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	messages, err := h.store.MessagesForUser(c.Request.Context(), actor.ID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
