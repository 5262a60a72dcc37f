package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mdzoubir/eventconnect-backend/internal/helpers"
	"github.com/mdzoubir/eventconnect-backend/internal/middleware"
	"github.com/mdzoubir/eventconnect-backend/internal/repository"
)

type NotificationHandler struct {
	store *repository.Store
}

func NewNotificationHandler(store *repository.Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	notifications, err := h.store.NotificationsByUser(c.Request.Context(), actor.ID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid notification ID.")
		return
	}

	if err := h.store.MarkNotificationRead(c.Request.Context(), notificationID, actor.ID); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read."})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	updated, err := h.store.MarkAllNotificationsRead(c.Request.Context(), actor.ID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
