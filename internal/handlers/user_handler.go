package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mdzoubir/eventconnect-backend/internal/helpers"
	"github.com/mdzoubir/eventconnect-backend/internal/middleware"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/repository"
	"github.com/mdzoubir/eventconnect-backend/internal/services"
)

type UserHandler struct {
	registration *services.RegistrationService
	store        *repository.Store
}

func NewUserHandler(registration *services.RegistrationService, store *repository.Store) *UserHandler {
	return &UserHandler{registration: registration, store: store}
}

func (h *UserHandler) Me(c *gin.Context) {
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

	c.JSON(http.StatusOK, user)
}

type UpdateUserRequest struct {
	Email       *string                 `json:"email"`
	Role        *string                 `json:"role"`
	Status      *string                 `json:"status"`
	Interests   *string                 `json:"interests"`
	Profile     map[string]any          `json:"profile"`
	Preferences map[string]any          `json:"preferences"`
	Location    *services.LocationInput `json:"location"`
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	in := services.UpdateUserInput{
		Email:       req.Email,
		Interests:   req.Interests,
		Profile:     req.Profile,
		Preferences: req.Preferences,
		Location:    req.Location,
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		in.Role = &role
	}
	if req.Status != nil {
		status := models.UserStatus(*req.Status)
		in.Status = &status
	}

	user, err := h.registration.UpdateUser(c.Request.Context(), actor, userID, in)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser soft-deletes through the same status transition rules as an
// update, so the admin guard applies here too.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	deleted := models.UserDeleted
	if _, err := h.registration.UpdateUser(c.Request.Context(), actor, userID, services.UpdateUserInput{Status: &deleted}); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted."})
}

func (h *UserHandler) MyTransactions(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	transactions, err := h.store.TransactionsByUser(c.Request.Context(), actor.ID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
