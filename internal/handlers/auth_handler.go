package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mdzoubir/eventconnect-backend/internal/helpers"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/repository"
	"github.com/mdzoubir/eventconnect-backend/internal/services"
)

type AuthHandler struct {
	registration *services.RegistrationService
	store        *repository.Store
}

func NewAuthHandler(registration *services.RegistrationService, store *repository.Store) *AuthHandler {
	return &AuthHandler{registration: registration, store: store}
}

type RegisterRequest struct {
	Email       string                 `json:"email" binding:"required,email"`
	Password    string                 `json:"password" binding:"required,min=6"`
	Role        string                 `json:"role"`
	Interests   string                 `json:"interests"`
	Profile     map[string]any         `json:"profile"`
	Preferences map[string]any         `json:"preferences"`
	Location    services.LocationInput `json:"location" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	user, err := h.registration.Register(c.Request.Context(), services.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Role:        models.Role(req.Role),
		Interests:   req.Interests,
		Profile:     req.Profile,
		Preferences: req.Preferences,
		Location:    req.Location,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	user, err := h.store.UserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}
	if user.Status == models.UserDeleted {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}
	if !user.CheckPassword(req.Password) {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "JWT_SECRET not configured.")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    string(user.Role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
