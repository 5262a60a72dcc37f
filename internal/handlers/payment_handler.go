package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mdzoubir/eventconnect-backend/internal/helpers"
	"github.com/mdzoubir/eventconnect-backend/internal/middleware"
	"github.com/mdzoubir/eventconnect-backend/internal/services"
)

// PaymentHandler drives the transaction status lifecycle. There is no
// gateway; completing and refunding are pure state transitions.
type PaymentHandler struct {
	inventory *services.InventoryService
}

func NewPaymentHandler(inventory *services.InventoryService) *PaymentHandler {
	return &PaymentHandler{inventory: inventory}
}

func (h *PaymentHandler) CompletePayment(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}
	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID.")
		return
	}

	txn, err := h.inventory.CompletePayment(c.Request.Context(), actor.ID, txnID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}

func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}
	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID.")
		return
	}

	txn, err := h.inventory.RefundPayment(c.Request.Context(), actor.ID, txnID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}
