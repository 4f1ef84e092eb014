package handlers

import (
	"errors"
	"net/http"

	"trimly/backend"
	"trimly/middleware"
	"trimly/models"
	"trimly/services/booking"
	"trimly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the multi-step booking flow.
type BookingHandler struct {
	Service booking.SessionService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.SessionService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// InitiateSession starts a session for one barber at one shop.
func (h *BookingHandler) InitiateSession(c *gin.Context) {
	var input struct {
		ShopID   string `json:"shop_id" binding:"required"`
		BarberID string `json:"barber_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.GetRawToken(c))
	session, err := h.Service.InitiateSession(ctx, auth, input.ShopID, input.BarberID)
	if err != nil {
		h.writeFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ToggleService adds or removes one service from the selection.
func (h *BookingHandler) ToggleService(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Service models.Service `json:"service" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.GetRawToken(c))
	session, err := h.Service.ToggleService(ctx, sessionID, input.Service)
	if err != nil {
		h.writeFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectDate computes availability for the chosen date.
func (h *BookingHandler) SelectDate(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.GetRawToken(c))
	session, err := h.Service.SelectDate(ctx, sessionID, input.Date)
	if err != nil {
		h.writeFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectSlot records the chosen slot; non-bookable picks are a no-op.
func (h *BookingHandler) SelectSlot(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Start *int `json:"start" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.GetRawToken(c))
	session, err := h.Service.SelectSlot(ctx, sessionID, *input.Start)
	if err != nil {
		h.writeFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Confirm performs the single booking write.
func (h *BookingHandler) Confirm(c *gin.Context) {
	sessionID := c.Param("sessionID")

	ctx := backend.WithToken(c.Request.Context(), middleware.GetRawToken(c))
	confirmation, err := h.Service.Confirm(ctx, sessionID)
	if err != nil {
		h.writeFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, confirmation)
}

// CancelSession abandons the flow.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	sessionID := c.Param("sessionID")

	ctx := backend.WithToken(c.Request.Context(), middleware.GetRawToken(c))
	if err := h.Service.CancelSession(ctx, sessionID); err != nil {
		h.writeFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"canceled": true})
}

func (h *BookingHandler) writeFlowError(c *gin.Context, err error) {
	var subErr *booking.SubmissionError
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking session not found or expired", "")
	case errors.Is(err, booking.ErrPastSelection):
		utils.JSONError(c, http.StatusUnprocessableEntity, "selected time is in the past", "pick a later slot")
	case errors.Is(err, booking.ErrConfirmInFlight):
		utils.JSONError(c, http.StatusConflict, "confirmation already in progress", "")
	case errors.As(err, &subErr):
		h.Logger.Warn("booking submission failed", zap.Error(subErr.Unwrap()))
		utils.JSONError(c, http.StatusBadGateway, "failed to book, please try again", "")
	case errors.Is(err, booking.ErrNoServices),
		errors.Is(err, booking.ErrNoSlotSelected),
		errors.Is(err, booking.ErrWrongState):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	default:
		h.Logger.Error("booking flow error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}
