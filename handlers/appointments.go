package handlers

import (
	"net/http"

	"trimly/backend"
	"trimly/middleware"
	"trimly/models"
	"trimly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var allowedStatuses = map[string]bool{
	models.AppointmentPending:  true,
	models.AppointmentAccepted: true,
	models.AppointmentCanceled: true,
}

// AppointmentHandler proxies appointment reads and state transitions.
// The upstream backend is authoritative; this layer only validates the
// requested state against the known set.
type AppointmentHandler struct {
	Client *backend.Client
	Logger *zap.Logger
}

func NewAppointmentHandler(client *backend.Client, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Client: client, Logger: logger}
}

// ListAppointments returns the caller's appointments: a barber sees their
// calendar, a client their own bookings.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.GetRawToken(c))
	appointments, err := h.Client.ListAppointments(ctx, auth.UserID, auth.Role)
	if err != nil {
		h.Logger.Warn("failed to list appointments", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to load appointments", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// UpdateStatus moves an appointment to pending, accepted or canceled.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	appointmentID := c.Param("appointmentID")
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !allowedStatuses[input.Status] {
		utils.JSONError(c, http.StatusBadRequest, "invalid status", "expected pending, accepted or canceled")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.GetRawToken(c))
	appt, err := h.Client.UpdateAppointmentStatus(ctx, appointmentID, input.Status)
	if err != nil {
		h.Logger.Warn("failed to update appointment status",
			zap.String("appointmentID", appointmentID), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to update appointment", "")
		return
	}
	c.JSON(http.StatusOK, appt)
}
