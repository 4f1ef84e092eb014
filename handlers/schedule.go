package handlers

import (
	"net/http"
	"strconv"
	"time"

	"trimly/backend"
	"trimly/middleware"
	"trimly/services/schedule"
	"trimly/utils"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler exposes slot availability for the booking screens.
type ScheduleHandler struct {
	Planner  *schedule.Service
	Location *time.Location
}

func NewScheduleHandler(planner *schedule.Service, loc *time.Location) *ScheduleHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ScheduleHandler{Planner: planner, Location: loc}
}

// GetAvailableSlots returns the slot plan for a barber, date and total
// service duration. An empty list is a normal answer (day off, shop closed,
// malformed upstream hours), never an error.
func (h *ScheduleHandler) GetAvailableSlots(c *gin.Context) {
	barberID := c.Param("barberID")

	dateStr := c.Query("date")
	date, err := time.ParseInLocation("2006-01-02", dateStr, h.Location)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "expected YYYY-MM-DD")
		return
	}

	duration := 30
	if d := c.Query("duration"); d != "" {
		duration, err = strconv.Atoi(d)
		if err != nil || duration < 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid duration", "expected minutes as a non-negative integer")
			return
		}
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.GetRawToken(c))
	slots, err := h.Planner.AvailableSlots(ctx, barberID, date, duration)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "failed to load schedule", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barberId": barberID,
		"date":     dateStr,
		"slots":    slots,
	})
}
