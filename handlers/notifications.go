package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"trimly/backend"
	"trimly/middleware"
	"trimly/models"
	"trimly/services/notify"
	"trimly/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes one-shot fetches and a polling stream.
type NotificationHandler struct {
	Client       *backend.Client
	PollInterval time.Duration
}

func NewNotificationHandler(client *backend.Client, pollInterval time.Duration) *NotificationHandler {
	return &NotificationHandler{Client: client, PollInterval: pollInterval}
}

// ListNotifications is the plain fetch used on screen load.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.GetRawToken(c))
	notifications, err := h.Client.ListNotifications(ctx, auth.UserID)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "failed to load notifications", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// StreamNotifications runs a poller for the duration of the connection and
// pushes unseen notifications as server-sent events. Closing the connection
// cancels the poller; nothing outlives the request.
func (h *NotificationHandler) StreamNotifications(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.GetRawToken(c))

	events := make(chan []models.Notification, 4)
	poller := notify.NewPoller(h.Client, auth.UserID, h.PollInterval, func(batch []models.Notification) {
		select {
		case events <- batch:
		case <-ctx.Done():
		}
	})

	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go poller.Run(pollCtx)

	c.Stream(func(w io.Writer) bool {
		select {
		case batch := <-events:
			c.SSEvent("notifications", batch)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
