// Package notify implements fixed-interval notification polling against the
// upstream API. A Poller is bound to the lifetime of its owner (an open
// client connection); canceling the context ends it, and a fetch that
// resolves after cancellation is simply dropped.
package notify

import (
	"context"
	"time"

	"trimly/models"
	"trimly/utils"

	"go.uber.org/zap"
)

// Fetcher is the slice of the upstream client the poller needs.
type Fetcher interface {
	ListNotifications(ctx context.Context, userID string) ([]models.Notification, error)
}

// Poller refetches one user's notifications on a fixed interval and hands
// previously unseen ones to Sink, oldest first within a batch.
type Poller struct {
	Fetcher  Fetcher
	UserID   string
	Interval time.Duration
	Sink     func([]models.Notification)

	seen map[string]struct{}
}

func NewPoller(fetcher Fetcher, userID string, interval time.Duration, sink func([]models.Notification)) *Poller {
	return &Poller{
		Fetcher:  fetcher,
		UserID:   userID,
		Interval: interval,
		Sink:     sink,
		seen:     make(map[string]struct{}),
	}
}

// Run polls until ctx is canceled. The first fetch happens immediately.
// Fetch failures are logged and retried on the next tick; they never end
// the loop.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	notifications, err := p.Fetcher.ListNotifications(ctx, p.UserID)
	if err != nil {
		if ctx.Err() == nil {
			utils.GetLogger().Warn("notification poll failed",
				zap.String("userID", p.UserID), zap.Error(err))
		}
		return
	}
	if ctx.Err() != nil {
		// Owner went away while the fetch was in flight.
		return
	}

	var fresh []models.Notification
	for _, n := range notifications {
		if _, ok := p.seen[n.ID]; ok {
			continue
		}
		p.seen[n.ID] = struct{}{}
		fresh = append(fresh, n)
	}
	if len(fresh) > 0 && p.Sink != nil {
		p.Sink(fresh)
	}
}
