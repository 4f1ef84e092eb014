package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"trimly/models"

	"github.com/stretchr/testify/require"
)

type scriptedFetcher struct {
	mu      sync.Mutex
	batches [][]models.Notification
	err     error
	calls   int
}

func (f *scriptedFetcher) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.batches) == 0 {
		return nil, nil
	}
	batch := f.batches[0]
	if len(f.batches) > 1 {
		f.batches = f.batches[1:]
	}
	return batch, nil
}

func TestPollerDeliversOnlyUnseen(t *testing.T) {
	n1 := models.Notification{ID: "n1", Body: "booked"}
	n2 := models.Notification{ID: "n2", Body: "accepted"}
	fetcher := &scriptedFetcher{batches: [][]models.Notification{
		{n1},
		{n1, n2},
		{n1, n2},
	}}

	var mu sync.Mutex
	var delivered []models.Notification
	p := NewPoller(fetcher, "u1", 5*time.Millisecond, func(batch []models.Notification) {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, batch...)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(delivered) == 2
	}, time.Second, 2*time.Millisecond)

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []models.Notification{n1, n2}, delivered)
}

func TestPollerSurvivesFetchErrors(t *testing.T) {
	fetcher := &scriptedFetcher{err: errors.New("upstream down")}
	p := NewPoller(fetcher, "u1", 2*time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	p.Run(ctx)

	fetcher.mu.Lock()
	defer fetcher.mu.Unlock()
	require.Greater(t, fetcher.calls, 1, "poller should keep retrying after errors")
}
