package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"trimly/models"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	daysOff []string
	hours   string
	booked  []time.Time
	err     error
}

func (f *fakeSource) GetBarberDaysOff(ctx context.Context, barberID string) ([]string, error) {
	return f.daysOff, f.err
}

func (f *fakeSource) GetBarberWorkingHours(ctx context.Context, barberID string) (string, error) {
	return f.hours, f.err
}

func (f *fakeSource) GetBarberBookedTimes(ctx context.Context, barberID string) ([]time.Time, error) {
	return f.booked, f.err
}

func TestAvailableSlotsMarksBookedStart(t *testing.T) {
	src := &fakeSource{
		hours:  "09:00 AM - 05:00 PM",
		booked: []time.Time{time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)},
	}
	svc := NewService(src, nil, time.UTC)

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	slots, err := svc.AvailableSlots(context.Background(), "b1", monday, 90)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		if s.Start == 600 {
			require.False(t, s.Bookable)
		} else {
			require.True(t, s.Bookable)
		}
	}
}

func TestAvailableSlotsDayOff(t *testing.T) {
	src := &fakeSource{hours: "09:00 AM - 05:00 PM", daysOff: []string{"Sunday"}}
	svc := NewService(src, nil, time.UTC)

	sunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	slots, err := svc.AvailableSlots(context.Background(), "b1", sunday, 30)
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestAvailableSlotsMalformedHoursDegradesToEmpty(t *testing.T) {
	src := &fakeSource{hours: "by appointment only"}
	svc := NewService(src, nil, time.UTC)

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	slots, err := svc.AvailableSlots(context.Background(), "b1", monday, 30)
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestAvailableSlotsFetchErrorSurfaces(t *testing.T) {
	src := &fakeSource{err: errors.New("upstream down")}
	svc := NewService(src, nil, time.UTC)

	_, err := svc.AvailableSlots(context.Background(), "b1", time.Now(), 30)
	require.Error(t, err)
}

func TestBookedMinutesOn(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*60*60)
	booked := []time.Time{
		time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC),  // 10:00 local, same day
		time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC), // 01:00 local next day, dropped
		time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),  // other day, dropped
	}
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, nairobi)

	minutes := BookedMinutesOn(booked, date, nairobi)
	require.Equal(t, []int{600}, minutes)
}

func TestBookedMinutesOnEmpty(t *testing.T) {
	require.Empty(t, BookedMinutesOn(nil, time.Now(), time.UTC))

	var zero models.BarberSchedule
	require.Empty(t, BookedMinutesOn(zero.BookedTimes, time.Now(), time.UTC))
}
