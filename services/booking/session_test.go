package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"trimly/models"
	"trimly/utils"

	"github.com/stretchr/testify/require"
)

type fakePlanner struct {
	slots []models.Slot
	err   error
	calls int
}

func (f *fakePlanner) AvailableSlots(ctx context.Context, barberID string, date time.Time, duration int) ([]models.Slot, error) {
	f.calls++
	return f.slots, f.err
}

type fakeSubmitter struct {
	appt   *models.Appointment
	err    error
	drafts []models.BookingDraft
}

func (f *fakeSubmitter) CreateAppointment(ctx context.Context, draft models.BookingDraft) (*models.Appointment, error) {
	f.drafts = append(f.drafts, draft)
	if f.err != nil {
		return nil, f.err
	}
	return f.appt, nil
}

type fakeReminders struct {
	scheduled []models.Appointment
}

func (f *fakeReminders) ScheduleReminder(appt models.Appointment) error {
	f.scheduled = append(f.scheduled, appt)
	return nil
}

var testSlots = []models.Slot{
	{Label: "9:00 AM", Start: 540, Bookable: true},
	{Label: "10:00 AM", Start: 600, Bookable: true},
	{Label: "10:30 AM", Start: 630, Bookable: false},
}

func newTestService(planner *fakePlanner, submitter *fakeSubmitter, reminders ReminderScheduler) *DefaultSessionService {
	svc := NewDefaultSessionService(NewMemorySessionStore(), planner, submitter, reminders, time.UTC)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	}
	return svc
}

func startSession(t *testing.T, svc *DefaultSessionService) *models.BookingSession {
	t.Helper()
	session, err := svc.InitiateSession(context.Background(), utils.AuthContext{UserID: "c1", Role: "client"}, "s1", "b1")
	require.NoError(t, err)
	require.Equal(t, models.StateSelectingServices, session.State)
	return session
}

func TestFullBookingFlow(t *testing.T) {
	planner := &fakePlanner{slots: testSlots}
	submitter := &fakeSubmitter{appt: &models.Appointment{ID: "a1", Status: models.AppointmentPending}}
	reminders := &fakeReminders{}
	svc := newTestService(planner, submitter, reminders)
	ctx := context.Background()

	session := startSession(t, svc)

	cut := models.Service{ID: "cut", Name: "Haircut", Duration: "30 mins", Price: 20}
	shave := models.Service{ID: "shave", Name: "Shave", Duration: "1 hour", Price: 15}
	_, err := svc.ToggleService(ctx, session.SessionID, cut)
	require.NoError(t, err)
	session, err = svc.ToggleService(ctx, session.SessionID, shave)
	require.NoError(t, err)
	require.Len(t, session.Services, 2)

	session, err = svc.SelectDate(ctx, session.SessionID, "2026-03-02")
	require.NoError(t, err)
	require.Equal(t, models.StateSelectingSlot, session.State)
	require.Equal(t, testSlots, session.Availability)

	session, err = svc.SelectSlot(ctx, session.SessionID, 600)
	require.NoError(t, err)
	require.NotNil(t, session.SelectedSlot)
	require.Equal(t, "10:00 AM", session.SelectedSlot.Label)

	conf, err := svc.Confirm(ctx, session.SessionID)
	require.NoError(t, err)
	require.Equal(t, "a1", conf.AppointmentID)
	require.Equal(t, "2026-03-02", conf.Date)
	require.Equal(t, "10:00 AM", conf.Time)
	require.Equal(t, 35.0, conf.TotalPrice)

	require.Len(t, submitter.drafts, 1)
	draft := submitter.drafts[0]
	require.Equal(t, "c1", draft.ClientID)
	require.Equal(t, "b1", draft.BarberID)
	require.Equal(t, "s1", draft.ShopID)
	require.Equal(t, []string{"cut", "shave"}, draft.ServiceIDs)
	require.Equal(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), draft.TimeAndDate)

	require.Len(t, reminders.scheduled, 1)

	// Draft is single-use: the session is gone after success.
	_, err = svc.Confirm(ctx, session.SessionID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestToggleServiceRemovesOnSecondToggle(t *testing.T) {
	svc := newTestService(&fakePlanner{slots: testSlots}, &fakeSubmitter{}, nil)
	ctx := context.Background()
	session := startSession(t, svc)

	cut := models.Service{ID: "cut", Duration: "30 mins", Price: 20}
	session, err := svc.ToggleService(ctx, session.SessionID, cut)
	require.NoError(t, err)
	require.Len(t, session.Services, 1)

	session, err = svc.ToggleService(ctx, session.SessionID, cut)
	require.NoError(t, err)
	require.Empty(t, session.Services)
}

func TestToggleServiceInvalidatesComputedSlots(t *testing.T) {
	svc := newTestService(&fakePlanner{slots: testSlots}, &fakeSubmitter{}, nil)
	ctx := context.Background()
	session := startSession(t, svc)

	_, err := svc.ToggleService(ctx, session.SessionID, models.Service{ID: "cut", Duration: "30 mins"})
	require.NoError(t, err)
	session, err = svc.SelectDate(ctx, session.SessionID, "2026-03-02")
	require.NoError(t, err)
	require.NotEmpty(t, session.Availability)

	session, err = svc.ToggleService(ctx, session.SessionID, models.Service{ID: "shave", Duration: "1 hour"})
	require.NoError(t, err)
	require.Equal(t, models.StateSelectingServices, session.State)
	require.Empty(t, session.Availability)
	require.Nil(t, session.SelectedSlot)
}

func TestSelectDateRequiresServices(t *testing.T) {
	svc := newTestService(&fakePlanner{slots: testSlots}, &fakeSubmitter{}, nil)
	session := startSession(t, svc)

	_, err := svc.SelectDate(context.Background(), session.SessionID, "2026-03-02")
	require.ErrorIs(t, err, ErrNoServices)
}

func TestSelectSlotNonBookableIsNoOp(t *testing.T) {
	svc := newTestService(&fakePlanner{slots: testSlots}, &fakeSubmitter{}, nil)
	ctx := context.Background()
	session := startSession(t, svc)

	_, err := svc.ToggleService(ctx, session.SessionID, models.Service{ID: "cut", Duration: "30 mins"})
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, session.SessionID, "2026-03-02")
	require.NoError(t, err)

	// 10:30 AM is marked non-bookable; 999 is not a generated start.
	for _, start := range []int{630, 999} {
		session, err = svc.SelectSlot(ctx, session.SessionID, start)
		require.NoError(t, err)
		require.Equal(t, models.StateSelectingSlot, session.State)
		require.Nil(t, session.SelectedSlot)
	}
}

func TestConfirmRejectsPastSelection(t *testing.T) {
	submitter := &fakeSubmitter{}
	svc := newTestService(&fakePlanner{slots: testSlots}, submitter, nil)
	ctx := context.Background()
	session := startSession(t, svc)

	_, err := svc.ToggleService(ctx, session.SessionID, models.Service{ID: "cut", Duration: "30 mins"})
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, session.SessionID, "2026-03-01") // yesterday
	require.NoError(t, err)
	_, err = svc.SelectSlot(ctx, session.SessionID, 600)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, session.SessionID)
	require.ErrorIs(t, err, ErrPastSelection)

	// No network call was made and the flow can continue.
	require.Empty(t, submitter.drafts)
	session, err = svc.Store.Get(ctx, session.SessionID)
	require.NoError(t, err)
	require.Equal(t, models.StateSelectingSlot, session.State)
}

func TestConfirmFailureReturnsToSlotSelection(t *testing.T) {
	submitter := &fakeSubmitter{err: errors.New("upstream 409")}
	svc := newTestService(&fakePlanner{slots: testSlots}, submitter, nil)
	ctx := context.Background()
	session := startSession(t, svc)

	_, err := svc.ToggleService(ctx, session.SessionID, models.Service{ID: "cut", Duration: "30 mins"})
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, session.SessionID, "2026-03-02")
	require.NoError(t, err)
	_, err = svc.SelectSlot(ctx, session.SessionID, 600)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, session.SessionID)
	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	require.Equal(t, "failed to book, please try again", subErr.Error())

	session, err = svc.Store.Get(ctx, session.SessionID)
	require.NoError(t, err)
	require.Equal(t, models.StateSelectingSlot, session.State)
	require.Len(t, submitter.drafts, 1, "no automatic retry")
}

func TestConfirmWhileConfirmingIsRejected(t *testing.T) {
	svc := newTestService(&fakePlanner{slots: testSlots}, &fakeSubmitter{}, nil)
	ctx := context.Background()
	session := startSession(t, svc)

	session.State = models.StateConfirming
	require.NoError(t, svc.Store.Save(ctx, session, time.Minute))

	_, err := svc.Confirm(ctx, session.SessionID)
	require.ErrorIs(t, err, ErrConfirmInFlight)
}

func TestConfirmWithoutSlot(t *testing.T) {
	svc := newTestService(&fakePlanner{slots: testSlots}, &fakeSubmitter{}, nil)
	ctx := context.Background()
	session := startSession(t, svc)

	_, err := svc.ToggleService(ctx, session.SessionID, models.Service{ID: "cut", Duration: "30 mins"})
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, session.SessionID, "2026-03-02")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, session.SessionID)
	require.ErrorIs(t, err, ErrNoSlotSelected)
}

func TestCancelSessionDropsState(t *testing.T) {
	svc := newTestService(&fakePlanner{slots: testSlots}, &fakeSubmitter{}, nil)
	ctx := context.Background()
	session := startSession(t, svc)

	require.NoError(t, svc.CancelSession(ctx, session.SessionID))
	_, err := svc.Store.Get(ctx, session.SessionID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestTotalPrice(t *testing.T) {
	services := []models.Service{{Price: 12.5}, {Price: 7.5}, {Price: 0}}
	require.Equal(t, 20.0, TotalPrice(services))
	require.Equal(t, 0.0, TotalPrice(nil))
}
