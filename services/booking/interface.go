package booking

import (
	"context"
	"time"

	"trimly/models"
	"trimly/utils"
)

// SessionService sequences the booking flow: service selection, slot
// selection, then exactly one create-appointment write.
type SessionService interface {
	InitiateSession(ctx context.Context, auth utils.AuthContext, shopID, barberID string) (*models.BookingSession, error)
	ToggleService(ctx context.Context, sessionID string, svc models.Service) (*models.BookingSession, error)
	SelectDate(ctx context.Context, sessionID, date string) (*models.BookingSession, error)
	SelectSlot(ctx context.Context, sessionID string, start int) (*models.BookingSession, error)
	Confirm(ctx context.Context, sessionID string) (*models.BookingConfirmation, error)
	CancelSession(ctx context.Context, sessionID string) error
}

// Planner computes the slot plan for a barber and date.
type Planner interface {
	AvailableSlots(ctx context.Context, barberID string, date time.Time, duration int) ([]models.Slot, error)
}

// Submitter performs the single booking write upstream.
type Submitter interface {
	CreateAppointment(ctx context.Context, draft models.BookingDraft) (*models.Appointment, error)
}

// ReminderScheduler enqueues an appointment reminder after a confirmed
// booking. Optional; a nil scheduler disables reminders.
type ReminderScheduler interface {
	ScheduleReminder(appt models.Appointment) error
}

// DefaultSessionService implements SessionService.
type DefaultSessionService struct {
	Store     SessionStore
	Planner   Planner
	Upstream  Submitter
	Reminders ReminderScheduler
	Location  *time.Location

	// now is swapped out in tests.
	now func() time.Time
}
