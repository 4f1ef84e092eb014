package booking

import (
	"context"
	"fmt"
	"time"

	"trimly/models"
	"trimly/services/slotplan"
	"trimly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sessions expire if the client walks away mid-flow.
const sessionTTL = 30 * time.Minute

func NewDefaultSessionService(store SessionStore, planner Planner, upstream Submitter, reminders ReminderScheduler, loc *time.Location) *DefaultSessionService {
	if loc == nil {
		loc = time.Local
	}
	return &DefaultSessionService{
		Store:     store,
		Planner:   planner,
		Upstream:  upstream,
		Reminders: reminders,
		Location:  loc,
		now:       time.Now,
	}
}

func (s *DefaultSessionService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// InitiateSession opens a new session in the service-selection step.
func (s *DefaultSessionService) InitiateSession(ctx context.Context, auth utils.AuthContext, shopID, barberID string) (*models.BookingSession, error) {
	if shopID == "" || barberID == "" {
		return nil, fmt.Errorf("shopID and barberID are required")
	}

	session := &models.BookingSession{
		SessionID: uuid.New().String(),
		ClientID:  auth.UserID,
		ShopID:    shopID,
		BarberID:  barberID,
		State:     models.StateSelectingServices,
	}
	if err := s.Store.Save(ctx, session, sessionTTL); err != nil {
		return nil, err
	}

	utils.GetLogger().Debug("initiated booking session",
		zap.String("sessionID", session.SessionID), zap.String("barberID", barberID))
	return session, nil
}

// ToggleService adds the service to the selection, or removes it when the
// same id is already selected. Insertion order is preserved. Toggling after
// slots were computed invalidates them and returns to service selection.
func (s *DefaultSessionService) ToggleService(ctx context.Context, sessionID string, svc models.Service) (*models.BookingSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.StateSelectingServices && session.State != models.StateSelectingSlot {
		return nil, ErrWrongState
	}
	if svc.ID == "" {
		return nil, fmt.Errorf("service id is required")
	}

	removed := false
	kept := session.Services[:0]
	for _, existing := range session.Services {
		if existing.ID == svc.ID {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	session.Services = kept
	if !removed {
		session.Services = append(session.Services, svc)
	}

	// Selection changed, so any computed slots are stale.
	session.State = models.StateSelectingServices
	session.Availability = nil
	session.SelectedSlot = nil

	if err := s.Store.Save(ctx, session, sessionTTL); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectDate advances to slot selection: it computes the slot plan for the
// chosen date against the total duration of the selected services. Calling
// it again with a different date regenerates the plan from scratch.
func (s *DefaultSessionService) SelectDate(ctx context.Context, sessionID, date string) (*models.BookingSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.StateSelectingServices && session.State != models.StateSelectingSlot {
		return nil, ErrWrongState
	}
	if len(session.Services) == 0 {
		return nil, ErrNoServices
	}

	day, err := time.ParseInLocation("2006-01-02", date, s.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	duration := slotplan.TotalDuration(session.Services)
	slots, err := s.Planner.AvailableSlots(ctx, session.BarberID, day, duration)
	if err != nil {
		return nil, fmt.Errorf("failed to compute availability: %w", err)
	}

	session.Date = date
	session.Availability = slots
	session.SelectedSlot = nil
	session.State = models.StateSelectingSlot

	if err := s.Store.Save(ctx, session, sessionTTL); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectSlot records the chosen slot. Picking a start that is not in the
// plan, or one marked non-bookable, is a no-op: the session is returned
// unchanged with no slot recorded.
func (s *DefaultSessionService) SelectSlot(ctx context.Context, sessionID string, start int) (*models.BookingSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.StateSelectingSlot {
		return nil, ErrWrongState
	}

	for i := range session.Availability {
		slot := session.Availability[i]
		if slot.Start != start {
			continue
		}
		if !slot.Bookable {
			break
		}
		session.SelectedSlot = &slot
		if err := s.Store.Save(ctx, session, sessionTTL); err != nil {
			return nil, err
		}
		return session, nil
	}

	return session, nil
}

// Confirm performs the single booking write. On success the session is
// discarded and a confirmation view returned; on failure the draft is
// discarded and the session drops back to slot selection so the client can
// retry with a different slot.
func (s *DefaultSessionService) Confirm(ctx context.Context, sessionID string) (*models.BookingConfirmation, error) {
	logger := utils.GetLogger()

	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State == models.StateConfirming {
		return nil, ErrConfirmInFlight
	}
	if session.State != models.StateSelectingSlot {
		return nil, ErrWrongState
	}
	if session.SelectedSlot == nil {
		return nil, ErrNoSlotSelected
	}

	apptTime, err := s.appointmentTime(session.Date, session.SelectedSlot.Start)
	if err != nil {
		return nil, err
	}
	if apptTime.Before(s.clock()) {
		return nil, ErrPastSelection
	}

	session.State = models.StateConfirming
	if err := s.Store.Save(ctx, session, sessionTTL); err != nil {
		return nil, err
	}

	draft := models.BookingDraft{
		ClientID:    session.ClientID,
		BarberID:    session.BarberID,
		ShopID:      session.ShopID,
		ServiceIDs:  serviceIDs(session.Services),
		TimeAndDate: apptTime.UTC(),
	}

	appt, err := s.Upstream.CreateAppointment(ctx, draft)
	if err != nil {
		logger.Warn("appointment submission failed",
			zap.String("sessionID", sessionID), zap.Error(err))
		session.State = models.StateSelectingSlot
		if saveErr := s.Store.Save(ctx, session, sessionTTL); saveErr != nil {
			logger.Error("failed to restore session after submission failure",
				zap.String("sessionID", sessionID), zap.Error(saveErr))
		}
		return nil, &SubmissionError{Err: err}
	}

	if err := s.Store.Delete(ctx, sessionID); err != nil {
		logger.Warn("failed to clear completed session", zap.String("sessionID", sessionID), zap.Error(err))
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(*appt); err != nil {
			logger.Warn("failed to schedule reminder",
				zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}

	return &models.BookingConfirmation{
		AppointmentID: appt.ID,
		Date:          session.Date,
		Time:          session.SelectedSlot.Label,
		Services:      session.Services,
		TotalPrice:    TotalPrice(session.Services),
	}, nil
}

// CancelSession abandons the flow and drops the session.
func (s *DefaultSessionService) CancelSession(ctx context.Context, sessionID string) error {
	return s.Store.Delete(ctx, sessionID)
}

func (s *DefaultSessionService) appointmentTime(date string, startMinute int) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid session date %q: %w", date, err)
	}
	return day.Add(time.Duration(startMinute) * time.Minute), nil
}
