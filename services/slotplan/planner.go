// Package slotplan computes bookable time slots for a barber and date.
// It is a pure computation over already-fetched schedule data: no I/O, and
// degraded input (malformed hours, a day off) yields an empty plan rather
// than an error.
package slotplan

import (
	"strings"
	"time"

	"trimly/models"
)

// StepMinutes is the fixed slot granularity.
const StepMinutes = 30

// Plan emits candidate starts from open in fixed steps while the full
// service duration still fits before close. A candidate is non-bookable iff
// its start minute exactly equals a booked start minute; a booking that
// merely runs through a later slot's start is not treated as a conflict,
// matching the backend's own semantics.
func Plan(open, close, duration int, booked []int) []models.Slot {
	if open < 0 || close <= open || duration < 0 {
		return nil
	}

	taken := make(map[int]struct{}, len(booked))
	for _, m := range booked {
		taken[m] = struct{}{}
	}

	var slots []models.Slot
	for t := open; t+duration <= close; t += StepMinutes {
		_, conflict := taken[t]
		slots = append(slots, models.Slot{
			Label:    FormatMinute(t),
			Start:    t,
			Bookable: !conflict,
		})
	}
	return slots
}

// PlanDay is the full planner: day-off check, working-hours parse, then the
// slot scan. booked holds local minutes-from-midnight of appointments already
// taken on date; timezone normalization is the caller's job and happens once.
func PlanDay(date time.Time, daysOff []string, workingHours string, duration int, booked []int) []models.Slot {
	if IsDayOff(date, daysOff) {
		return nil
	}
	open, close, err := ParseWorkingHours(workingHours)
	if err != nil {
		return nil
	}
	return Plan(open, close, duration, booked)
}

// IsDayOff reports whether the date's weekday is one of the barber's days off.
func IsDayOff(date time.Time, daysOff []string) bool {
	weekday := date.Weekday().String()
	for _, d := range daysOff {
		if strings.EqualFold(strings.TrimSpace(d), weekday) {
			return true
		}
	}
	return false
}
