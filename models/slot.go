package models

import "time"

// Slot is a candidate appointment start within a barber's working hours.
// Slots are regenerated from scratch whenever their inputs change, never
// mutated in place.
type Slot struct {
	Label    string `json:"label"` // "H:MM AM/PM"
	Start    int    `json:"start"` // minutes from midnight
	Bookable bool   `json:"bookable"`
}

// BarberSchedule bundles the raw upstream schedule data for one barber.
type BarberSchedule struct {
	WorkingHours string      `json:"workingHours"`
	DaysOff      []string    `json:"daysOff"`
	BookedTimes  []time.Time `json:"bookedTimes"` // appointment starts, UTC
}
