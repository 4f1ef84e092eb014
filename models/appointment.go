package models

import "time"

// Appointment states accepted by the upstream backend.
const (
	AppointmentPending  = "pending"
	AppointmentAccepted = "accepted"
	AppointmentCanceled = "canceled"
)

// Appointment is the upstream appointment record.
type Appointment struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	BarberID    string    `json:"barber_id"`
	ShopID      string    `json:"shop_id"`
	ServiceIDs  []string  `json:"service_id"`
	TimeAndDate time.Time `json:"time_and_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// BookingDraft is the single-use payload for one appointment creation
// attempt. It is built at confirmation time, sent upstream exactly once and
// discarded after success or failure.
type BookingDraft struct {
	ClientID    string    `json:"client_id"`
	BarberID    string    `json:"barber_id"`
	ShopID      string    `json:"shop_id"`
	ServiceIDs  []string  `json:"service_id"`
	TimeAndDate time.Time `json:"time_and_date"`
}
