package models

import "time"

// Notification is an upstream notification record fetched by polling.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ReminderPayload is the queued job body for an appointment reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	ClientID      string `json:"clientId"`
	BarberID      string `json:"barberId"`
	FireDate      string `json:"fireDate"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}
