package models

// Booking session states. Failed submissions return the session to
// StateSelectingSlot so the client can retry with a different slot.
const (
	StateSelectingServices = "selecting_services"
	StateSelectingSlot     = "selecting_slot"
	StateConfirming        = "confirming"
	StateSucceeded         = "succeeded"
)

// BookingSession holds context between service selection and the final
// confirmation call. Stored as a JSON blob in Redis with a TTL; the session
// is the sole owner of its draft for the draft's entire lifetime.
type BookingSession struct {
	SessionID    string    `json:"sessionId"`
	ClientID     string    `json:"clientId"`
	ShopID       string    `json:"shopId"`
	BarberID     string    `json:"barberId"`
	State        string    `json:"state"`
	Services     []Service `json:"services,omitempty"` // insertion order is display order
	Date         string    `json:"date,omitempty"`     // "2006-01-02"
	SelectedSlot *Slot     `json:"selectedSlot,omitempty"`
	Availability []Slot    `json:"availability,omitempty"`
}

// BookingConfirmation is the view returned after a successful booking.
type BookingConfirmation struct {
	AppointmentID string    `json:"appointmentId"`
	Date          string    `json:"date"`
	Time          string    `json:"time"` // slot label, "H:MM AM/PM"
	Services      []Service `json:"services"`
	TotalPrice    float64   `json:"totalPrice"`
}
