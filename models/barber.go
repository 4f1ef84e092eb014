package models

// Barber is the upstream barber profile as consumed by the booking flow.
type Barber struct {
	ID           string    `json:"id"`
	ShopID       string    `json:"shop_id"`
	Name         string    `json:"name"`
	WorkingHours string    `json:"working_hours"` // e.g., "09:00 AM - 05:00 PM"
	DaysOff      []string  `json:"days_off"`      // weekday names, e.g., "Sunday"
	Services     []Service `json:"services,omitempty"`
}

// Shop is the upstream barbershop profile.
type Shop struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"owner_id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	WorkingHours string   `json:"working_hours"`
	DaysOff      []string `json:"days_off"`
	Rating       float64  `json:"rating,omitempty"`
}
