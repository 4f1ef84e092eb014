package models

// Service is a bookable offering on a barber's menu.
// Duration is the raw upstream string (e.g., "30 mins", "1 hour").
type Service struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration string  `json:"duration"`
	Price    float64 `json:"price"`
}
