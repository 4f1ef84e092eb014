package booking

import "trimly/models"

// TotalPrice sums the selected services' prices. Plain pass-through
// arithmetic; currency rounding is the upstream backend's concern.
func TotalPrice(services []models.Service) float64 {
	total := 0.0
	for _, svc := range services {
		total += svc.Price
	}
	return total
}

func serviceIDs(services []models.Service) []string {
	ids := make([]string, 0, len(services))
	for _, svc := range services {
		ids = append(ids, svc.ID)
	}
	return ids
}
