package slotplan

import (
	"strconv"
	"strings"

	"trimly/models"
)

// ParseServiceDuration converts an upstream duration string ("30 mins",
// "1 hour", "45") into minutes. The first integer in the string is taken;
// a unit mentioning "hour" multiplies it by 60. An unparseable duration
// contributes 0.
func ParseServiceDuration(s string) int {
	i := 0
	for i < len(s) && (s[i] < '0' || s[i] > '9') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if i == j {
		return 0
	}
	n, err := strconv.Atoi(s[i:j])
	if err != nil {
		return 0
	}
	if strings.Contains(strings.ToLower(s), "hour") {
		return n * 60
	}
	return n
}

// TotalDuration sums the parsed durations of the selected services.
func TotalDuration(services []models.Service) int {
	total := 0
	for _, svc := range services {
		total += ParseServiceDuration(svc.Duration)
	}
	return total
}
