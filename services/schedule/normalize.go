package schedule

import "time"

// BookedMinutesOn converts stored appointment starts (UTC) into local
// minutes-from-midnight for one calendar date. The conversion happens here
// and nowhere else; everything downstream compares plain integers.
func BookedMinutesOn(booked []time.Time, date time.Time, loc *time.Location) []int {
	day := date.In(loc).Format("2006-01-02")
	var minutes []int
	for _, ts := range booked {
		local := ts.In(loc)
		if local.Format("2006-01-02") != day {
			continue
		}
		minutes = append(minutes, local.Hour()*60+local.Minute())
	}
	return minutes
}
