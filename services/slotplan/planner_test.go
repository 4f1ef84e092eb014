package slotplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPlanNineToFive(t *testing.T) {
	open, close, err := ParseWorkingHours("09:00 AM - 05:00 PM")
	require.NoError(t, err)

	slots := Plan(open, close, 30, nil)
	require.Len(t, slots, 16)
	require.Equal(t, "9:00 AM", slots[0].Label)
	require.Equal(t, "4:30 PM", slots[15].Label)
	for _, s := range slots {
		require.True(t, s.Bookable)
	}
}

func TestPlanCountFormula(t *testing.T) {
	cases := []struct {
		name                  string
		open, close, duration int
	}{
		{"half hour services", 540, 1020, 30},
		{"ninety minutes", 540, 1020, 90},
		{"exact fit", 600, 660, 60},
		{"barely too long", 600, 660, 61},
		{"zero duration", 480, 720, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slots := Plan(tc.open, tc.close, tc.duration, nil)
			want := 0
			if tc.duration <= tc.close-tc.open {
				want = (tc.close-tc.open-tc.duration)/StepMinutes + 1
			}
			require.Len(t, slots, want)
			for i := 1; i < len(slots); i++ {
				require.Equal(t, slots[i-1].Start+StepMinutes, slots[i].Start)
			}
		})
	}
}

func TestPlanExactStartConflict(t *testing.T) {
	// 90-minute service, booking at 10:00 AM blocks only the 10:00 AM slot.
	slots := Plan(540, 1020, 90, []int{600})
	for _, s := range slots {
		if s.Start == 600 {
			require.False(t, s.Bookable, "10:00 AM slot should be blocked")
			require.Equal(t, "10:00 AM", s.Label)
		} else {
			require.True(t, s.Bookable, "slot %s should stay bookable", s.Label)
		}
	}
}

func TestPlanNonMatchingBookingLeavesSlotsBookable(t *testing.T) {
	// A booked start that coincides with no generated slot blocks nothing.
	slots := Plan(540, 1020, 30, []int{610})
	require.Len(t, slots, 16)
	for _, s := range slots {
		require.True(t, s.Bookable)
	}
}

func TestPlanIdempotent(t *testing.T) {
	booked := []int{600, 720}
	first := Plan(540, 1020, 60, booked)
	second := Plan(540, 1020, 60, booked)
	require.Equal(t, first, second)
}

func TestPlanDayDayOff(t *testing.T) {
	sunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, sunday.Weekday())

	slots := PlanDay(sunday, []string{"Sunday"}, "09:00 AM - 05:00 PM", 30, nil)
	require.Empty(t, slots)
}

func TestPlanDayMalformedHours(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for _, hours := range []string{"", "closed", "9 to 5", "05:00 PM - 09:00 AM"} {
		require.Empty(t, PlanDay(monday, nil, hours, 30, nil), "hours=%q", hours)
	}
}

func TestParseWorkingHours(t *testing.T) {
	cases := []struct {
		in          string
		open, close int
		ok          bool
	}{
		{"09:00 AM - 05:00 PM", 540, 1020, true},
		{"9:00 AM-5:00 PM", 540, 1020, true},
		{"09:00-17:00", 540, 1020, true},
		{"12:00 AM - 12:00 PM", 0, 720, true},
		{"10:00 PM - 09:00 AM", 0, 0, false},
		{"malformed", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		open, close, err := ParseWorkingHours(tc.in)
		if !tc.ok {
			require.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.open, open)
		require.Equal(t, tc.close, close)
	}
}

func TestFormatMinute(t *testing.T) {
	cases := map[int]string{
		0:    "12:00 AM",
		540:  "9:00 AM",
		720:  "12:00 PM",
		750:  "12:30 PM",
		990:  "4:30 PM",
		1380: "11:00 PM",
	}
	for m, want := range cases {
		require.Equal(t, want, FormatMinute(m))
	}
}

func TestParseServiceDuration(t *testing.T) {
	cases := map[string]int{
		"30 mins":    30,
		"45 minutes": 45,
		"1 hour":     60,
		"2 hours":    120,
		"90":         90,
		"quick trim": 0,
		"":           0,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseServiceDuration(in), "input %q", in)
	}
}
