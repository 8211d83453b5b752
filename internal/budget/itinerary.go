package budget

import (
	"math"
	"time"
)

// Activity is a single scheduled entry in a day plan.
type Activity struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

// DayPlan holds the schedule for one day of a booking.
type DayPlan struct {
	Day        int        `json:"day"`
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities"`
}

// SpanDays counts the whole days between two dates, rounding partial days up.
// Bookings and itineraries use this count; it does not include both endpoints.
func SpanDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// InclusiveDays counts trip duration including both the start and end dates.
// Trips use this count. It intentionally differs from SpanDays by one; the
// two must not be merged.
func InclusiveDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

// GenerateItinerary produces one day plan per day of the stay, each seeded
// with the standard activity template. This is a static template, not a
// recommendation engine.
func GenerateItinerary(start, end time.Time) []DayPlan {
	duration := SpanDays(start, end)
	plans := make([]DayPlan, 0, duration)
	for day := 1; day <= duration; day++ {
		plans = append(plans, DayPlan{
			Day:  day,
			Date: start.AddDate(0, 0, day-1),
			Activities: []Activity{
				{Time: "09:00 AM", Activity: "Breakfast", Location: "Hotel", Notes: ""},
				{Time: "10:00 AM", Activity: "Explore local attractions", Location: "City Center", Notes: "Guided tour available"},
			},
		})
	}
	return plans
}
