package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateItineraryTwoDaySpan(t *testing.T) {
	plans := GenerateItinerary(date(2024, time.January, 1), date(2024, time.January, 3))

	require.Len(t, plans, 2)
	for i, p := range plans {
		assert.Equal(t, i+1, p.Day)
		assert.Equal(t, date(2024, time.January, 1+i), p.Date)

		require.Len(t, p.Activities, 2)
		assert.Equal(t, Activity{Time: "09:00 AM", Activity: "Breakfast", Location: "Hotel"}, p.Activities[0])
		assert.Equal(t, Activity{
			Time:     "10:00 AM",
			Activity: "Explore local attractions",
			Location: "City Center",
			Notes:    "Guided tour available",
		}, p.Activities[1])
	}
}

func TestGenerateItinerarySameDayIsEmpty(t *testing.T) {
	d := date(2024, time.June, 10)
	assert.Empty(t, GenerateItinerary(d, d))
}

func TestSpanDays(t *testing.T) {
	cases := []struct {
		start, end time.Time
		want       int
	}{
		{date(2024, time.January, 1), date(2024, time.January, 3), 2},
		{date(2024, time.January, 1), date(2024, time.January, 1), 0},
		{date(2024, time.February, 27), date(2024, time.March, 1), 3}, // leap year
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SpanDays(tc.start, tc.end))
	}
}

func TestInclusiveDaysCountsBothEndpoints(t *testing.T) {
	start := date(2024, time.January, 1)
	end := date(2024, time.January, 4)

	assert.Equal(t, 4, InclusiveDays(start, end))
	assert.Equal(t, 1, InclusiveDays(start, start))
	// trip duration and itinerary span are distinct on purpose
	assert.Equal(t, SpanDays(start, end)+1, InclusiveDays(start, end))
}
