package budget

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateFranceFourDaysTwoAdults(t *testing.T) {
	b := Calculate("France", 4, Travelers{Adults: 2})

	assert.Equal(t, "EUR", b.Currency)
	require.Len(t, b.Categories, 5)

	want := map[string]float64{
		"Accommodation": 720, // 120 * 3 nights * 2 adults
		"Food":          480, // 60 * 4 days * 2 adults
		"Transport":     300,
		"Activities":    320, // 40 * 4 days * 2 adults
		"Miscellaneous": 200,
	}
	for _, c := range b.Categories {
		assert.Equal(t, want[c.Name], c.Amount, "category %s", c.Name)
	}
	assert.Equal(t, float64(2020), b.Total)
}

func TestCalculateCategoryOrder(t *testing.T) {
	b := Calculate("japan", 3, Travelers{Adults: 1})
	require.Len(t, b.Categories, 5)

	order := []string{"Accommodation", "Food", "Transport", "Activities", "Miscellaneous"}
	for i, c := range b.Categories {
		assert.Equal(t, order[i], c.Name)
	}
}

func TestCalculateUnknownDestinationFallsBackToDefault(t *testing.T) {
	unknown := Calculate("atlantis", 5, Travelers{Adults: 2, Children: 1})
	fallback := Calculate("france", 5, Travelers{Adults: 2, Children: 1})

	assert.Equal(t, fallback, unknown)
}

func TestCalculateNormalizesDestinationKey(t *testing.T) {
	assert.Equal(t, Calculate("thailand", 4, Travelers{Adults: 2}), Calculate("  THAI LAND  ", 4, Travelers{Adults: 2}))
	assert.Equal(t, "THB", Calculate("Thailand", 4, Travelers{Adults: 1}).Currency)
}

func TestCalculateZeroGuard(t *testing.T) {
	cases := []struct {
		name      string
		duration  int
		travelers Travelers
	}{
		{"zero duration", 0, Travelers{Adults: 2}},
		{"negative duration", -3, Travelers{Adults: 2}},
		{"no travelers", 7, Travelers{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Calculate("japan", tc.duration, tc.travelers)
			assert.Equal(t, float64(0), b.Total)
			assert.Empty(t, b.Categories)
			assert.Equal(t, "EUR", b.Currency, "empty breakdown carries the default currency")
		})
	}
}

func TestCalculateScalesLinearlyWithAdults(t *testing.T) {
	one := Calculate("usa", 6, Travelers{Adults: 1})
	two := Calculate("usa", 6, Travelers{Adults: 2})

	for i, c := range one.Categories {
		doubled := two.Categories[i]
		if c.Kind == Fixed {
			assert.Equal(t, c.Amount, doubled.Amount, "fixed category %s must not scale", c.Name)
			continue
		}
		assert.Equal(t, c.Amount*2, doubled.Amount, "category %s", c.Name)
	}
}

func TestCalculateChildSurcharge(t *testing.T) {
	// 2 children at 50% of the adult rate equal one extra adult on the
	// scaled categories; fixed categories are unaffected.
	adultsOnly := Calculate("france", 4, Travelers{Adults: 2})
	withKids := Calculate("france", 4, Travelers{Adults: 2, Children: 2})

	for i, c := range adultsOnly.Categories {
		got := withKids.Categories[i]
		switch c.Kind {
		case Fixed:
			assert.Equal(t, c.Amount, got.Amount)
		case PerNight:
			assert.Equal(t, c.Amount+120*0.5*3*2, got.Amount)
		case PerDay:
			perDayRate := c.Amount / (4 * 2)
			assert.Equal(t, c.Amount+perDayRate*0.5*4*2, got.Amount)
		}
	}
}

func TestTotalRoundsUnroundedSum(t *testing.T) {
	// The grand total is rounded once over the raw sum; category amounts are
	// rounded independently. The two passes may legitimately diverge by up to
	// one unit per category.
	for _, dest := range []string{"france", "japan", "thailand", "usa"} {
		for duration := 1; duration <= 10; duration++ {
			b := Calculate(dest, duration, Travelers{Adults: 3, Children: 1})

			var roundedSum float64
			for _, c := range b.Categories {
				roundedSum += c.Amount
			}
			diff := math.Abs(b.Total - roundedSum)
			assert.LessOrEqual(t, diff, float64(len(b.Categories)),
				"dest=%s duration=%d", dest, duration)
		}
	}
}
