package budget

import (
	"math"
	"strings"
	"unicode"
)

// Travelers is the party size for a trip.
type Travelers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// CategoryAmount is one line of a computed breakdown. Amount is rounded to
// the nearest whole unit for display.
type CategoryAmount struct {
	Name   string   `json:"name"`
	Amount float64  `json:"amount"`
	Kind   RuleKind `json:"type"`
}

// Breakdown is an itemized budget estimate.
//
// Total is the rounded sum of the unrounded category amounts, while each
// category amount is rounded on its own. The two rounding passes can differ
// by up to one unit per category; callers must not recompute Total from the
// listed amounts.
type Breakdown struct {
	Currency   string           `json:"currency"`
	Total      float64          `json:"total"`
	Categories []CategoryAmount `json:"categories"`
}

// Calculate computes a budget breakdown for a destination, a trip duration in
// whole days and a traveler party. Pure and deterministic; a zero duration or
// an empty party yields an empty breakdown rather than an error.
func Calculate(destination string, duration int, travelers Travelers) Breakdown {
	if duration <= 0 || (travelers.Adults <= 0 && travelers.Children <= 0) {
		return Breakdown{
			Currency:   costProfiles[defaultDestination].Currency,
			Total:      0,
			Categories: []CategoryAmount{},
		}
	}

	profile := ProfileFor(destination)
	breakdown := Breakdown{
		Currency:   profile.Currency,
		Categories: make([]CategoryAmount, 0, len(profile.Categories)),
	}

	var total float64
	for _, rule := range profile.Categories {
		amount := adultAmount(rule, duration, travelers.Adults)
		if travelers.Children > 0 {
			amount += childSurcharge(rule, duration, travelers.Children)
		}

		breakdown.Categories = append(breakdown.Categories, CategoryAmount{
			Name:   displayName(rule.Name),
			Amount: math.Round(amount),
			Kind:   rule.Kind,
		})
		total += amount
	}

	breakdown.Total = math.Round(total)
	return breakdown
}

func adultAmount(rule CategoryRule, duration, adults int) float64 {
	switch rule.Kind {
	case PerNight:
		// nights are one fewer than days
		return rule.Rate * float64(duration-1) * float64(adults)
	case PerDay:
		return rule.Rate * float64(duration) * float64(adults)
	case Fixed:
		return rule.Rate
	default:
		return 0
	}
}

// childSurcharge charges children at half the adult unit rate over the same
// duration factor. Fixed categories carry no child surcharge.
func childSurcharge(rule CategoryRule, duration, children int) float64 {
	switch rule.Kind {
	case PerNight:
		return rule.Rate * 0.5 * float64(duration-1) * float64(children)
	case PerDay:
		return rule.Rate * 0.5 * float64(duration) * float64(children)
	default:
		return 0
	}
}

// displayName upper-cases only the first character of a category key.
func displayName(key string) string {
	if key == "" {
		return key
	}
	r := []rune(key)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// normalizeDestination case-folds the key and strips all whitespace so that
// "New  Zealand" and "newzealand" resolve to the same profile.
func normalizeDestination(destination string) string {
	return strings.ToLower(strings.Join(strings.Fields(destination), ""))
}
