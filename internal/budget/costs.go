package budget

// RuleKind describes how a category cost scales with the trip.
type RuleKind string

const (
	PerNight RuleKind = "perNight" // rate per night per adult
	PerDay   RuleKind = "perDay"   // rate per day per adult
	Fixed    RuleKind = "fixed"    // flat amount for the whole trip
)

// CategoryRule is one cost line of a destination profile.
type CategoryRule struct {
	Name string
	Kind RuleKind
	Rate float64
}

// CostProfile holds the per-destination cost rules. Category order is
// significant: breakdowns list categories in profile order.
type CostProfile struct {
	Currency   string
	Categories []CategoryRule
}

// defaultDestination is used when a destination has no profile of its own.
const defaultDestination = "france"

// costProfiles is read-only process-wide data; it is never mutated after init.
var costProfiles = map[string]CostProfile{
	"france": {
		Currency: "EUR",
		Categories: []CategoryRule{
			{Name: "accommodation", Kind: PerNight, Rate: 120},
			{Name: "food", Kind: PerDay, Rate: 60},
			{Name: "transport", Kind: Fixed, Rate: 300},
			{Name: "activities", Kind: PerDay, Rate: 40},
			{Name: "miscellaneous", Kind: Fixed, Rate: 200},
		},
	},
	"japan": {
		Currency: "JPY",
		Categories: []CategoryRule{
			{Name: "accommodation", Kind: PerNight, Rate: 15000},
			{Name: "food", Kind: PerDay, Rate: 5000},
			{Name: "transport", Kind: Fixed, Rate: 35000},
			{Name: "activities", Kind: PerDay, Rate: 8000},
			{Name: "miscellaneous", Kind: Fixed, Rate: 15000},
		},
	},
	"thailand": {
		Currency: "THB",
		Categories: []CategoryRule{
			{Name: "accommodation", Kind: PerNight, Rate: 1500},
			{Name: "food", Kind: PerDay, Rate: 800},
			{Name: "transport", Kind: Fixed, Rate: 5000},
			{Name: "activities", Kind: PerDay, Rate: 1200},
			{Name: "miscellaneous", Kind: Fixed, Rate: 3000},
		},
	},
	"usa": {
		Currency: "USD",
		Categories: []CategoryRule{
			{Name: "accommodation", Kind: PerNight, Rate: 150},
			{Name: "food", Kind: PerDay, Rate: 70},
			{Name: "transport", Kind: Fixed, Rate: 400},
			{Name: "activities", Kind: PerDay, Rate: 60},
			{Name: "miscellaneous", Kind: Fixed, Rate: 250},
		},
	},
}

// ProfileFor resolves a destination to its cost profile. Unknown destinations
// fall back to the default profile instead of failing.
func ProfileFor(destination string) CostProfile {
	if p, ok := costProfiles[normalizeDestination(destination)]; ok {
		return p
	}
	return costProfiles[defaultDestination]
}
