package model

// OptionKey identifies one ticket option in a comparison.
type OptionKey string

const (
	OptionSingle            OptionKey = "single"
	OptionSeason            OptionKey = "season"
	OptionContinuousMonthly OptionKey = "continuousMonthly"
	OptionSeries10          OptionKey = "series10"
	OptionSeries20          OptionKey = "series20"
)

// CanonicalOrder is the fixed option ordering used to break exact
// cost ties: the earlier option wins. The discounted subscription
// outranks the plain 30-day ticket at equal cost.
var CanonicalOrder = []OptionKey{
	OptionSingle,
	OptionContinuousMonthly,
	OptionSeason,
	OptionSeries10,
	OptionSeries20,
}

// CostResult is the outcome of evaluating one ticket option for a
// given trip rate. Transient, recomputed on every call.
type CostResult struct {
	MonthlyCost float64 `json:"monthlyCost"`
	AnnualCost  float64 `json:"annualCost"`
	Calculation string  `json:"calculation"`

	// Multi-ride options only.
	TicketsNeeded  int    `json:"ticketsNeeded,omitempty"`
	JourneysWasted int    `json:"journeysWasted,omitempty"`
	WasteWarning   string `json:"wasteWarning,omitempty"`
}

// RankedOption pairs an option with its monthly cost for sorting.
type RankedOption struct {
	Key         OptionKey `json:"key"`
	MonthlyCost float64   `json:"monthlyCost"`
}

// OptimalResult holds every computed option plus the cheapest key.
type OptimalResult struct {
	Results map[OptionKey]CostResult `json:"results"`
	Ranking []RankedOption           `json:"ranking"`
	Optimal OptionKey                `json:"optimal"`
}

// Recommendation is the simplified two-way comparison between
// pay-per-ride and one flat-rate option.
type Recommendation struct {
	Recommended    OptionKey `json:"recommended"`
	BreakEvenTrips int       `json:"breakEvenTrips"`
	MonthlySavings float64   `json:"monthlySavings"`
	Reasoning      string    `json:"reasoning"`
}

// Comparison is the full orchestrated output returned to callers.
type Comparison struct {
	TripsPerWeek   float64         `json:"tripsPerWeek"`
	ZoneLetters    string          `json:"zoneLetters"`
	Snapshot       *PriceSnapshot  `json:"snapshot"`
	Optimal        *OptimalResult  `json:"optimal"`
	Recommendation *Recommendation `json:"recommendation"`
}
