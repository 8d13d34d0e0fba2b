package calculator

import (
	"errors"
	"fmt"
	"math"

	"fareadvisor/internal/model"
)

// WasteWarningThreshold is the hard waste ratio at or above which a
// series result carries a warning. Exactly 0.20 triggers it.
const WasteWarningThreshold = 0.20

// WasteWarningText is the fixed warning attached to wasteful series
// options.
const WasteWarningText = "a large share of the bundled journeys would expire unused at this travel rate"

// CalculateSeriesTicketCost prices a multi-ride pass tier, accounting
// for journeys that cannot realistically be used within the tier's
// validity window at the given trip rate.
func CalculateSeriesTicketCost(tripsPerWeek float64, tier model.SeriesTier) (*model.CostResult, error) {
	if tripsPerWeek < 0 {
		return nil, errors.New("trips per week must not be negative")
	}
	if tier.Price <= 0 {
		return nil, errors.New("tier price must be positive")
	}
	if tier.Journeys <= 0 {
		return nil, errors.New("tier journeys must be positive")
	}
	if tier.ValidityDays <= 0 {
		return nil, errors.New("tier validity days must be positive")
	}
	if tripsPerWeek == 0 {
		return &model.CostResult{Calculation: NoTripsCalculation}, nil
	}

	// Journeys consumable within one validity window; floored at 1.
	usable := int(math.Ceil(tripsPerWeek * float64(tier.ValidityDays) / 7))
	if usable > tier.Journeys {
		usable = tier.Journeys
	}
	if usable < 1 {
		usable = 1
	}

	perMonth := tripsPerMonth(tripsPerWeek)
	ticketsNeeded := ceilDiv(perMonth, usable)
	monthly := Round2(float64(ticketsNeeded) * tier.Price)

	wasted := ticketsNeeded*tier.Journeys - ticketsNeeded*usable
	if wasted < 0 {
		wasted = 0
	}

	result := &model.CostResult{
		MonthlyCost:    monthly,
		TicketsNeeded:  ticketsNeeded,
		JourneysWasted: wasted,
		Calculation: fmt.Sprintf("%d × %d-journey tickets at €%.2f (%d journeys usable per ticket) = €%.2f/month",
			ticketsNeeded, tier.Journeys, tier.Price, usable, monthly),
	}
	if float64(wasted)/float64(ticketsNeeded*tier.Journeys) >= WasteWarningThreshold {
		result.WasteWarning = WasteWarningText
	}

	// Annual cost re-ceils against the annual trip count rather than
	// scaling the monthly figure by 12.
	ticketsPerYear := ceilDiv(tripsPerYear(tripsPerWeek), usable)
	result.AnnualCost = Round2(float64(ticketsPerYear) * tier.Price)

	return result, nil
}
