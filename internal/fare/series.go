package fare

import (
	"math"

	"fareadvisor/internal/model"
)

// seriesTable holds the multi-ride pass tiers per zone code. The
// upstream API has no endpoint for series products, so these are
// maintained by hand. Index 0 is the 10-journey tier, index 1 the
// 20-journey tier.
var seriesTable = map[int][2]model.SeriesTier{
	11: {{Price: 28.70, Journeys: 10, ValidityDays: 14}, {Price: 54.60, Journeys: 20, ValidityDays: 30}},
	12: {{Price: 39.20, Journeys: 10, ValidityDays: 14}, {Price: 74.40, Journeys: 20, ValidityDays: 30}},
	13: {{Price: 51.30, Journeys: 10, ValidityDays: 14}, {Price: 97.40, Journeys: 20, ValidityDays: 30}},
	21: {{Price: 28.70, Journeys: 10, ValidityDays: 14}, {Price: 54.60, Journeys: 20, ValidityDays: 30}},
	22: {{Price: 39.20, Journeys: 10, ValidityDays: 14}, {Price: 74.40, Journeys: 20, ValidityDays: 30}},
	31: {{Price: 28.70, Journeys: 10, ValidityDays: 14}, {Price: 54.60, Journeys: 20, ValidityDays: 30}},
	40: {{Price: 25.20, Journeys: 10, ValidityDays: 14}, {Price: 47.90, Journeys: 20, ValidityDays: 30}},
}

// SeriesTicketOptions returns the multi-ride tiers for a zone code.
// Pure lookup: an unknown zone yields an empty list, never an error.
func SeriesTicketOptions(zone int) []model.SeriesTier {
	tiers, ok := seriesTable[zone]
	if !ok {
		return nil
	}
	return []model.SeriesTier{tiers[0], tiers[1]}
}

// AvailableSeriesTickets filters the zone's tiers to those where the
// rider can realistically use at least half the bundled journeys
// within one validity window. Passes that would mostly go to waste
// are not offered.
func AvailableSeriesTickets(tripsPerWeek float64, zone int) []model.SeriesTier {
	if tripsPerWeek < 0 {
		return nil
	}
	var usable []model.SeriesTier
	for _, tier := range SeriesTicketOptions(zone) {
		tripsInWindow := math.Floor(tripsPerWeek * float64(tier.ValidityDays) / 7)
		needed := math.Ceil(float64(tier.Journeys) * 0.5)
		if tripsInWindow >= needed {
			usable = append(usable, tier)
		}
	}
	return usable
}
