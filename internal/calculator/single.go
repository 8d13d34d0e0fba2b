package calculator

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"fareadvisor/internal/model"
)

// NoTripsCalculation is the fixed explanation used when the rider
// plans no trips; no arithmetic is performed in that case.
const NoTripsCalculation = "no trips planned, no ticket costs"

// highTripRate is the advisory threshold above which pay-per-ride is
// almost certainly the wrong choice.
const highTripRate = 100

// CalculateSingleTicketCost prices pay-per-ride travel. Annual cost
// is computed from the annual trip count directly, not by scaling the
// monthly figure, because ticket purchases are granular events.
func CalculateSingleTicketCost(tripsPerWeek, fare float64) (*model.CostResult, error) {
	if tripsPerWeek < 0 {
		return nil, errors.New("trips per week must not be negative")
	}
	if fare <= 0 {
		return nil, errors.New("fare must be positive")
	}
	if tripsPerWeek == 0 {
		return &model.CostResult{Calculation: NoTripsCalculation}, nil
	}
	if tripsPerWeek > highTripRate {
		logger.Warn("very high trip rate, consider a flat-rate ticket",
			zap.Float64("trips_per_week", tripsPerWeek))
	}

	perMonth := tripsPerMonth(tripsPerWeek)
	perYear := tripsPerYear(tripsPerWeek)
	monthly := Round2(float64(perMonth) * fare)
	annual := Round2(float64(perYear) * fare)

	return &model.CostResult{
		MonthlyCost: monthly,
		AnnualCost:  annual,
		Calculation: fmt.Sprintf("%s trips/week × 4.33 weeks/month = %d trips/month × €%.2f = €%.2f/month",
			formatTrips(tripsPerWeek), perMonth, fare, monthly),
	}, nil
}
