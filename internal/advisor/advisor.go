// Package advisor orchestrates the price normalizer and the cost
// models into a ranked ticket comparison for one rider.
package advisor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"fareadvisor/internal/calculator"
	"fareadvisor/internal/fare"
	"fareadvisor/internal/model"
)

// Advisor produces ticket comparisons.
type Advisor struct {
	normalizer *fare.Normalizer
	logger     *zap.Logger
}

// New creates an advisor over the given normalizer.
func New(normalizer *fare.Normalizer, logger *zap.Logger) *Advisor {
	return &Advisor{normalizer: normalizer, logger: logger}
}

// Compare fetches the price snapshot for the rider's zone and ranks
// every available ticket option, including the simplified two-way
// break-even between pay-per-ride and the 30-day ticket.
func (a *Advisor) Compare(ctx context.Context, tripsPerWeek float64, zoneLetters string, customerGroup int, municipality string) (*model.Comparison, error) {
	if tripsPerWeek < 0 {
		return nil, fmt.Errorf("trips per week must not be negative")
	}
	zone, err := model.ZoneCode(zoneLetters)
	if err != nil {
		return nil, err
	}

	snap, err := a.normalizer.FetchTicketPrices(ctx, zone, customerGroup, municipality)
	if err != nil {
		return nil, err
	}

	optimal, err := calculator.FindOptimalOption(tripsPerWeek, snap)
	if err != nil {
		return nil, fmt.Errorf("rank options: %w", err)
	}
	recommendation, err := calculator.GetTicketRecommendation(tripsPerWeek, snap.Single, snap.Monthly)
	if err != nil {
		return nil, fmt.Errorf("break-even comparison: %w", err)
	}

	a.logger.Info("comparison done",
		zap.String("zone", zoneLetters),
		zap.Float64("trips_per_week", tripsPerWeek),
		zap.String("optimal", string(optimal.Optimal)),
		zap.Float64("monthly_cost", optimal.Results[optimal.Optimal].MonthlyCost))

	return &model.Comparison{
		TripsPerWeek:   tripsPerWeek,
		ZoneLetters:    zoneLetters,
		Snapshot:       snap,
		Optimal:        optimal,
		Recommendation: recommendation,
	}, nil
}

// Fixed user-visible messages per error kind. The orchestrator
// displays these verbatim; anything else is surfaced as-is.
const (
	msgNetwork         = "Could not reach the fare service. Check your connection and try again."
	msgCORS            = "The fare service rejected the request due to a cross-origin policy."
	msgInvalidResponse = "The fare service returned data that could not be understood."
	msgRateLimit       = "Too many requests to the fare service. Wait a moment and try again."
)

// UserMessage maps a fare-taxonomy error onto its fixed display
// message. Errors outside the taxonomy (input validation) are
// returned unchanged; they are not meant for raw display.
func UserMessage(err error) string {
	kind, ok := fare.ErrorKind(err)
	if !ok {
		return err.Error()
	}
	switch kind {
	case fare.KindCORS:
		return msgCORS
	case fare.KindInvalidResponse:
		return msgInvalidResponse
	case fare.KindRateLimit:
		return msgRateLimit
	default:
		return msgNetwork
	}
}
