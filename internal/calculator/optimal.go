package calculator

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"fareadvisor/internal/model"
)

// FindOptimalOption evaluates every option whose price is present in
// the snapshot and ranks them ascending by monthly cost. Omitted
// series tiers are excluded from ranking, never synthesized. Ties
// resolve to the option appearing earlier in the canonical order;
// the sort is stable over that order.
func FindOptimalOption(tripsPerWeek float64, snap *model.PriceSnapshot) (*model.OptimalResult, error) {
	results := make(map[model.OptionKey]model.CostResult)
	var ranking []model.RankedOption

	add := func(key model.OptionKey, res *model.CostResult) {
		results[key] = *res
		ranking = append(ranking, model.RankedOption{Key: key, MonthlyCost: res.MonthlyCost})
	}

	// Evaluate in canonical order so the stable sort below resolves
	// exact-cost ties to the earlier option.
	for _, key := range model.CanonicalOrder {
		switch key {
		case model.OptionSingle:
			if snap.Single > 0 {
				res, err := CalculateSingleTicketCost(tripsPerWeek, snap.Single)
				if err != nil {
					return nil, err
				}
				add(key, res)
			}
		case model.OptionSeason:
			if snap.Season.Price > 0 {
				res, err := CalculateSeasonTicketCost(snap.Season.Price)
				if err != nil {
					return nil, err
				}
				add(key, res)
			}
		case model.OptionContinuousMonthly:
			if snap.ContinuousMonthly > 0 {
				res, err := CalculateContinuousMonthlyTicketCost(snap.Monthly, snap.ContinuousMonthly, 0)
				if err != nil {
					return nil, err
				}
				add(key, res)
			}
		case model.OptionSeries10:
			if snap.Series10 != nil {
				res, err := CalculateSeriesTicketCost(tripsPerWeek, *snap.Series10)
				if err != nil {
					return nil, err
				}
				add(key, res)
			}
		case model.OptionSeries20:
			if snap.Series20 != nil {
				res, err := CalculateSeriesTicketCost(tripsPerWeek, *snap.Series20)
				if err != nil {
					return nil, err
				}
				add(key, res)
			}
		}
	}

	if len(ranking) == 0 {
		return nil, errors.New("no priced options in snapshot")
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].MonthlyCost < ranking[j].MonthlyCost
	})

	return &model.OptimalResult{
		Results: results,
		Ranking: ranking,
		Optimal: ranking[0].Key,
	}, nil
}

// noTripsReasoning is the fixed reasoning used when the rider plans
// no trips; the cost comparison is bypassed entirely.
const noTripsReasoning = "no trips planned"

// GetTicketRecommendation is the simplified two-way comparison
// between pay-per-ride and one flat-rate option.
func GetTicketRecommendation(tripsPerWeek, singleFare, flatFare float64) (*model.Recommendation, error) {
	if tripsPerWeek < 0 {
		return nil, errors.New("trips per week must not be negative")
	}
	if singleFare <= 0 {
		return nil, errors.New("single fare must be positive")
	}
	if flatFare <= 0 {
		return nil, errors.New("flat fare must be positive")
	}

	breakEven := int(math.Ceil(flatFare / singleFare))
	if tripsPerWeek == 0 {
		return &model.Recommendation{
			Recommended:    model.OptionSingle,
			BreakEvenTrips: breakEven,
			Reasoning:      noTripsReasoning,
		}, nil
	}

	singleRes, err := CalculateSingleTicketCost(tripsPerWeek, singleFare)
	if err != nil {
		return nil, err
	}
	flatRes, err := CalculateMonthlyTicketCost(flatFare)
	if err != nil {
		return nil, err
	}

	rec := &model.Recommendation{BreakEvenTrips: breakEven}
	if singleRes.MonthlyCost <= flatRes.MonthlyCost {
		rec.Recommended = model.OptionSingle
		rec.MonthlySavings = Round2(flatRes.MonthlyCost - singleRes.MonthlyCost)
		rec.Reasoning = fmt.Sprintf("pay per ride costs €%.2f/month against €%.2f/month flat; below %d trips/month single tickets win",
			singleRes.MonthlyCost, flatRes.MonthlyCost, breakEven)
	} else {
		rec.Recommended = model.OptionSeason
		rec.MonthlySavings = Round2(singleRes.MonthlyCost - flatRes.MonthlyCost)
		rec.Reasoning = fmt.Sprintf("flat rate costs €%.2f/month against €%.2f/month pay per ride; from %d trips/month the flat rate wins",
			flatRes.MonthlyCost, singleRes.MonthlyCost, breakEven)
	}
	return rec, nil
}
