package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"fareadvisor/internal/model"
)

// DefaultContinuousDiscount is the assumed recurring-subscription
// discount when no explicit fare is known.
const DefaultContinuousDiscount = 0.05

// CalculateMonthlyTicketCost prices a fixed monthly pass.
func CalculateMonthlyTicketCost(fare float64) (*model.CostResult, error) {
	if fare <= 0 {
		return nil, errors.New("fare must be positive")
	}
	monthly := Round2(fare)
	annual := Round2(fare * 12)
	return &model.CostResult{
		MonthlyCost: monthly,
		AnnualCost:  annual,
		Calculation: fmt.Sprintf("monthly ticket: €%.2f/month, €%.2f/year", monthly, annual),
	}, nil
}

// CalculateContinuousMonthlyTicketCost prices the recurring
// subscription. A positive explicit fare is used verbatim and always
// takes precedence over the discount, even when a non-default
// discountRatio is supplied. discountRatio <= 0 means the default.
func CalculateContinuousMonthlyTicketCost(monthlyFare, explicitFare, discountRatio float64) (*model.CostResult, error) {
	if explicitFare > 0 {
		monthly := Round2(explicitFare)
		annual := Round2(explicitFare * 12)
		return &model.CostResult{
			MonthlyCost: monthly,
			AnnualCost:  annual,
			Calculation: fmt.Sprintf("fixed price: €%.2f/month", monthly),
		}, nil
	}
	if monthlyFare <= 0 {
		return nil, errors.New("monthly fare must be positive")
	}
	if discountRatio <= 0 {
		discountRatio = DefaultContinuousDiscount
	}
	monthly, _ := decimal.NewFromFloat(monthlyFare).
		Mul(decimal.NewFromFloat(1 - discountRatio)).
		Round(2).Float64()
	annual := Round2(monthly * 12)
	return &model.CostResult{
		MonthlyCost: monthly,
		AnnualCost:  annual,
		Calculation: fmt.Sprintf("%s%% discount on €%.2f monthly ticket = €%.2f/month",
			formatTrips(discountRatio*100), monthlyFare, monthly),
	}, nil
}

// CalculateSeasonTicketCost prices the flat 30-day season ticket.
func CalculateSeasonTicketCost(fare float64) (*model.CostResult, error) {
	if fare <= 0 {
		return nil, errors.New("fare must be positive")
	}
	monthly := Round2(fare)
	annual := Round2(fare * 12)
	return &model.CostResult{
		MonthlyCost: monthly,
		AnnualCost:  annual,
		Calculation: fmt.Sprintf("30-day ticket: €%.2f/month, €%.2f/year", monthly, annual),
	}, nil
}
