package calculator

import (
	"testing"

	"fareadvisor/internal/model"
)

func TestCalculateSeriesTicketCost_FullUsage(t *testing.T) {
	tier := model.SeriesTier{Price: 12.50, Journeys: 10, ValidityDays: 14}
	res, err := CalculateSeriesTicketCost(5, tier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 22 trips/month, all 10 journeys usable within 14 days at 5/week.
	if res.TicketsNeeded != 3 {
		t.Errorf("TicketsNeeded = %d, want 3", res.TicketsNeeded)
	}
	if res.MonthlyCost != 37.50 {
		t.Errorf("MonthlyCost = %.2f, want 37.50", res.MonthlyCost)
	}
	if res.JourneysWasted != 0 {
		t.Errorf("JourneysWasted = %d, want 0", res.JourneysWasted)
	}
	if res.WasteWarning != "" {
		t.Errorf("unexpected waste warning: %q", res.WasteWarning)
	}
	// 260 yearly trips → 26 tickets, not 12 × monthly tickets.
	if res.AnnualCost != 325.00 {
		t.Errorf("AnnualCost = %.2f, want 325.00", res.AnnualCost)
	}
}

func TestCalculateSeriesTicketCost_Wastage(t *testing.T) {
	tier := model.SeriesTier{Price: 12.50, Journeys: 10, ValidityDays: 14}
	res, err := CalculateSeriesTicketCost(1, tier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Only 2 journeys usable per 14-day window at 1 trip/week;
	// 5 trips/month need 3 tickets, wasting 24 of 30 journeys.
	if res.TicketsNeeded != 3 {
		t.Errorf("TicketsNeeded = %d, want 3", res.TicketsNeeded)
	}
	if res.JourneysWasted != 24 {
		t.Errorf("JourneysWasted = %d, want 24", res.JourneysWasted)
	}
	if res.WasteWarning == "" {
		t.Error("expected waste warning at 80% wastage")
	}
}

func TestCalculateSeriesTicketCost_WasteThresholdBoundary(t *testing.T) {
	// 8 trips/week, 7-day validity: 8 of 10 journeys usable,
	// 35 trips/month → 5 tickets, 10 of 50 journeys wasted = exactly 0.20.
	tier := model.SeriesTier{Price: 12.50, Journeys: 10, ValidityDays: 7}
	res, err := CalculateSeriesTicketCost(8, tier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.JourneysWasted != 10 {
		t.Fatalf("JourneysWasted = %d, want 10", res.JourneysWasted)
	}
	if res.WasteWarning == "" {
		t.Error("waste ratio of exactly 0.20 must trigger the warning")
	}

	// Slightly better usage stays below the threshold: 9 usable,
	// 37 trips/month → 5 tickets, 5 of 50 wasted = 0.10.
	res, err = CalculateSeriesTicketCost(8.5, tier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.JourneysWasted != 5 {
		t.Fatalf("JourneysWasted = %d, want 5", res.JourneysWasted)
	}
	if res.WasteWarning != "" {
		t.Errorf("waste ratio of 0.10 must not trigger the warning, got %q", res.WasteWarning)
	}
}

func TestCalculateSeriesTicketCost_AnnualNotMonthlyTimes12(t *testing.T) {
	tier := model.SeriesTier{Price: 12.50, Journeys: 10, ValidityDays: 7}
	res, err := CalculateSeriesTicketCost(8, tier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 416 yearly trips / 8 usable = 52 tickets → €650.00; the naive
	// scaling would give 5 × €12.50 × 12 = €750.00.
	if res.AnnualCost != 650.00 {
		t.Errorf("AnnualCost = %.2f, want 650.00", res.AnnualCost)
	}
	if res.AnnualCost == res.MonthlyCost*12 {
		t.Error("annual cost must come from the annual trip count, not monthly × 12")
	}
}

func TestCalculateSeriesTicketCost_ZeroTrips(t *testing.T) {
	tier := model.SeriesTier{Price: 12.50, Journeys: 10, ValidityDays: 14}
	res, err := CalculateSeriesTicketCost(0, tier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MonthlyCost != 0 || res.AnnualCost != 0 || res.TicketsNeeded != 0 {
		t.Errorf("expected all-zero result, got %+v", res)
	}
	if res.Calculation != NoTripsCalculation {
		t.Errorf("Calculation = %q, want sentinel", res.Calculation)
	}
}

func TestCalculateSeriesTicketCost_InvalidInputs(t *testing.T) {
	good := model.SeriesTier{Price: 12.50, Journeys: 10, ValidityDays: 14}
	tests := []struct {
		name  string
		trips float64
		tier  model.SeriesTier
	}{
		{"negative trips", -1, good},
		{"zero price", 5, model.SeriesTier{Price: 0, Journeys: 10, ValidityDays: 14}},
		{"zero journeys", 5, model.SeriesTier{Price: 12.50, Journeys: 0, ValidityDays: 14}},
		{"zero validity", 5, model.SeriesTier{Price: 12.50, Journeys: 10, ValidityDays: 0}},
		{"negative price", 5, model.SeriesTier{Price: -1, Journeys: 10, ValidityDays: 14}},
	}
	for _, tt := range tests {
		if _, err := CalculateSeriesTicketCost(tt.trips, tt.tier); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestCalculateSeriesTicketCost_WastedNeverNegative(t *testing.T) {
	for trips := 0.5; trips <= 30; trips += 0.5 {
		for _, tier := range []model.SeriesTier{
			{Price: 12.50, Journeys: 10, ValidityDays: 14},
			{Price: 54.60, Journeys: 20, ValidityDays: 30},
			{Price: 5.00, Journeys: 2, ValidityDays: 1},
		} {
			res, err := CalculateSeriesTicketCost(trips, tier)
			if err != nil {
				t.Fatalf("trips %.1f tier %+v: %v", trips, tier, err)
			}
			if res.JourneysWasted < 0 {
				t.Errorf("trips %.1f tier %+v: negative wastage %d", trips, tier, res.JourneysWasted)
			}
		}
	}
}
