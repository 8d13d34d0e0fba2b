package calculator

import (
	"testing"

	"fareadvisor/internal/model"
)

func snapshotFixture() *model.PriceSnapshot {
	return &model.PriceSnapshot{
		Single:            3.20,
		Series10:          &model.SeriesTier{Price: 12.50, Journeys: 10, ValidityDays: 14},
		Monthly:           107.70,
		ContinuousMonthly: 58.00,
		Season:            model.SeasonFare{Price: 107.70, DurationDays: 30, Kind: "season"},
	}
}

func TestFindOptimalOption_EndToEnd(t *testing.T) {
	res, err := FindOptimalOption(5, snapshotFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Optimal != model.OptionSeries10 {
		t.Errorf("Optimal = %s, want series10", res.Optimal)
	}
	if got := res.Results[model.OptionSeries10].MonthlyCost; got != 37.50 {
		t.Errorf("series10 monthly = %.2f, want 37.50", got)
	}
	if len(res.Ranking) != 4 {
		t.Fatalf("expected 4 ranked options, got %d", len(res.Ranking))
	}
}

func TestFindOptimalOption_NeverExceedsMinimum(t *testing.T) {
	res, err := FindOptimalOption(5, snapshotFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	min := res.Ranking[0].MonthlyCost
	for _, r := range res.Ranking {
		if r.MonthlyCost < min {
			t.Errorf("ranking head is not the minimum: %s at %.2f < %.2f", r.Key, r.MonthlyCost, min)
		}
	}
	if res.Results[res.Optimal].MonthlyCost != min {
		t.Errorf("optimal option cost %.2f differs from minimum %.2f", res.Results[res.Optimal].MonthlyCost, min)
	}
}

func TestFindOptimalOption_TieContinuousBeatsSeason(t *testing.T) {
	snap := &model.PriceSnapshot{
		Monthly:           60.00,
		ContinuousMonthly: 60.00,
		Season:            model.SeasonFare{Price: 60.00, DurationDays: 30, Kind: "season"},
	}
	res, err := FindOptimalOption(5, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Optimal != model.OptionContinuousMonthly {
		t.Errorf("Optimal = %s, want continuousMonthly on an exact tie with season", res.Optimal)
	}
}

func TestFindOptimalOption_TieSingleBeatsSeries(t *testing.T) {
	// 22 trips/month × €1.50 = €33.00 equals 3 × €11.00 series tickets.
	snap := &model.PriceSnapshot{
		Single:   1.50,
		Series10: &model.SeriesTier{Price: 11.00, Journeys: 10, ValidityDays: 14},
	}
	res, err := FindOptimalOption(5, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	single := res.Results[model.OptionSingle].MonthlyCost
	series := res.Results[model.OptionSeries10].MonthlyCost
	if single != series {
		t.Fatalf("fixture broken: single %.2f != series10 %.2f", single, series)
	}
	if res.Optimal != model.OptionSingle {
		t.Errorf("Optimal = %s, want single on an exact tie with series10", res.Optimal)
	}
}

func TestFindOptimalOption_OmittedTiersExcluded(t *testing.T) {
	snap := &model.PriceSnapshot{Single: 3.20}
	res, err := FindOptimalOption(5, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Ranking) != 1 || res.Optimal != model.OptionSingle {
		t.Errorf("expected only single to be ranked, got %+v", res.Ranking)
	}
	if _, ok := res.Results[model.OptionSeries10]; ok {
		t.Error("missing tier must not be synthesized")
	}
}

func TestFindOptimalOption_EmptySnapshot(t *testing.T) {
	if _, err := FindOptimalOption(5, &model.PriceSnapshot{}); err == nil {
		t.Error("expected error for a snapshot with no priced options")
	}
}

func TestFindOptimalOption_PropagatesValidationError(t *testing.T) {
	if _, err := FindOptimalOption(-1, snapshotFixture()); err == nil {
		t.Error("sub-calculation precondition violations must propagate")
	}
}

func TestGetTicketRecommendation(t *testing.T) {
	rec, err := GetTicketRecommendation(5, 3.20, 107.70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.BreakEvenTrips != 34 {
		t.Errorf("BreakEvenTrips = %d, want 34", rec.BreakEvenTrips)
	}
	if rec.Recommended != model.OptionSingle {
		t.Errorf("Recommended = %s, want single at 5 trips/week", rec.Recommended)
	}
	if rec.MonthlySavings != 37.30 {
		t.Errorf("MonthlySavings = %.2f, want 37.30", rec.MonthlySavings)
	}

	rec, err = GetTicketRecommendation(10, 3.20, 107.70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Recommended != model.OptionSeason {
		t.Errorf("Recommended = %s, want season at 10 trips/week", rec.Recommended)
	}
	if rec.MonthlySavings != 33.10 {
		t.Errorf("MonthlySavings = %.2f, want 33.10", rec.MonthlySavings)
	}
}

func TestGetTicketRecommendation_ZeroTrips(t *testing.T) {
	rec, err := GetTicketRecommendation(0, 3.20, 107.70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Recommended != model.OptionSingle {
		t.Errorf("Recommended = %s, want single", rec.Recommended)
	}
	if rec.MonthlySavings != 0 {
		t.Errorf("MonthlySavings = %.2f, want 0", rec.MonthlySavings)
	}
	if rec.Reasoning != noTripsReasoning {
		t.Errorf("Reasoning = %q, want the fixed no-trips string", rec.Reasoning)
	}
}

func TestGetTicketRecommendation_InvalidInputs(t *testing.T) {
	if _, err := GetTicketRecommendation(-1, 3.20, 107.70); err == nil {
		t.Error("negative trips should be rejected")
	}
	if _, err := GetTicketRecommendation(5, 0, 107.70); err == nil {
		t.Error("zero single fare should be rejected")
	}
	if _, err := GetTicketRecommendation(5, 3.20, 0); err == nil {
		t.Error("zero flat fare should be rejected")
	}
}
