package model

import "time"

// SeriesTier describes one multi-ride pass product: a bundle of
// journeys at a flat price, usable within a validity window.
type SeriesTier struct {
	Price        float64 `json:"price"`
	Journeys     int     `json:"journeys"`
	ValidityDays int     `json:"validityDays"`
}

// SeasonFare is the flat 30-day fare carried as a typed record.
type SeasonFare struct {
	Price        float64 `json:"price"`
	DurationDays int     `json:"durationDays"`
	Kind         string  `json:"kind"`
}

// PriceSnapshot is the canonical set of resolved fares for one
// zone/customer-group/municipality combination at a point in time.
// It is immutable once constructed; consumers only read it.
type PriceSnapshot struct {
	Single            float64     `json:"single"`
	Series10          *SeriesTier `json:"series10,omitempty"`
	Series20          *SeriesTier `json:"series20,omitempty"`
	Daily             float64     `json:"daily"`
	Monthly           float64     `json:"monthly"`
	ContinuousMonthly float64     `json:"continuousMonthly"`
	Season            SeasonFare  `json:"season"`
	SaverSubscription float64     `json:"saverSubscription"`
	Timestamp         time.Time   `json:"timestamp"`
}

// Age reports how long ago the snapshot was assembled.
func (s *PriceSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.Timestamp)
}
