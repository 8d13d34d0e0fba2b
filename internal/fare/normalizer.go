// Package fare turns the upstream pricing API's loosely-structured
// listings into canonical price snapshots, defending against schema
// drift, and caches the result.
package fare

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fareadvisor/internal/cache"
	"fareadvisor/internal/model"
)

// SnapshotTTL is how long a cached price snapshot stays fresh.
const SnapshotTTL = time.Hour

// continuousDiscount is applied to the plain monthly fare when no
// continuous-order subscription record is present upstream.
const continuousDiscount = 0.05

// Normalizer assembles PriceSnapshots from upstream listings.
type Normalizer struct {
	client *Client
	cache  *cache.Cache
	logger *zap.Logger
}

// NewNormalizer creates a normalizer over the given client and cache.
func NewNormalizer(client *Client, c *cache.Cache, logger *zap.Logger) *Normalizer {
	return &Normalizer{client: client, cache: c, logger: logger}
}

func snapshotKey(zone, customerGroup int, municipality string) string {
	return fmt.Sprintf("prices:%d:%d:%s", zone, customerGroup, municipality)
}

// seasonParams are the extra query parameters the season and
// saver-subscription endpoints expect.
func seasonParams(municipality string) url.Values {
	return url.Values{
		"homemunicipality": {municipality},
		"ownership":        {"personal"},
	}
}

// FetchTicketPrices returns the canonical snapshot for one
// zone/customer-group/municipality combination, from cache when
// fresh. On a miss it fetches the three required listings
// concurrently; any required fetch failing aborts the whole snapshot.
func (n *Normalizer) FetchTicketPrices(ctx context.Context, zone, customerGroup int, municipality string) (*model.PriceSnapshot, error) {
	key := snapshotKey(zone, customerGroup, municipality)
	var cached model.PriceSnapshot
	if n.cache.Get(key, &cached) {
		n.logger.Debug("price snapshot cache hit", zap.String("key", key))
		return &cached, nil
	}

	var (
		wg                              sync.WaitGroup
		singleList, dayList, seasonList *Listing
		singleErr, dayErr, seasonErr    error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		singleList, singleErr = n.client.FetchListing(ctx, TicketSingle, zone, customerGroup, nil)
	}()
	go func() {
		defer wg.Done()
		dayList, dayErr = n.client.FetchListing(ctx, TicketDay, zone, customerGroup, nil)
	}()
	go func() {
		defer wg.Done()
		seasonList, seasonErr = n.client.FetchListing(ctx, TicketSeason, zone, customerGroup, seasonParams(municipality))
	}()

	// Detached probe of the saver-subscription endpoint. The result
	// is never awaited and a failure is observably discarded.
	probeCtx := context.WithoutCancel(ctx)
	go func() {
		if _, err := n.client.FetchListing(probeCtx, TicketSaverSubscription, zone, customerGroup, seasonParams(municipality)); err != nil {
			n.logger.Debug("saver subscription probe failed", zap.Error(err))
		}
	}()

	wg.Wait()
	if singleErr != nil {
		return nil, withContext(singleErr, opContext(TicketSingle))
	}
	if dayErr != nil {
		return nil, withContext(dayErr, opContext(TicketDay))
	}
	if seasonErr != nil {
		return nil, withContext(seasonErr, opContext(TicketSeason))
	}

	single, err := extractSingleFare(singleList, customerGroup, zone)
	if err != nil {
		return nil, withContext(err, opContext(TicketSingle))
	}
	daily, err := extractDailyFare(dayList, customerGroup, zone)
	if err != nil {
		return nil, withContext(err, opContext(TicketDay))
	}
	monthly, err := extractMonthlyFare(seasonList, customerGroup, zone)
	if err != nil {
		return nil, withContext(err, opContext(TicketSeason))
	}

	continuous, saver := extractSubscriptionFares(seasonList, customerGroup, zone)
	if continuous == 0 {
		continuous, _ = decimal.NewFromFloat(monthly).
			Mul(decimal.NewFromFloat(1 - continuousDiscount)).
			Round(2).Float64()
	}
	if saver == 0 {
		saver = monthly
	}

	var series10, series20 *model.SeriesTier
	if tiers := SeriesTicketOptions(zone); len(tiers) == 2 {
		series10, series20 = &tiers[0], &tiers[1]
	}
	if series10 == nil && series20 == nil {
		return nil, withContext(invalidf("no series tickets known for zone %d", zone), "series tickets")
	}

	snap := &model.PriceSnapshot{
		Single:            single,
		Series10:          series10,
		Series20:          series20,
		Daily:             daily,
		Monthly:           monthly,
		ContinuousMonthly: continuous,
		Season:            model.SeasonFare{Price: monthly, DurationDays: 30, Kind: "season"},
		SaverSubscription: saver,
		Timestamp:         time.Now(),
	}
	n.cache.Set(key, snap, SnapshotTTL)
	n.logger.Info("price snapshot assembled",
		zap.Int("zone", zone),
		zap.Int("customer_group", customerGroup),
		zap.Float64("single", single),
		zap.Float64("monthly", monthly))
	return snap, nil
}

// FetchTicketsByType fetches one raw listing and validates its shape.
func (n *Normalizer) FetchTicketsByType(ctx context.Context, kind TicketKind, zone, customerGroup int) ([]Ticket, error) {
	return n.FetchTicketsByTypeWithParams(ctx, kind, zone, customerGroup, nil)
}

// FetchTicketsByTypeWithParams is FetchTicketsByType with arbitrary
// extra query parameters, as the season and saver endpoints need.
func (n *Normalizer) FetchTicketsByTypeWithParams(ctx context.Context, kind TicketKind, zone, customerGroup int, extra url.Values) ([]Ticket, error) {
	listing, err := n.client.FetchListing(ctx, kind, zone, customerGroup, extra)
	if err != nil {
		return nil, withContext(err, opContext(kind))
	}
	if listing.Tickets == nil {
		return nil, withContext(invalidf("missing tickets array"), opContext(kind))
	}
	return listing.Tickets, nil
}

// GetAllTickets aggregates every known listing type, best effort:
// individual failures are logged and skipped, and whatever succeeded
// is returned.
func (n *Normalizer) GetAllTickets(ctx context.Context, zone, customerGroup int, municipality string) map[TicketKind][]Ticket {
	all := make(map[TicketKind][]Ticket)
	for _, kind := range ListingKinds {
		var extra url.Values
		if kind == TicketSeason || kind == TicketSaverSubscription {
			extra = seasonParams(municipality)
		}
		tickets, err := n.FetchTicketsByTypeWithParams(ctx, kind, zone, customerGroup, extra)
		if err != nil {
			n.logger.Warn("listing fetch failed, skipping", zap.String("kind", string(kind)), zap.Error(err))
			continue
		}
		all[kind] = tickets
	}
	return all
}

// extractSingleFare picks the single-ride fare for the requested
// group and zone, excluding contactless/tap variants.
func extractSingleFare(listing *Listing, customerGroup, zone int) (float64, error) {
	if listing.Tickets == nil {
		return 0, invalidf("missing tickets array")
	}
	for i := range listing.Tickets {
		t := &listing.Tickets[i]
		if !strings.EqualFold(t.TicketType, "single") || !t.matches(customerGroup, zone) {
			continue
		}
		if isContactless(t.Title) {
			continue
		}
		if !t.Price.Valid {
			return 0, invalidf("non-numeric price in %q", t.Title)
		}
		return t.Price.Value, nil
	}
	return 0, invalidf("no matching single ticket for customer group %d zone %d", customerGroup, zone)
}

func isContactless(title string) bool {
	lower := strings.ToLower(title)
	return strings.Contains(lower, "contactless") || strings.Contains(lower, "tap")
}

// extractDailyFare picks the fare whose duration is exactly one day,
// by day count, minute count, or a "day" title.
func extractDailyFare(listing *Listing, customerGroup, zone int) (float64, error) {
	if listing.Tickets == nil {
		return 0, invalidf("missing tickets array")
	}
	for i := range listing.Tickets {
		t := &listing.Tickets[i]
		if !t.matches(customerGroup, zone) {
			continue
		}
		oneDay := (t.DurationDays.Valid && t.DurationDays.Value == 1) ||
			(t.DurationMinutes.Valid && t.DurationMinutes.Value == 1440) ||
			strings.Contains(strings.ToLower(t.Title), "day")
		if !oneDay {
			continue
		}
		if !t.Price.Valid {
			return 0, invalidf("non-numeric price in %q", t.Title)
		}
		return t.Price.Value, nil
	}
	return 0, invalidf("no matching day ticket for customer group %d zone %d", customerGroup, zone)
}

// extractMonthlyFare picks the flat fare whose duration is exactly
// 30 days.
func extractMonthlyFare(listing *Listing, customerGroup, zone int) (float64, error) {
	if listing.Tickets == nil {
		return 0, invalidf("missing tickets array")
	}
	for i := range listing.Tickets {
		t := &listing.Tickets[i]
		if !t.matches(customerGroup, zone) {
			continue
		}
		if !t.DurationDays.Valid || t.DurationDays.Value != 30 {
			continue
		}
		if !t.Price.Valid {
			return 0, invalidf("non-numeric price in %q", t.Title)
		}
		return t.Price.Value, nil
	}
	return 0, invalidf("No 30-day season ticket found")
}

// extractSubscriptionFares scans the subscription records for the
// continuous-order and saver fares. Either may be legitimately
// absent; absence is reported as 0, not as an error.
func extractSubscriptionFares(listing *Listing, customerGroup, zone int) (continuous, saver float64) {
	for i := range listing.Subscriptions {
		s := &listing.Subscriptions[i]
		if !s.matches(customerGroup, zone) || !s.Price.Valid {
			continue
		}
		title := strings.ToLower(s.Title)
		switch {
		case strings.Contains(title, "saver"):
			if saver == 0 {
				saver = s.Price.Value
			}
		case strings.Contains(title, "continuous order"):
			if continuous == 0 {
				continuous = s.Price.Value
			}
		}
	}
	return continuous, saver
}
