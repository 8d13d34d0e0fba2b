package fare

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// fetchTimeout bounds every raw listing fetch, enforced through
// context cancellation.
const fetchTimeout = 10 * time.Second

// TicketKind is an upstream fare-class path segment.
type TicketKind string

const (
	TicketSingle            TicketKind = "single"
	TicketDay               TicketKind = "day"
	TicketSeason            TicketKind = "season"
	TicketSaverSubscription TicketKind = "season/saver-subscription"
)

// ListingKinds is every fare class that serves a ticket listing.
var ListingKinds = []TicketKind{TicketSingle, TicketDay, TicketSeason, TicketSaverSubscription}

// opContext returns the human-readable phrase appended to errors for
// a fare class. Appended exactly once, at the extraction boundary.
func opContext(kind TicketKind) string {
	switch kind {
	case TicketSingle:
		return "single ticket"
	case TicketDay:
		return "daily ticket"
	case TicketSeason:
		return "season ticket"
	case TicketSaverSubscription:
		return "saver subscription"
	default:
		return string(kind)
	}
}

// flexFloat tolerates upstream prices and durations arriving as JSON
// numbers, numeric strings, or being absent/null entirely.
type flexFloat struct {
	Value float64
	Valid bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Upstream drift, not a decode failure for the whole
		// listing; the field simply stays invalid.
		return nil
	}
	f.Value = v
	f.Valid = true
	return nil
}

func (f flexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// zoneList tolerates the zones field arriving as a single number or
// an array of numbers.
type zoneList []int

func (z *zoneList) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var raw []json.Number
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		for _, n := range raw {
			if v, err := n.Int64(); err == nil {
				*z = append(*z, int(v))
			}
		}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return nil
	}
	if v, err := n.Int64(); err == nil {
		*z = append(*z, int(v))
	}
	return nil
}

func (z zoneList) contains(zone int) bool {
	for _, v := range z {
		if v == zone {
			return true
		}
	}
	return false
}

// Ticket is one entry of an upstream fare listing. Fields this
// module never consumes are kept raw.
type Ticket struct {
	ID              json.RawMessage `json:"id"`
	TicketType      string          `json:"ticketType"`
	Title           string          `json:"title"`
	Price           flexFloat       `json:"price"`
	SalePrice       flexFloat       `json:"salePrice"`
	PricePerDay     flexFloat       `json:"pricePerDay"`
	DurationMinutes flexFloat       `json:"durationMinutes"`
	DurationDays    flexFloat       `json:"durationDays"`
	CustomerGroup   flexFloat       `json:"customerGroup"`
	Zones           zoneList        `json:"zones"`
	PointsOfSale    json.RawMessage `json:"pointsOfSale"`
	Data            json.RawMessage `json:"_data"`
}

// matches reports whether the entry targets the requested customer
// group and zone. The server does not pre-filter; we do.
func (t *Ticket) matches(customerGroup, zone int) bool {
	return t.CustomerGroup.Valid && int(t.CustomerGroup.Value) == customerGroup && t.Zones.contains(zone)
}

// Subscription is one recurring-subscription record from the season
// listing.
type Subscription struct {
	CustomerGroup flexFloat `json:"customerGroup"`
	Zones         zoneList  `json:"zones"`
	Title         string    `json:"title"`
	Price         flexFloat `json:"price"`
}

func (s *Subscription) matches(customerGroup, zone int) bool {
	return s.CustomerGroup.Valid && int(s.CustomerGroup.Value) == customerGroup && s.Zones.contains(zone)
}

// Listing is the upstream response envelope. Either array may be
// absent, empty, or contain entries for other groups/zones.
type Listing struct {
	Tickets       []Ticket       `json:"tickets"`
	Subscriptions []Subscription `json:"subscriptions"`
}

// Client fetches raw fare listings from the upstream pricing API.
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a listing client. language defaults to "fi".
func NewClient(baseURL, language string, logger *zap.Logger) *Client {
	if language == "" {
		language = "fi"
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// FetchListing issues one GET against a fare-class endpoint and
// decodes the envelope. Transport and status failures come back
// classified; the operation context is appended by callers.
func (c *Client) FetchListing(ctx context.Context, kind TicketKind, zone, customerGroup int, extra url.Values) (*Listing, error) {
	q := url.Values{}
	q.Set("language", c.language)
	q.Set("customerGroup", strconv.Itoa(customerGroup))
	q.Set("zones", strconv.Itoa(zone))
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, kind, q.Encode())

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, classify(err)
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &Error{Kind: KindRateLimit, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: KindNetwork, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(err)
	}
	var listing Listing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, invalidf("decode listing: %v", err)
	}
	c.logger.Debug("fetched listing",
		zap.String("kind", string(kind)),
		zap.Int("tickets", len(listing.Tickets)),
		zap.Int("subscriptions", len(listing.Subscriptions)))
	return &listing, nil
}
