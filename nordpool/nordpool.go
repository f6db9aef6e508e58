package nordpool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/angas/stromradar/convert"
	"github.com/angas/stromradar/types"
)

const DefaultBaseUrl = "https://dataportal-api.nordpoolgroup.com"

// Nordpool reads day-ahead prices for a single delivery area, e.g. "AT".
type Nordpool struct {
	baseUrl string
	area    string
	loc     *time.Location
	client  *http.Client
	now     func() time.Time
}

func New(baseUrl, area string, loc *time.Location, timeout time.Duration) Nordpool {
	return Nordpool{
		baseUrl: baseUrl,
		area:    area,
		loc:     loc,
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

func (n Nordpool) GetPriceQuotes(ctx context.Context) ([]types.PriceQuote, error) {
	t := n.now().In(n.loc)
	today, err := n.getPriceQuotes(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices from nordpool for today: %w", err)
	}
	if len(today) == 0 {
		return nil, fmt.Errorf("%w: nordpool has no prices for today", types.ErrRemoteUnavailable)
	}

	tomorrow, err := n.getPriceQuotes(ctx, t.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices from nordpool for tomorrow: %w", err)
	}

	return append(today, tomorrow...), nil
}

func (n Nordpool) getPriceQuotes(ctx context.Context, date time.Time) ([]types.PriceQuote, error) {
	url := fmt.Sprintf("%s/api/DayAheadPrices?date=%s&market=DayAhead&deliveryArea=%s&currency=EUR",
		n.baseUrl,
		date.Format("2006-01-02"),
		n.area)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch prices: %w", types.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	// Not yet published
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return []types.PriceQuote{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d", types.ErrRemoteUnavailable, resp.StatusCode)
	}

	var data dayAheadPrices
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", types.ErrMalformedData, err)
	}

	prices := make([]types.PriceQuote, 0, len(data.MultiAreaEntries))
	for _, entry := range data.MultiAreaEntries {
		if entry.DeliveryStart.IsZero() {
			return nil, fmt.Errorf("%w: entry without deliveryStart", types.ErrMalformedData)
		}
		if slices.ContainsFunc(prices, func(p types.PriceQuote) bool { return p.From.Equal(entry.DeliveryStart) }) {
			continue
		}
		price, ok := entry.EntryPerArea[n.area]
		if !ok {
			return nil, errors.Join(types.ErrMalformedData,
				fmt.Errorf("no price for area %s at %s", n.area, entry.DeliveryStart.Format(time.RFC3339)))
		}
		prices = append(prices, types.PriceQuote{
			From:  entry.DeliveryStart,
			Price: convert.EurPerMWhToCentPerKWh(price),
		})
	}

	return prices, nil
}
