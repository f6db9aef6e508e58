package spottyenergie

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/angas/stromradar/hours"
	"github.com/angas/stromradar/types"
)

const (
	DefaultBaseUrl = "https://i.spottyenergie.at"
	DefaultMarket  = "MARKET"
)

type rawPrice struct {
	From  *string  `json:"from"`
	Price *float64 `json:"price"`
}

type SpottyEnergie struct {
	baseUrl string
	market  string
	apiKey  string
	loc     *time.Location
	client  *http.Client
}

func New(baseUrl, market, apiKey string, loc *time.Location, timeout time.Duration) SpottyEnergie {
	return SpottyEnergie{
		baseUrl: baseUrl,
		market:  market,
		apiKey:  apiKey,
		loc:     loc,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s SpottyEnergie) GetPriceQuotes(ctx context.Context) ([]types.PriceQuote, error) {
	u := fmt.Sprintf("%s/api/prices/%s/%s?timezone=at",
		s.baseUrl, url.PathEscape(s.market), url.PathEscape(s.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		// The url carries the api key, keep it out of the error.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("%w: failed to fetch prices: %w", types.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d", types.ErrRemoteUnavailable, resp.StatusCode)
	}

	var rawPrices []rawPrice
	if err := json.NewDecoder(resp.Body).Decode(&rawPrices); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", types.ErrMalformedData, err)
	}

	prices := make([]types.PriceQuote, 0, len(rawPrices))
	for i, raw := range rawPrices {
		if raw.From == nil {
			return nil, fmt.Errorf("%w: entry %d has no 'from'", types.ErrMalformedData, i)
		}
		if raw.Price == nil {
			return nil, fmt.Errorf("%w: entry %d has no 'price'", types.ErrMalformedData, i)
		}
		from, err := hours.FromIso(*raw.From, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", types.ErrMalformedData, i, err)
		}
		prices = append(prices, types.PriceQuote{From: from, Price: *raw.Price})
	}

	return prices, nil
}
