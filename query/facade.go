package query

import (
	"context"
	"fmt"
	"time"

	"github.com/angas/stromradar/hours"
	"github.com/angas/stromradar/pricestore"
	"github.com/angas/stromradar/slice"
	"github.com/angas/stromradar/types"
)

type Facade struct {
	store *pricestore.Store
	loc   *time.Location
	now   func() time.Time
}

func NewFacade(store *pricestore.Store, now func() time.Time) *Facade {
	if now == nil {
		now = time.Now
	}
	return &Facade{store: store, loc: store.Location(), now: now}
}

func (f *Facade) Execute(ctx context.Context, req Request) (Result, error) {
	res := Result{Query: req.Query}
	switch req.Query {
	case QueryCurrentPrice:
		q, err := f.CurrentPrice(ctx)
		if err != nil {
			return Result{}, err
		}
		res.Current = &q
	case QueryTodaySummary, QueryTomorrowSummary:
		summary := f.TodaySummary
		if req.Query == QueryTomorrowSummary {
			summary = f.TomorrowSummary
		}
		s, err := summary(ctx)
		if err != nil {
			return Result{}, err
		}
		res.Summary = &s
	case QueryCheapestToday, QueryCheapestTomorrow:
		cheapest := f.CheapestHoursToday
		if req.Query == QueryCheapestTomorrow {
			cheapest = f.CheapestHoursTomorrow
		}
		b, err := cheapest(ctx, NormalizeHours(req.Hours))
		if err != nil {
			return Result{}, err
		}
		res.Block = &b
	default:
		return Result{}, fmt.Errorf("unknown query %s", req.Query)
	}
	return res, nil
}

// CurrentPrice returns today's quote with the latest start at or before now.
func (f *Facade) CurrentPrice(ctx context.Context) (types.PriceQuote, error) {
	now := f.now().In(f.loc)
	quotes, err := f.store.FilteredPrices(ctx, now)
	if err != nil {
		return types.PriceQuote{}, err
	}

	started := slice.Filter(quotes, func(q types.PriceQuote) bool { return !q.From.After(now) })
	current, ok := slice.MinBy(started, func(q types.PriceQuote) float64 { return float64(now.Sub(q.From)) })
	if !ok {
		return types.PriceQuote{}, fmt.Errorf("current price at %s: %w", now.Format(time.RFC3339), types.ErrNotFound)
	}
	return current, nil
}

func (f *Facade) TodaySummary(ctx context.Context) (Summary, error) {
	return f.summary(ctx, f.now().In(f.loc))
}

func (f *Facade) TomorrowSummary(ctx context.Context) (Summary, error) {
	now := f.now()
	if err := f.checkTomorrowPublished(now); err != nil {
		return Summary{}, err
	}
	return f.summary(ctx, hours.Tomorrow(now, f.loc))
}

func (f *Facade) CheapestHoursToday(ctx context.Context, hrs int) (Block, error) {
	return f.cheapest(ctx, f.now().In(f.loc), hrs)
}

func (f *Facade) CheapestHoursTomorrow(ctx context.Context, hrs int) (Block, error) {
	now := f.now()
	if err := f.checkTomorrowPublished(now); err != nil {
		return Block{}, err
	}
	return f.cheapest(ctx, hours.Tomorrow(now, f.loc), hrs)
}

func (f *Facade) summary(ctx context.Context, date time.Time) (Summary, error) {
	quotes, err := f.store.FilteredPrices(ctx, date)
	if err != nil {
		return Summary{}, err
	}

	price := func(q types.PriceQuote) float64 { return q.Price }
	lowest, ok := slice.MinBy(quotes, price)
	if !ok {
		return Summary{}, fmt.Errorf("summary for %s: %w", hours.DateString(date, f.loc), types.ErrNotFound)
	}
	highest, _ := slice.MaxBy(quotes, price)
	return Summary{Min: lowest, Max: highest}, nil
}

func (f *Facade) cheapest(ctx context.Context, date time.Time, hrs int) (Block, error) {
	hrs = max(1, hrs)
	quotes, err := f.store.FilteredPrices(ctx, date)
	if err != nil {
		return Block{}, err
	}

	block, ok := pricestore.CheapestBlock(quotes, hrs)
	if !ok {
		return Block{}, fmt.Errorf("cheapest %d hours on %s (%d quotes): %w",
			hrs, hours.DateString(date, f.loc), len(quotes), types.ErrNotFound)
	}

	start := block.Quotes[0].From.In(f.loc)
	return Block{
		Start:   start,
		End:     start.Add(time.Duration(hrs) * time.Hour),
		Hours:   hrs,
		Average: block.Average,
	}, nil
}

// Tomorrow's prices count as unpublished up to and including the local
// hour of today's publish boundary.
func (f *Facade) checkTomorrowPublished(now time.Time) error {
	now = now.In(f.loc)
	publishHour := hours.PublishHour(now, f.loc)
	if now.Hour() <= publishHour {
		return &types.NotYetAvailableError{Hour: publishHour}
	}
	return nil
}
