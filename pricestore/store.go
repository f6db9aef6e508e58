package pricestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/angas/stromradar/hours"
	"github.com/angas/stromradar/types"
	"github.com/angas/stromradar/types/maybe"
)

type Snapshot struct {
	Quotes    []types.PriceQuote
	FetchedAt time.Time // UTC
}

/** A process local cache of the remote price series */
type Store struct {
	mu           sync.Mutex
	logger       *slog.Logger
	providers    []types.PriceQuoteProvider
	loc          *time.Location
	fetchTimeout time.Duration
	now          func() time.Time
	snapshot     maybe.Maybe[Snapshot]
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func WithFetchTimeout(d time.Duration) Option {
	return func(s *Store) { s.fetchTimeout = d }
}

// New creates an empty store. Providers are tried in order on every
// refresh, the first one that succeeds wins.
func New(loc *time.Location, providers []types.PriceQuoteProvider, opts ...Option) *Store {
	if len(providers) == 0 {
		panic("no price quote providers")
	}
	s := &Store{
		logger:       slog.Default().With(slog.String("module", "pricestore")),
		providers:    providers,
		loc:          loc,
		fetchTimeout: 5 * time.Second,
		now:          time.Now,
		snapshot:     maybe.None[Snapshot](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Location() *time.Location {
	return s.loc
}

func (s *Store) Snapshot() maybe.Maybe[Snapshot] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// ShouldReload reports whether the cached snapshot is missing or was
// fetched before the publish boundary that now has passed.
func (s *Store) ShouldReload(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return shouldReload(s.snapshot, now)
}

func shouldReload(snapshot maybe.Maybe[Snapshot], now time.Time) bool {
	snap, ok := snapshot.Get()
	if !ok {
		return true
	}
	boundary := hours.PublishBoundary(now)
	return !now.Before(boundary) && snap.FetchedAt.Before(boundary)
}

// Prices returns the cached quotes in the store's location, refreshing
// them first when needed.
// The returned slice must not be modified.
func (s *Store) Prices(ctx context.Context) ([]types.PriceQuote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !shouldReload(s.snapshot, s.now()) {
		return s.snapshot.Value().Quotes, nil
	}

	quotes, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	for i := range quotes {
		quotes[i].From = quotes[i].From.In(s.loc)
	}
	slices.SortStableFunc(quotes, func(a, b types.PriceQuote) int { return a.From.Compare(b.From) })
	s.snapshot = maybe.Some(Snapshot{Quotes: quotes, FetchedAt: s.now().UTC()})
	s.logger.Info("price quotes reloaded", slog.Int("noOfQuotes", len(quotes)))

	return quotes, nil
}

func (s *Store) fetch(ctx context.Context) ([]types.PriceQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	var errs []error
	for i, provider := range s.providers {
		quotes, err := provider.GetPriceQuotes(ctx)
		if err == nil {
			return quotes, nil
		}
		s.logger.Warn("fetching price quotes failed", slog.Int("provider", i), slog.Any("error", err))
		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("%w: %w", types.ErrRemoteUnavailable, ctx.Err()))
			break
		}
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("reloading price quotes: %w", errors.Join(errs...))
}

// FilteredPrices returns the quotes starting on the same local calendar date as date.
func (s *Store) FilteredPrices(ctx context.Context, date time.Time) ([]types.PriceQuote, error) {
	quotes, err := s.Prices(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]types.PriceQuote, 0, 24*hours.QuartersPerHour)
	for _, q := range quotes {
		if hours.SameDate(q.From, date, s.loc) {
			filtered = append(filtered, q)
		}
	}
	return filtered, nil
}
