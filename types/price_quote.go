package types

import (
	"context"
	"time"
)

// PriceQuote is the spot price of one quarter hour starting at From.
type PriceQuote struct {
	From  time.Time
	Price float64 // Price in cent per kWh
}

type PriceQuoteProvider interface {
	GetPriceQuotes(ctx context.Context) ([]PriceQuote, error)
}
