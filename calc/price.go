package calc

import "github.com/angas/stromradar/types"

// MeanPrice is the arithmetic mean of the quotes' prices, 0 for no quotes.
func MeanPrice(quotes []types.PriceQuote) float64 {
	if len(quotes) == 0 {
		return 0
	}
	sum := 0.0
	for _, q := range quotes {
		sum += q.Price
	}
	return sum / float64(len(quotes))
}
