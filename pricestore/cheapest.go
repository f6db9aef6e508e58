package pricestore

import (
	"github.com/angas/stromradar/calc"
	"github.com/angas/stromradar/hours"
	"github.com/angas/stromradar/types"
)

type Block struct {
	Quotes  []types.PriceQuote
	Average float64
}

// CheapestBlock finds the run of hours*4 consecutive quarter hour quotes
// with the lowest mean price. The leftmost run wins a tie. It reports
// false when the quotes can't hold a single run.
//
// The mean is recomputed for every window; a running sum would drift in
// the last bits and could change which window wins a tie.
func CheapestBlock(prices []types.PriceQuote, hrs int) (Block, bool) {
	blockSize := hrs * hours.QuartersPerHour
	if hrs < 1 || blockSize > len(prices) {
		return Block{}, false
	}

	best := -1
	var bestAvg float64
	for i := 0; i+blockSize <= len(prices); i++ {
		avg := calc.MeanPrice(prices[i : i+blockSize])
		if best < 0 || avg < bestAvg {
			best = i
			bestAvg = avg
		}
	}

	return Block{Quotes: prices[best : best+blockSize], Average: bestAvg}, true
}
