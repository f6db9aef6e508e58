package pricestore

import (
	"math"
	"testing"
	"time"

	"github.com/angas/stromradar/types"
)

func quarterHours(prices ...float64) []types.PriceQuote {
	start := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	quotes := make([]types.PriceQuote, len(prices))
	for i, p := range prices {
		quotes[i] = types.PriceQuote{From: start.Add(time.Duration(i) * 15 * time.Minute), Price: p}
	}
	return quotes
}

// bruteForce recomputes every window with a plain sum, keeping the first minimum.
func bruteForce(quotes []types.PriceQuote, size int) (int, float64) {
	bestIdx, bestAvg := -1, math.Inf(1)
	for i := 0; i+size <= len(quotes); i++ {
		sum := 0.0
		for _, q := range quotes[i : i+size] {
			sum += q.Price
		}
		if avg := sum / float64(size); avg < bestAvg {
			bestIdx, bestAvg = i, avg
		}
	}
	return bestIdx, bestAvg
}

func TestCheapestBlockMatchesBruteForce(t *testing.T) {
	quotes := quarterHours(9.1, 8.4, 7.7, 6.2, 5.3, 4.9, 6.8, 12.5)

	block, ok := CheapestBlock(quotes, 1)
	if !ok {
		t.Fatalf("expected a block")
	}
	idx, avg := bruteForce(quotes, 4)
	if !block.Quotes[0].From.Equal(quotes[idx].From) {
		t.Errorf("got block starting %v, wanted %v", block.Quotes[0].From, quotes[idx].From)
	}
	if len(block.Quotes) != 4 {
		t.Errorf("got %d quotes, wanted 4", len(block.Quotes))
	}
	if block.Average != avg {
		t.Errorf("got average %f, wanted %f", block.Average, avg)
	}
}

func TestCheapestBlock(t *testing.T) {
	tests := []struct {
		name      string
		prices    []float64
		hours     int
		wantOk    bool
		wantStart int
		wantAvg   float64
	}{
		{
			name:      "single window",
			prices:    []float64{1, 2, 3, 4},
			hours:     1,
			wantOk:    true,
			wantStart: 0,
			wantAvg:   2.5,
		},
		{
			name:      "tie goes to the leftmost window",
			prices:    []float64{5, 1, 1, 1, 1, 5, 1, 1, 1, 1},
			hours:     1,
			wantOk:    true,
			wantStart: 1,
			wantAvg:   1,
		},
		{
			name:      "all equal",
			prices:    []float64{2, 2, 2, 2, 2, 2},
			hours:     1,
			wantOk:    true,
			wantStart: 0,
			wantAvg:   2,
		},
		{
			name:      "negative prices",
			prices:    []float64{3, 3, 3, 3, -1, -2, -3, -4, 0},
			hours:     1,
			wantOk:    true,
			wantStart: 4,
			wantAvg:   -2.5,
		},
		{
			name:      "two hours",
			prices:    []float64{9, 9, 1, 1, 1, 1, 1, 1, 1, 1, 9},
			hours:     2,
			wantOk:    true,
			wantStart: 2,
			wantAvg:   1,
		},
		{
			name:   "block larger than data",
			prices: []float64{1, 2, 3},
			hours:  1,
			wantOk: false,
		},
		{
			name:   "no data",
			prices: nil,
			hours:  1,
			wantOk: false,
		},
		{
			name:   "zero hours",
			prices: []float64{1, 2, 3, 4},
			hours:  0,
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotes := quarterHours(tt.prices...)
			block, ok := CheapestBlock(quotes, tt.hours)
			if ok != tt.wantOk {
				t.Fatalf("got ok %t, wanted %t", ok, tt.wantOk)
			}
			if !ok {
				if len(block.Quotes) != 0 {
					t.Errorf("got quotes %v without a result", block.Quotes)
				}
				return
			}
			if !block.Quotes[0].From.Equal(quotes[tt.wantStart].From) {
				t.Errorf("got start %v, wanted %v", block.Quotes[0].From, quotes[tt.wantStart].From)
			}
			if len(block.Quotes) != tt.hours*4 {
				t.Errorf("got %d quotes, wanted %d", len(block.Quotes), tt.hours*4)
			}
			if math.Abs(block.Average-tt.wantAvg) > 1e-9 {
				t.Errorf("got average %f, wanted %f", block.Average, tt.wantAvg)
			}
		})
	}
}

func TestCheapestBlockFullDay(t *testing.T) {
	prices := make([]float64, 96)
	for i := range prices {
		prices[i] = math.Abs(float64(i-50)) + 0.1*float64(i%3)
	}
	quotes := quarterHours(prices...)

	for hours := 1; hours <= 24; hours++ {
		block, ok := CheapestBlock(quotes, hours)
		if !ok {
			t.Fatalf("hours %d: expected a block", hours)
		}
		idx, avg := bruteForce(quotes, hours*4)
		if !block.Quotes[0].From.Equal(quotes[idx].From) || block.Average != avg {
			t.Errorf("hours %d: got start %v avg %f, wanted %v avg %f",
				hours, block.Quotes[0].From, block.Average, quotes[idx].From, avg)
		}
	}

	if _, ok := CheapestBlock(quotes, 25); ok {
		t.Errorf("expected no block for 25 hours of a 24 hour day")
	}
}
