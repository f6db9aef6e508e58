package query

import (
	"fmt"
	"strconv"
	"time"

	"github.com/angas/stromradar/types"
)

type Query int

const (
	QueryCurrentPrice Query = iota
	QueryTodaySummary
	QueryTomorrowSummary
	QueryCheapestToday
	QueryCheapestTomorrow
)

func (q Query) String() string {
	switch q {
	case QueryCurrentPrice:
		return "current_price"
	case QueryTodaySummary:
		return "today_summary"
	case QueryTomorrowSummary:
		return "tomorrow_summary"
	case QueryCheapestToday:
		return "cheapest_today"
	case QueryCheapestTomorrow:
		return "cheapest_tomorrow"
	default:
		return fmt.Sprintf("query(%d)", int(q))
	}
}

type Day int

const (
	Today Day = iota
	Tomorrow
)

func (q Query) Day() Day {
	if q == QueryTomorrowSummary || q == QueryCheapestTomorrow {
		return Tomorrow
	}
	return Today
}

type Request struct {
	Query Query
	Hours string // Raw hour count, only used by the cheapest block queries
}

type Summary struct {
	Min types.PriceQuote
	Max types.PriceQuote
}

type Block struct {
	Start   time.Time
	End     time.Time
	Hours   int
	Average float64
}

// Result holds the answer of exactly one query, the field matching Query is set.
type Result struct {
	Query   Query
	Current *types.PriceQuote
	Summary *Summary
	Block   *Block
}

// NormalizeHours turns a spoken hour count into a positive number,
// anything but a plain non-negative integer becomes 1.
func NormalizeHours(raw string) int {
	if raw == "" {
		return 1
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 1
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
