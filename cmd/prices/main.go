package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/angas/stromradar/config"
	"github.com/angas/stromradar/hours"
	"github.com/angas/stromradar/pricestore"
	"github.com/angas/stromradar/query"
	"github.com/angas/stromradar/speech"
	"github.com/angas/stromradar/spottyenergie"
	"github.com/angas/stromradar/types"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	hrs := flag.String("hours", "3", "block length for the cheapest hours")
	flag.Parse()

	_ = godotenv.Load()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	loc, err := hours.LoadLocation(cnfg.Prices.GetTimezone())
	if err != nil {
		panic(err)
	}

	provider := spottyenergie.New(cnfg.Prices.GetBaseUrl(), cnfg.Prices.GetMarket(), cnfg.Prices.ApiKey,
		loc, cnfg.Prices.GetFetchTimeout())
	store := pricestore.New(loc, []types.PriceQuoteProvider{provider})
	facade := query.NewFacade(store, time.Now)

	ctx := context.Background()
	quotes, err := store.Prices(ctx)
	if err != nil {
		panic(err)
	}
	for _, q := range quotes {
		fmt.Printf("%s  %8.3f ct/kWh\n", q.From.In(loc).Format("2006-01-02 15:04"), q.Price)
	}
	fmt.Println()

	for _, q := range []query.Query{
		query.QueryCurrentPrice,
		query.QueryTodaySummary,
		query.QueryTomorrowSummary,
		query.QueryCheapestToday,
		query.QueryCheapestTomorrow,
	} {
		res, err := facade.Execute(ctx, query.Request{Query: q, Hours: *hrs})
		if err != nil {
			fmt.Printf("%-18s %s (%v)\n", q, speech.ForError(q, err), err)
			continue
		}
		fmt.Printf("%-18s %s\n", q, speech.ForResult(res))
	}
}
