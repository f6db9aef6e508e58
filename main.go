package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angas/stromradar/config"
	"github.com/angas/stromradar/database"
	"github.com/angas/stromradar/hours"
	"github.com/angas/stromradar/logging"
	"github.com/angas/stromradar/nordpool"
	"github.com/angas/stromradar/pricestore"
	"github.com/angas/stromradar/query"
	"github.com/angas/stromradar/spottyenergie"
	"github.com/angas/stromradar/task"
	"github.com/angas/stromradar/types"
	"github.com/angas/stromradar/www"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("failed to load .env file: %v", err))
	}

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	loc, err := hours.LoadLocation(cnfg.Prices.GetTimezone())
	if err != nil {
		panic(fmt.Sprintf("failed to load price timezone: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("stromradar is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.GetPath())
	if err != nil {
		panic(fmt.Sprintf("failed to connect to database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	store := pricestore.New(loc, priceProviders(cnfg, loc),
		pricestore.WithLogger(logger.With("module", "pricestore")),
		pricestore.WithFetchTimeout(cnfg.Prices.GetFetchTimeout()))
	facade := query.NewFacade(store, time.Now)

	tasks := task.NewTasks(db, cnfg)
	if err := tasks.Run(); err != nil {
		panic(fmt.Sprintf("failed to schedule tasks: %v", err))
	}
	defer tasks.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
		case sig := <-sigCh:
			logger.Info("received signal", slog.Any("signal", sig))
			cancel()
		}
	}()

	server := www.NewServer(facade, db, cnfg.Api, Version)
	server.Run(ctx)
}

func priceProviders(cnfg *config.AppConfig, loc *time.Location) []types.PriceQuoteProvider {
	providers := []types.PriceQuoteProvider{
		spottyenergie.New( // Primary provider
			cnfg.Prices.GetBaseUrl(),
			cnfg.Prices.GetMarket(),
			cnfg.Prices.ApiKey,
			loc,
			cnfg.Prices.GetFetchTimeout()),
	}
	if cnfg.Prices.NordpoolArea != nil && *cnfg.Prices.NordpoolArea != "" {
		providers = append(providers, nordpool.New( // Secondary provider
			nordpool.DefaultBaseUrl,
			*cnfg.Prices.NordpoolArea,
			loc,
			cnfg.Prices.GetFetchTimeout()))
	}
	return providers
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}
	time.Sleep(2 * time.Second)
	os.Exit(1)
}
