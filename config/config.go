package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/angas/stromradar/logging"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    *int16
}

func (a AppConfigApi) GetPort() int16 {
	if a.Port == nil {
		return 8080
	}
	return *a.Port
}

type AppConfigDatabase struct {
	// Only log entries are stored, prices are always kept in memory
	Path *string
}

func (d AppConfigDatabase) GetPath() string {
	if d.Path == nil || *d.Path == "" {
		return "stromradar.db"
	}
	return *d.Path
}

type AppConfigPrices struct {
	ApiKey          string  `mapstructure:"api_key"` // Usually handed over via SPOTTY_API_KEY
	Market          *string `mapstructure:"market"`
	BaseUrl         *string `mapstructure:"base_url"`
	Timezone        *string `mapstructure:"timezone"`
	FetchTimeoutSec *int    `mapstructure:"fetch_timeout_sec"`
	// Delivery area at Nord Pool, e.g. "AT". If assigned, Nord Pool is
	// used when the primary price source fails.
	NordpoolArea *string `mapstructure:"nordpool_area"`
}

func (p AppConfigPrices) GetMarket() string {
	if p.Market == nil || *p.Market == "" {
		return "MARKET"
	}
	return *p.Market
}

func (p AppConfigPrices) GetBaseUrl() string {
	if p.BaseUrl == nil || *p.BaseUrl == "" {
		return "https://i.spottyenergie.at"
	}
	return strings.TrimRight(*p.BaseUrl, "/")
}

func (p AppConfigPrices) GetTimezone() string {
	if p.Timezone == nil || *p.Timezone == "" {
		return "Europe/Vienna"
	}
	return *p.Timezone
}

func (p AppConfigPrices) GetFetchTimeout() time.Duration {
	if p.FetchTimeoutSec == nil || *p.FetchTimeoutSec <= 0 {
		return 5 * time.Second
	}
	return time.Duration(*p.FetchTimeoutSec) * time.Second
}

type AppConfigMaintenance struct {
	RunAt *string `mapstructure:"run_at"` // Cron expression, default: "30 2 * * *"
}

func (m AppConfigMaintenance) GetRunAt() string {
	if m.RunAt == nil || *m.RunAt == "" {
		return "30 2 * * *"
	}
	return *m.RunAt
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for database console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return logging.LogAttrFormatJSON
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return logging.LogAttrFormatText
	}
	return logging.LogAttrFormatJSON
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api         AppConfigApi
	Database    AppConfigDatabase
	Prices      AppConfigPrices      `mapstructure:"prices"`
	Maintenance AppConfigMaintenance `mapstructure:"maintenance"`
	Logging     AppConfigLogging     `mapstructure:"logging"`
}

// Keys that may be given as environment variables only, e.g. PRICES_TIMEZONE.
var envKeys = []string{
	"api.address", "api.port",
	"database.path",
	"prices.market", "prices.base_url", "prices.timezone", "prices.fetch_timeout_sec", "prices.nordpool_area",
	"maintenance.run_at",
	"logging.db_level", "logging.db_attrs_format", "logging.db_max_entries", "logging.console_level",
}

// Load reads the config file at path, or config/config.yaml when path is
// empty. Without a path a missing file is fine, everything can come from
// the environment.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("unable to bind env for %s: %w", key, err)
		}
	}
	if err := v.BindEnv("prices.api_key", "PRICES_API_KEY", "SPOTTY_API_KEY"); err != nil {
		return nil, fmt.Errorf("unable to bind env for prices.api_key: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	var c AppConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	if c.Prices.ApiKey == "" {
		return nil, errors.New("missing api key for the price source (prices.api_key or SPOTTY_API_KEY)")
	}

	return &c, nil
}
