package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/angas/stromradar/logging"
)

const testConfig = `
api:
  address: 127.0.0.1
  port: 9090
database:
  path: /tmp/stromradar-test.db
prices:
  api_key: from-file
  timezone: Europe/Berlin
  fetch_timeout_sec: 3
  nordpool_area: AT
maintenance:
  run_at: "0 3 * * *"
logging:
  console_level: debug
  db_attrs_format: text
  db_max_entries: 500
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SPOTTY_API_KEY", "")
	t.Setenv("PRICES_API_KEY", "")

	config, err := Load(writeConfig(t, testConfig))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	t.Run("Api", func(t *testing.T) {
		if config.Api.Address != "127.0.0.1" || config.Api.GetPort() != 9090 {
			t.Errorf("got api %+v", config.Api)
		}
		if config.Database.GetPath() != "/tmp/stromradar-test.db" {
			t.Errorf("got database path %s", config.Database.GetPath())
		}
	})

	t.Run("Prices", func(t *testing.T) {
		if config.Prices.ApiKey != "from-file" {
			t.Errorf("Expected api key from-file, got %s", config.Prices.ApiKey)
		}
		if config.Prices.GetTimezone() != "Europe/Berlin" {
			t.Errorf("Expected timezone Europe/Berlin, got %s", config.Prices.GetTimezone())
		}
		if config.Prices.GetFetchTimeout() != 3*time.Second {
			t.Errorf("Expected fetch timeout 3s, got %v", config.Prices.GetFetchTimeout())
		}
		if config.Prices.NordpoolArea == nil || *config.Prices.NordpoolArea != "AT" {
			t.Errorf("Expected nordpool area AT, got %v", config.Prices.NordpoolArea)
		}
		if config.Prices.GetMarket() != "MARKET" {
			t.Errorf("Expected default market, got %s", config.Prices.GetMarket())
		}
	})

	t.Run("Logging", func(t *testing.T) {
		if config.Logging.GetConsoleLevel() != slog.LevelDebug {
			t.Errorf("Expected console level debug, got %v", config.Logging.GetConsoleLevel())
		}
		if config.Logging.GetDbLevel() != slog.LevelInfo {
			t.Errorf("Expected db level info, got %v", config.Logging.GetDbLevel())
		}
		if config.Logging.GetDbAttrsFormat() != logging.LogAttrFormatText {
			t.Errorf("Expected TEXT attrs, got %s", config.Logging.GetDbAttrsFormat())
		}
		if config.Logging.GetDbMaxEntries() != 500 {
			t.Errorf("Expected 500 max entries, got %d", config.Logging.GetDbMaxEntries())
		}
		if config.Maintenance.GetRunAt() != "0 3 * * *" {
			t.Errorf("Expected maintenance at 0 3 * * *, got %s", config.Maintenance.GetRunAt())
		}
	})
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PRICES_API_KEY", "")
	t.Setenv("SPOTTY_API_KEY", "from-env")
	t.Setenv("PRICES_TIMEZONE", "Europe/Vienna")
	t.Setenv("API_PORT", "8181")

	config, err := Load(writeConfig(t, "logging:\n  console_level: warn\n"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if config.Prices.ApiKey != "from-env" {
		t.Errorf("Expected api key from-env, got %s", config.Prices.ApiKey)
	}
	if config.Api.GetPort() != 8181 {
		t.Errorf("Expected port 8181, got %d", config.Api.GetPort())
	}
	if config.Prices.GetFetchTimeout() != 5*time.Second {
		t.Errorf("Expected default fetch timeout, got %v", config.Prices.GetFetchTimeout())
	}
	if config.Prices.GetBaseUrl() != "https://i.spottyenergie.at" {
		t.Errorf("Expected default base url, got %s", config.Prices.GetBaseUrl())
	}
	if config.Prices.NordpoolArea != nil {
		t.Errorf("Expected no nordpool fallback, got %v", *config.Prices.NordpoolArea)
	}
	if config.Maintenance.GetRunAt() != "30 2 * * *" {
		t.Errorf("Expected default maintenance schedule, got %s", config.Maintenance.GetRunAt())
	}
}

func TestLoadConfigWithoutApiKey(t *testing.T) {
	t.Setenv("SPOTTY_API_KEY", "")
	t.Setenv("PRICES_API_KEY", "")
	if _, err := Load(writeConfig(t, "api:\n  port: 8080\n")); err == nil {
		t.Errorf("expected an error without an api key")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("expected an error for an explicit but missing config file")
	}
}
