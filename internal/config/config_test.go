package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/finance-toolkit/pkg/constants"
	"github.com/iwvelando/finance-toolkit/pkg/exchange"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigurationDefaults(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
	}{
		{name: "No config path", configPath: ""},
		{name: "Non-existent config file", configPath: filepath.Join(t.TempDir(), "nonexistent.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := LoadConfiguration(tt.configPath)
			if err != nil {
				t.Fatalf("LoadConfiguration() error = %v", err)
			}
			if conf.Output.Format != constants.OutputFormatPretty {
				t.Errorf("Output.Format = %q, expected %q", conf.Output.Format, constants.OutputFormatPretty)
			}
			if conf.Display.Locale != constants.DefaultLocale || conf.Display.Currency != constants.DefaultCurrency {
				t.Errorf("unexpected display defaults %+v", conf.Display)
			}
			if conf.Exchange.APIURL != constants.DefaultExchangeAPIURL {
				t.Errorf("Exchange.APIURL = %q", conf.Exchange.APIURL)
			}
			if conf.Exchange.Timeout != constants.DefaultExchangeTimeout {
				t.Errorf("Exchange.Timeout = %v", conf.Exchange.Timeout)
			}
			if conf.Exchange.CacheTTL != 0 {
				t.Errorf("Exchange.CacheTTL = %v, expected caching off by default", conf.Exchange.CacheTTL)
			}
			if conf.Logging.Level != "info" {
				t.Errorf("Logging.Level = %q, expected info", conf.Logging.Level)
			}
		})
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
output:
  format: csv
display:
  locale: en-US
  currency: USD
exchange:
  apiURL: http://localhost:9000/latest
  timeout: 3s
  cacheTTL: 5m
  redisAddr: localhost:6379
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Logging.Level != "debug" || conf.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", conf.Logging)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("Output.Format = %q, expected csv", conf.Output.Format)
	}
	if conf.Display.Locale != "en-US" || conf.Display.Currency != "USD" {
		t.Errorf("unexpected display config %+v", conf.Display)
	}
	if conf.Exchange.APIURL != "http://localhost:9000/latest" {
		t.Errorf("Exchange.APIURL = %q", conf.Exchange.APIURL)
	}
	if conf.Exchange.Timeout != 3*time.Second {
		t.Errorf("Exchange.Timeout = %v, expected 3s", conf.Exchange.Timeout)
	}
	if conf.Exchange.CacheTTL != 5*time.Minute {
		t.Errorf("Exchange.CacheTTL = %v, expected 5m", conf.Exchange.CacheTTL)
	}
	if conf.Exchange.RedisAddr != "localhost:6379" {
		t.Errorf("Exchange.RedisAddr = %q", conf.Exchange.RedisAddr)
	}
}

func TestLoadConfigurationEnvironmentOverride(t *testing.T) {
	path := writeConfig(t, "display:\n  currency: USD\n")
	t.Setenv("FINANCE_TOOLKIT_DISPLAY_CURRENCY", "EUR")
	t.Setenv("FINANCE_TOOLKIT_EXCHANGE_CACHETTL", "30s")

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Display.Currency != "EUR" {
		t.Errorf("Display.Currency = %q, expected env override EUR", conf.Display.Currency)
	}
	if conf.Exchange.CacheTTL != 30*time.Second {
		t.Errorf("Exchange.CacheTTL = %v, expected 30s", conf.Exchange.CacheTTL)
	}
}

func TestLoadConfigurationMalformed(t *testing.T) {
	path := writeConfig(t, "logging: [unclosed\n")
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("LoadConfiguration() expected error for malformed YAML")
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("default configuration produced warnings: %v", warnings)
	}

	conf.Output.Format = "json"
	conf.Exchange.APIURL = "not a url"
	if warnings := conf.ValidateConfiguration(); len(warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", warnings)
	}
}

func TestFormatterFallback(t *testing.T) {
	conf := &Configuration{Display: DisplayConfig{Locale: "en", Currency: "USD"}}
	if got := conf.Formatter().CurrencyCode(); got != "USD" {
		t.Errorf("CurrencyCode() = %q, expected USD", got)
	}

	conf.Display.Currency = "ZZZ"
	if got := conf.Formatter().CurrencyCode(); got != constants.DefaultCurrency {
		t.Errorf("CurrencyCode() = %q, expected fallback %q", got, constants.DefaultCurrency)
	}
}

func TestRateCache(t *testing.T) {
	conf := &Configuration{}
	if cache := conf.RateCache(); cache != nil {
		t.Errorf("expected no cache when TTL is zero, got %T", cache)
	}

	conf.Exchange.CacheTTL = time.Minute
	if _, ok := conf.RateCache().(*exchange.MemoryCache); !ok {
		t.Errorf("expected in-memory cache, got %T", conf.RateCache())
	}

	conf.Exchange.RedisAddr = "localhost:6379"
	if _, ok := conf.RateCache().(*exchange.RedisCache); !ok {
		t.Errorf("expected redis cache, got %T", conf.RateCache())
	}

	if conf.ExchangeServiceWithCache(exchange.NewMemoryCache(time.Minute), nil) == nil {
		t.Error("ExchangeServiceWithCache() returned nil")
	}
	if conf.ExchangeService(nil) == nil {
		t.Error("ExchangeService() returned nil")
	}
}
