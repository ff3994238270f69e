// Package config defines the application configuration and loads it from a
// YAML file, a .env file and FINANCE_TOOLKIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/finance-toolkit/pkg/constants"
	"github.com/iwvelando/finance-toolkit/pkg/exchange"
	"github.com/iwvelando/finance-toolkit/pkg/format"
	"github.com/iwvelando/finance-toolkit/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Configuration holds all configuration for finance-toolkit.
type Configuration struct {
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Display  DisplayConfig  `yaml:"display,omitempty"`
	Exchange ExchangeConfig `yaml:"exchange,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// DisplayConfig controls how amounts are rendered.
type DisplayConfig struct {
	Locale   string `yaml:"locale,omitempty"`
	Currency string `yaml:"currency,omitempty"`
}

// ExchangeConfig configures the exchange rate source and its cache.
type ExchangeConfig struct {
	APIURL    string        `yaml:"apiURL,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`
	CacheTTL  time.Duration `yaml:"cacheTTL,omitempty"`
	RedisAddr string        `yaml:"redisAddr,omitempty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("display.locale", constants.DefaultLocale)
	v.SetDefault("display.currency", constants.DefaultCurrency)
	v.SetDefault("exchange.apiURL", constants.DefaultExchangeAPIURL)
	v.SetDefault("exchange.timeout", constants.DefaultExchangeTimeout)
	v.SetDefault("exchange.cacheTTL", constants.DefaultExchangeCacheTTL)
	v.SetDefault("exchange.redisAddr", "")
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the defaults; environment variables
// such as FINANCE_TOOLKIT_DISPLAY_CURRENCY override both.
func LoadConfiguration(configPath string) (*Configuration, error) {
	// A .env file is optional.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file, %w", err)
			}
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		warnings = append(warnings, err.Error())
	}

	validator := validation.ConfigValidator{
		Display: validation.DisplayConfig{
			Locale:   c.Display.Locale,
			Currency: c.Display.Currency,
		},
		Exchange: validation.ExchangeConfig{
			APIURL:    c.Exchange.APIURL,
			Timeout:   c.Exchange.Timeout,
			CacheTTL:  c.Exchange.CacheTTL,
			RedisAddr: c.Exchange.RedisAddr,
		},
	}
	return append(warnings, validator.ValidateAll()...)
}

// Formatter returns the display formatter, falling back to the defaults when the
// configured locale or currency is invalid.
func (c *Configuration) Formatter() *format.Formatter {
	f, err := format.NewFormatter(c.Display.Locale, c.Display.Currency)
	if err != nil {
		return format.Default()
	}
	return f
}

// RateCache builds the configured rate cache. It returns nil when caching is
// disabled, so rates are always fetched fresh.
func (c *Configuration) RateCache() exchange.RateCache {
	if c.Exchange.CacheTTL <= 0 {
		return nil
	}
	if c.Exchange.RedisAddr != "" {
		return exchange.NewRedisCache(c.Exchange.RedisAddr, c.Exchange.CacheTTL)
	}
	return exchange.NewMemoryCache(c.Exchange.CacheTTL)
}

// ExchangeService wires the rate client and a new configured cache into a service.
func (c *Configuration) ExchangeService(logger *zap.Logger) *exchange.Service {
	return c.ExchangeServiceWithCache(c.RateCache(), logger)
}

// ExchangeServiceWithCache wires the rate client and the given cache into a service.
func (c *Configuration) ExchangeServiceWithCache(cache exchange.RateCache, logger *zap.Logger) *exchange.Service {
	client := exchange.NewClient(c.Exchange.APIURL, c.Exchange.Timeout, logger)
	return exchange.NewService(client, cache, logger)
}
