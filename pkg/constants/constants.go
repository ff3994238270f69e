// Package constants provides shared constants for the finance-toolkit application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// DisplayDecimals is the number of decimals shown for currency amounts
	DisplayDecimals = 2

	// RateDecimals is the number of decimals shown for exchange rates
	RateDecimals = 4

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// MaxTermYears bounds loan and growth terms accepted from a form
	MaxTermYears = 100
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Theme constants
const (
	// ThemeLight is the default chart palette
	ThemeLight = "light"

	// ThemeDark is the dark chart palette
	ThemeDark = "dark"
)

// Display defaults
const (
	// DefaultLocale is the locale used for number grouping
	DefaultLocale = "en-IN"

	// DefaultCurrency is the currency used for calculator results
	DefaultCurrency = "NPR"

	// DefaultFromCurrency is the initial base currency of the converter
	DefaultFromCurrency = "USD"

	// DefaultToCurrency is the initial target currency of the converter
	DefaultToCurrency = "NPR"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides
	EnvPrefix = "FINANCE_TOOLKIT"
)

// Exchange rate source defaults
const (
	// DefaultExchangeAPIURL is the rate source queried with ?base=CODE
	DefaultExchangeAPIURL = "https://open.er-api.com/v6/latest"

	// DefaultExchangeTimeout bounds a single rate fetch
	DefaultExchangeTimeout = 10 * time.Second

	// DefaultExchangeCacheTTL of zero disables rate caching
	DefaultExchangeCacheTTL time.Duration = 0
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum JSON request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)
