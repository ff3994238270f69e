package validation

import (
	"fmt"
	"net/url"
	"time"

	"github.com/iwvelando/finance-toolkit/pkg/exchange"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// ValidateLocale checks a BCP 47 display locale such as "en-IN".
func ValidateLocale(locale string) error {
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("invalid display locale %q: %w", locale, err)
	}
	return nil
}

// ValidateCurrencyCode checks an ISO 4217 display currency.
func ValidateCurrencyCode(code string) error {
	if _, err := currency.ParseISO(code); err != nil {
		return fmt.Errorf("invalid display currency %q: %w", code, err)
	}
	return nil
}

// ValidateAPIURL checks that the exchange rate endpoint is an absolute http(s) URL.
func ValidateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid exchange api url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("exchange api url %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("exchange api url %q has no host", raw)
	}
	return nil
}

// DisplayConfig is the subset of display settings that can be validated.
type DisplayConfig struct {
	Locale   string
	Currency string
}

// ExchangeConfig is the subset of exchange settings that can be validated.
type ExchangeConfig struct {
	APIURL    string
	Timeout   time.Duration
	CacheTTL  time.Duration
	RedisAddr string
}

// ConfigValidator checks a loaded configuration for settings that will not behave
// as the user likely intended.
type ConfigValidator struct {
	Display  DisplayConfig
	Exchange ExchangeConfig
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	if err := ValidateLocale(cv.Display.Locale); err != nil {
		warnings = append(warnings, fmt.Sprintf("%v - falling back to the default locale", err))
	}
	if err := ValidateCurrencyCode(cv.Display.Currency); err != nil {
		warnings = append(warnings, fmt.Sprintf("%v - falling back to the default currency", err))
	} else if !exchange.IsSupported(cv.Display.Currency) {
		warnings = append(warnings, fmt.Sprintf("Display currency '%s' is not offered by the converter", cv.Display.Currency))
	}

	if err := ValidateAPIURL(cv.Exchange.APIURL); err != nil {
		warnings = append(warnings, err.Error())
	}
	if cv.Exchange.Timeout <= 0 {
		warnings = append(warnings, fmt.Sprintf("Exchange timeout %s is not positive - the default will be used", cv.Exchange.Timeout))
	}
	if cv.Exchange.CacheTTL < 0 {
		warnings = append(warnings, fmt.Sprintf("Exchange cache TTL %s is negative - rates will not be cached", cv.Exchange.CacheTTL))
	}
	if cv.Exchange.RedisAddr != "" && cv.Exchange.CacheTTL <= 0 {
		warnings = append(warnings, fmt.Sprintf("Redis address '%s' is set but cache TTL is zero - Redis will not be used", cv.Exchange.RedisAddr))
	}

	return warnings
}
