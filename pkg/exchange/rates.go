// Package exchange fetches exchange rates and converts amounts between currencies.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRatesUnavailable is returned when no usable rate table could be obtained.
	ErrRatesUnavailable = errors.New("exchange rates unavailable")

	// ErrUnknownCurrency is returned when a rate table has no entry for a currency.
	ErrUnknownCurrency = errors.New("unknown currency")
)

// UnavailableMessage is the user-facing text shown when rates cannot be fetched.
const UnavailableMessage = "Could not fetch exchange rates."

// RateTable maps currency codes to their rate relative to Base.
type RateTable struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetchedAt"`
}

// Empty reports whether the table holds no rates.
func (t RateTable) Empty() bool {
	return len(t.Rates) == 0
}

// Rate returns the Base→code rate.
func (t RateTable) Rate(code string) (float64, error) {
	if t.Empty() {
		return 0, ErrRatesUnavailable
	}
	rate, ok := t.Rates[NormalizeCode(code)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	return rate, nil
}

// RateSource fetches a rate table whose base is the given currency.
type RateSource interface {
	Fetch(ctx context.Context, base string) (RateTable, error)
}

// Convert multiplies amount by the from→to rate. The table must have been fetched
// with from as its base, which makes table.Rates[to] the direct rate; published
// rates are not inverted because they are not guaranteed to be reciprocal. A table
// without a recorded base is trusted to match from.
func Convert(amount float64, table RateTable, from, to string) (float64, error) {
	if table.Empty() {
		return 0, ErrRatesUnavailable
	}
	if table.Base != "" && NormalizeCode(table.Base) != NormalizeCode(from) {
		return 0, fmt.Errorf("%w: table base %s does not match %s", ErrRatesUnavailable, table.Base, from)
	}
	rate, err := table.Rate(to)
	if err != nil {
		return 0, err
	}
	return amount * rate, nil
}
