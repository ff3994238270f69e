package exchange

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/iwvelando/finance-toolkit/pkg/constants"
	"github.com/iwvelando/finance-toolkit/pkg/format"
	"go.uber.org/zap"
)

// State is the lifecycle of a Converter's rate table.
type State string

// Converter states.
const (
	StateIdle     State = "idle"
	StateFetching State = "fetching"
	StateReady    State = "ready"
	StateError    State = "error"
)

// Conversion is the converter's view of the current inputs.
type Conversion struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Rate      float64 `json:"rate,omitempty"`
	Converted float64 `json:"converted,omitempty"`
	RateInfo  string  `json:"rateInfo,omitempty"`
	State     State   `json:"state"`
	Message   string  `json:"message,omitempty"`
	// Available is false until a table has been fetched successfully.
	Available bool `json:"available"`
	// Stale is true when the table in use was fetched for a previous base.
	Stale bool `json:"stale,omitempty"`
	// Err explains why a fetched table could not produce a conversion.
	Err error `json:"-"`
}

// Converter holds the state of one currency-conversion form. Changing the base
// currency refetches rates; changing the target or amount only recomputes.
// When fetches overlap, the most recently issued one wins and earlier ones are
// cancelled.
type Converter struct {
	mu         sync.Mutex
	source     RateSource
	logger     *zap.Logger
	base       string
	target     string
	amount     float64
	table      RateTable
	state      State
	message    string
	generation uint64
	cancel     context.CancelFunc
}

// NewConverter creates an idle converter with the default USD→NPR pair.
func NewConverter(source RateSource, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		source: source,
		logger: logger,
		base:   constants.DefaultFromCurrency,
		target: constants.DefaultToCurrency,
		state:  StateIdle,
	}
}

// State returns the current lifecycle state.
func (c *Converter) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Refresh fetches rates for the current base. It blocks until the fetch completes,
// fails or is superseded by a later fetch.
func (c *Converter) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.generation++
	generation := c.generation
	base := c.base
	c.cancel = cancel
	c.state = StateFetching
	c.message = ""
	c.mu.Unlock()

	table, err := c.source.Fetch(fetchCtx, base)

	c.mu.Lock()
	defer c.mu.Unlock()
	cancel()

	if generation != c.generation {
		c.logger.Debug("discarding superseded exchange rate fetch",
			zap.String("op", "exchange.Converter.Refresh"),
			zap.String("base", base),
		)
		return nil
	}
	c.cancel = nil

	if err != nil {
		c.state = StateError
		c.message = UnavailableMessage
		c.logger.Error("exchange rate api error",
			zap.String("op", "exchange.Converter.Refresh"),
			zap.String("base", base),
			zap.Error(err),
		)
		if !errors.Is(err, ErrRatesUnavailable) {
			return fmt.Errorf("%w: %w", ErrRatesUnavailable, err)
		}
		return err
	}

	c.table = table
	c.state = StateReady
	return nil
}

// SetBase changes the base currency and refetches rates.
func (c *Converter) SetBase(ctx context.Context, code string) error {
	code = NormalizeCode(code)
	if !IsSupported(code) {
		return fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	c.mu.Lock()
	c.base = code
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetTarget changes the target currency without refetching.
func (c *Converter) SetTarget(code string) error {
	code = NormalizeCode(code)
	if !IsSupported(code) {
		return fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = code
	return nil
}

// SetAmount changes the amount to convert without refetching.
func (c *Converter) SetAmount(amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.amount = amount
}

// Swap exchanges base and target and refetches, since rates for the new base
// cannot be derived from the current table.
func (c *Converter) Swap(ctx context.Context) error {
	c.mu.Lock()
	c.base, c.target = c.target, c.base
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Result converts the current amount using the last good table. While a fetch is
// outstanding, or after one failed, that table may belong to a previous base; the
// result then reports the table's base as From and marks itself Stale.
func (c *Converter) Result() Conversion {
	c.mu.Lock()
	defer c.mu.Unlock()

	conv := Conversion{
		From:    c.base,
		To:      c.target,
		Amount:  c.amount,
		State:   c.state,
		Message: c.message,
	}
	if c.table.Empty() {
		return conv
	}

	from := c.table.Base
	converted, err := Convert(c.amount, c.table, from, c.target)
	if err != nil {
		if conv.Message == "" {
			conv.Message = err.Error()
		}
		conv.Err = err
		return conv
	}
	rate, _ := c.table.Rate(c.target)

	conv.From = from
	conv.Rate = rate
	conv.Converted = converted
	conv.RateInfo = format.RateInfo(from, c.target, rate)
	conv.Available = true
	conv.Stale = from != c.base
	return conv
}
