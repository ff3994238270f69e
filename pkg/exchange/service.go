package exchange

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service fronts a RateSource with an optional cache and collapses concurrent
// fetches for the same base into one upstream request.
type Service struct {
	source RateSource
	cache  RateCache
	group  singleflight.Group
	logger *zap.Logger
}

// NewService creates a Service. A nil cache disables caching so every call fetches fresh rates.
func NewService(source RateSource, cache RateCache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, cache: cache, logger: logger}
}

// Fetch returns the rate table for base, implementing RateSource.
func (s *Service) Fetch(ctx context.Context, base string) (RateTable, error) {
	base = NormalizeCode(base)

	if s.cache != nil {
		if table, ok := s.cache.Get(ctx, base); ok {
			s.logger.Debug("serving cached exchange rates",
				zap.String("op", "exchange.Service.Fetch"),
				zap.String("base", base),
			)
			return table, nil
		}
	}

	ch := s.group.DoChan(base, func() (interface{}, error) {
		// Detached from the first caller so its cancellation does not fail the others.
		return s.source.Fetch(context.WithoutCancel(ctx), base)
	})

	select {
	case <-ctx.Done():
		return RateTable{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.logger.Error("exchange rate fetch failed",
				zap.String("op", "exchange.Service.Fetch"),
				zap.String("base", base),
				zap.Error(res.Err),
			)
			if !errors.Is(res.Err, ErrRatesUnavailable) {
				return RateTable{}, errors.Join(ErrRatesUnavailable, res.Err)
			}
			return RateTable{}, res.Err
		}

		table := res.Val.(RateTable)
		if s.cache != nil {
			if err := s.cache.Set(ctx, table); err != nil {
				s.logger.Warn("failed to cache exchange rates",
					zap.String("op", "exchange.Service.Fetch"),
					zap.String("base", base),
					zap.Error(err),
				)
			}
		}
		return table, nil
	}
}

// Convert fetches the from-based table and converts amount into to.
func (s *Service) Convert(ctx context.Context, amount float64, from, to string) (float64, RateTable, error) {
	table, err := s.Fetch(ctx, from)
	if err != nil {
		return 0, RateTable{}, err
	}
	converted, err := Convert(amount, table, from, to)
	if err != nil {
		return 0, table, err
	}
	return converted, table, nil
}
