package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/finance-toolkit/pkg/constants"
	"github.com/iwvelando/finance-toolkit/pkg/exchange"
	"github.com/iwvelando/finance-toolkit/pkg/input"
	"github.com/iwvelando/finance-toolkit/pkg/output"
	"github.com/spf13/cobra"
)

func newConvertCommand(a *app) *cobra.Command {
	var from, to, amount string
	var swap bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an amount between currencies at live rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConvert(cmd, from, to, input.FloatOrZero(amount), swap)
		},
	}

	cmd.Flags().StringVar(&from, "from", constants.DefaultFromCurrency, "currency to convert from")
	cmd.Flags().StringVar(&to, "to", constants.DefaultToCurrency, "currency to convert to")
	cmd.Flags().StringVar(&amount, "amount", "1", "amount to convert")
	cmd.Flags().BoolVar(&swap, "swap", false, "swap the from and to currencies")

	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, from, to string, amount float64, swap bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	converter := exchange.NewConverter(a.conf.ExchangeService(a.logger), a.logger)
	if err := converter.SetTarget(to); err != nil {
		return err
	}
	converter.SetAmount(amount)
	if err := converter.SetBase(ctx, from); err != nil {
		return convertError(err)
	}
	if swap {
		if err := converter.Swap(ctx); err != nil {
			return convertError(err)
		}
	}

	result := converter.Result()
	if !result.Available {
		if result.Err != nil {
			return fmt.Errorf("%s %w", exchange.UnavailableMessage, result.Err)
		}
		return fmt.Errorf("%w: %s", exchange.ErrRatesUnavailable, result.Message)
	}
	formatter := a.conf.Formatter()
	report := output.Report{
		Title: "Currency Converter",
		Fields: []output.Field{
			{Label: "Amount", Kind: output.KindText, Text: formatter.CurrencyOf(result.Amount, result.From)},
			{Label: "Rate", Kind: output.KindText, Text: result.RateInfo},
			{Label: "Converted", Kind: output.KindText, Text: formatter.CurrencyOf(result.Converted, result.To), Highlight: true},
		},
	}
	return a.render(cmd.OutOrStdout(), report)
}

func convertError(err error) error {
	if errors.Is(err, exchange.ErrUnknownCurrency) {
		return err
	}
	return fmt.Errorf("%s %w", exchange.UnavailableMessage, err)
}

func newCurrenciesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List the currencies the converter offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := output.Report{
				Title: "Supported Currencies",
				Fields: []output.Field{{
					Label: "Currencies",
					Kind:  output.KindText,
					Text:  strings.Join(exchange.SupportedCurrencies(), " "),
				}},
			}
			return a.render(cmd.OutOrStdout(), report)
		},
	}
}
