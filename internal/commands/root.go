// Package commands implements the finance-toolkit command line.
package commands

import (
	"fmt"
	"io"

	"github.com/iwvelando/finance-toolkit/internal/buildinfo"
	"github.com/iwvelando/finance-toolkit/internal/config"
	"github.com/iwvelando/finance-toolkit/pkg/constants"
	"github.com/iwvelando/finance-toolkit/pkg/output"
	"github.com/iwvelando/finance-toolkit/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the state shared by every subcommand once the root has loaded it.
type app struct {
	configPath   string
	logLevel     string
	outputFormat string

	conf   *config.Configuration
	logger *zap.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "finance-toolkit",
		Short:   "Personal finance calculators for the terminal and the browser",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&a.outputFormat, "output-format", "", "type of output override: pretty, csv")

	for _, def := range calculatorCommands {
		rootCmd.AddCommand(newCalculatorCommand(a, def))
	}
	rootCmd.AddCommand(newConvertCommand(a))
	rootCmd.AddCommand(newCurrenciesCommand(a))
	rootCmd.AddCommand(newServeCommand(a))

	return rootCmd
}

// load reads the configuration, builds the logger and settles the output format.
func (a *app) load() error {
	conf, err := config.LoadConfiguration(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// CLI override takes precedence over config
	if a.outputFormat != "" {
		conf.Output.Format = a.outputFormat
	}
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "commands.load"),
		)
	}

	a.conf = conf
	a.logger = logger
	return nil
}

// render writes a report in the configured output format.
func (a *app) render(w io.Writer, report output.Report) error {
	if a.conf.Output.Format == constants.OutputFormatCSV {
		return output.CsvFormat(w, report)
	}
	return output.PrettyFormat(w, report, a.conf.Formatter())
}
