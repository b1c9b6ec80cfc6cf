package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rothgo/internal/calculation"
	"github.com/rgehrsitz/rothgo/internal/config"
	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/rgehrsitz/rothgo/internal/output"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [scenario-file]",
		Short: "Project a Roth conversion strategy year by year",
		Long: `Project a scenario's Roth conversion strategy from the current age to the
year before life expectancy.

Examples:
  rothgo project scenario.yaml
  rothgo project scenario.yaml --strategy bracket_fill --bracket 22% --baseline
  rothgo project scenario.yaml --strategy manual --amount 50000 -f csv
  rothgo project scenario.yaml -f html --output-dir reports`,
		Args: cobra.ExactArgs(1),
		RunE: runProject,
	}

	cmd.Flags().String("strategy", "", "Override the strategy (manual, bracket_fill, irmaa_cap, none)")
	cmd.Flags().String("bracket", "", "Bracket to fill for bracket_fill (12%, 22%, 24%)")
	cmd.Flags().String("amount", "", "Annual conversion amount for manual")
	cmd.Flags().String("tax-params", "", "Path to a tax parameters YAML file (default: built-in 2025 tables)")
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().Bool("baseline", false, "Also project the no-conversion baseline and report the net benefit")
	cmd.Flags().Bool("summary", false, "Console output without the year-by-year table")
	cmd.Flags().String("output-dir", "", "Write the report to a timestamped file in this directory instead of stdout")
	cmd.Flags().Bool("debug", false, "Enable debug logging of every projected year")
	return cmd
}

func runProject(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	taxParams, _ := cmd.Flags().GetString("tax-params")
	scenario, params, err := loadScenario(args[0], taxParams, settings)
	if err != nil {
		return err
	}
	if err := applyStrategyFlags(cmd, scenario); err != nil {
		return err
	}
	strategy, err := scenario.ResolveStrategy()
	if err != nil {
		return err
	}

	formatName := resolveFormat(cmd, settings)
	formatter := output.GetFormatterByName(formatName)
	if formatter == nil {
		return fmt.Errorf("unknown output format %q (valid: %s)", formatName, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	if summaryOnly, _ := cmd.Flags().GetBool("summary"); summaryOnly {
		if _, ok := formatter.(output.ConsoleFormatter); ok {
			formatter = output.ConsoleFormatter{SummaryOnly: true}
		}
	}

	debugMode := resolveDebug(cmd, settings)
	logger, err := newLogger(debugMode)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	engine := calculation.NewProjectionEngine(params)
	engine.SetLogger(logger)
	engine.Debug = debugMode

	projection, err := engine.Run(scenario.Profile, strategy)
	if err != nil {
		return err
	}
	runs := []domain.Projection{*projection}

	if withBaseline, _ := cmd.Flags().GetBool("baseline"); withBaseline && !projection.IsBaseline() {
		baseline, err := engine.Run(scenario.Profile, domain.NoConversion())
		if err != nil {
			return err
		}
		runs = append(runs, *baseline)
	}
	if n := len(projection.Summary.NegativeBalanceYears); n > 0 {
		logger.Warnf("%s overdraws the Traditional IRA in %d year(s) starting %d",
			projection.StrategyName, n, projection.Summary.NegativeBalanceYears[0])
	}

	set := output.NewProjectionSet(scenario.Name, scenario.Profile, params, runs...)

	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		path, err := output.WriteFormatted(formatter, set, outputDir, output.FileExtension(formatter.Name()))
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	}

	data, err := formatter.Format(set)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// applyStrategyFlags layers --strategy, --amount and --bracket over the
// scenario file's strategy block.
func applyStrategyFlags(cmd *cobra.Command, scenario *domain.Scenario) error {
	cfg := scenario.Strategy
	flags := cmd.Flags()

	if flags.Changed("strategy") {
		name, _ := flags.GetString("strategy")
		cfg = domain.StrategyConfig{Type: name, Amount: cfg.Amount, TargetBracket: cfg.TargetBracket}
	}
	if flags.Changed("amount") {
		raw, _ := flags.GetString("amount")
		amount, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
		if err != nil {
			return fmt.Errorf("%w: invalid --amount %q", domain.ErrInvalidStrategy, raw)
		}
		cfg.Amount = amount
	}
	if flags.Changed("bracket") {
		cfg.TargetBracket, _ = flags.GetString("bracket")
	}

	scenario.Strategy = cfg
	return nil
}
