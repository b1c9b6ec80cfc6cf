package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rothgo/internal/config"
	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/rgehrsitz/rothgo/internal/transform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rothgo",
		Short: "Roth conversion projection CLI",
		Long: `Project Traditional and Roth IRA balances year by year under a Roth
conversion strategy and compare the result with never converting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(),
		newCompareCmd(),
		newValidateCmd(),
		newTemplatesCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rothgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(out, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [scenario-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taxParams, _ := cmd.Flags().GetString("tax-params")

			scenario, _, err := config.NewInputParser().LoadFromFileWithTaxParameters(args[0], taxParams)
			if err != nil {
				return err
			}
			strategy, err := scenario.ResolveStrategy()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid: %s (%s, %d years from %d)\n",
				args[0], scenario.Name, strategy.Name(), scenario.Profile.Horizon(), scenario.Profile.FirstYear())
			return nil
		},
	}
	cmd.Flags().String("tax-params", "", "Path to a tax parameters YAML file to validate alongside")
	return cmd
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in comparison templates",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
		},
	}
}

// loadScenario reads a scenario and its tax tables, applying environment
// overrides. An empty taxParams falls back to ROTHGO_TAX_PARAMETERS.
func loadScenario(path, taxParams string, settings config.Settings) (*domain.Scenario, domain.TaxParameters, error) {
	if taxParams == "" {
		taxParams = settings.TaxParametersFile
	}
	scenario, params, err := config.NewInputParser().LoadFromFileWithTaxParameters(path, taxParams)
	if err != nil {
		return nil, domain.TaxParameters{}, err
	}
	settings.ApplyToScenario(scenario)
	return scenario, params, nil
}

// resolveFormat prefers an explicit flag over ROTHGO_FORMAT.
func resolveFormat(cmd *cobra.Command, settings config.Settings) string {
	format, _ := cmd.Flags().GetString("format")
	if !cmd.Flags().Changed("format") && settings.Format != "" {
		return settings.Format
	}
	return format
}

func resolveDebug(cmd *cobra.Command, settings config.Settings) bool {
	d, _ := cmd.Flags().GetBool("debug")
	return d || settings.Debug
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
