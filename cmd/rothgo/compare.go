package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rothgo/internal/calculation"
	"github.com/rgehrsitz/rothgo/internal/compare"
	"github.com/rgehrsitz/rothgo/internal/config"
	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/rgehrsitz/rothgo/internal/output"
	"github.com/rgehrsitz/rothgo/internal/transform"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [scenario-file] [alternative-files...]",
		Short: "Compare conversion strategies against never converting",
		Long: `Compare a scenario's strategy and any built-in templates against the
no-conversion baseline. Extra scenario files are compared against the first
file as given instead.

Examples:
  rothgo compare scenario.yaml --with fill_12,fill_22,irmaa_cap
  rothgo compare scenario.yaml --with conservative,aggressive --format csv
  rothgo compare base.yaml fill24.yaml qcd.yaml
  rothgo compare --list-templates`,
		Args: cobra.ArbitraryArgs,
		RunE: runCompare,
	}

	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json, html)")
	cmd.Flags().String("tax-params", "", "Path to a tax parameters YAML file (default: built-in 2025 tables)")
	cmd.Flags().Int("concurrency", 0, "Maximum projections to run at once (0 = all)")
	cmd.Flags().Bool("list-templates", false, "List all available templates")
	cmd.Flags().Bool("compact", false, "One-line table output")
	cmd.Flags().Bool("debug", false, "Enable debug logging")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list-templates"); list {
		fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("scenario file required for comparison (use --list-templates to see available templates)")
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	taxParams, _ := cmd.Flags().GetString("tax-params")
	scenario, params, err := loadScenario(args[0], taxParams, settings)
	if err != nil {
		return err
	}

	templatesStr, _ := cmd.Flags().GetString("with")
	templateNames := transform.ParseTemplateList(templatesStr)
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	debugMode := resolveDebug(cmd, settings)
	logger, err := newLogger(debugMode)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	engine := calculation.NewProjectionEngine(params)
	engine.SetLogger(logger)
	engine.Debug = debugMode
	compareEngine := compare.NewCompareEngine(engine)

	var comparisonSet *compare.ComparisonSet
	if len(args) > 1 {
		alternatives, err := loadAlternatives(compareEngine, scenario, args[1:], templateNames, settings)
		if err != nil {
			return err
		}
		comparisonSet, err = compareEngine.CompareScenarios(cmd.Context(), scenario, alternatives)
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
	} else {
		comparisonSet, err = compareEngine.Compare(cmd.Context(), scenario, compare.CompareOptions{
			Templates:   templateNames,
			Concurrency: concurrency,
		})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
	}
	comparisonSet.ConfigPath = args[0]

	return writeComparison(cmd, comparisonSet, resolveFormat(cmd, settings))
}

// loadAlternatives reads the extra scenario files and applies any templates
// to the base scenario.
func loadAlternatives(ce *compare.CompareEngine, base *domain.Scenario, files, templates []string, settings config.Settings) ([]*domain.Scenario, error) {
	parser := config.NewInputParser()
	alternatives := make([]*domain.Scenario, 0, len(files)+len(templates))
	for _, file := range files {
		alt, err := parser.LoadFromFile(file)
		if err != nil {
			return nil, err
		}
		settings.ApplyToScenario(alt)
		alternatives = append(alternatives, alt)
	}
	for _, name := range templates {
		template, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		alt, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", name, err)
		}
		alternatives = append(alternatives, alt)
	}
	return alternatives, nil
}

func writeComparison(cmd *cobra.Command, compSet *compare.ComparisonSet, format string) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "csv":
		data, err := (&compare.CSVFormatter{}).Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		fmt.Fprint(out, data)

	case "json":
		data, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprint(out, data)

	case "html":
		data, err := output.HTMLFormatter{}.Format(compSet.ToProjectionSet())
		if err != nil {
			return fmt.Errorf("failed to format HTML: %w", err)
		}
		_, err = out.Write(data)
		return err

	case "table", "console", "text", "":
		formatter := &compare.TableFormatter{}
		if compact, _ := cmd.Flags().GetBool("compact"); compact {
			fmt.Fprintln(out, formatter.FormatCompact(compSet))
			return nil
		}
		fmt.Fprint(out, formatter.Format(compSet))

	default:
		return fmt.Errorf("unknown output format: %s (valid: table, csv, json, html)", format)
	}
	return nil
}
