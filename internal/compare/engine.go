package compare

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rgehrsitz/rothgo/internal/calculation"
	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/rgehrsitz/rothgo/internal/output"
	"github.com/rgehrsitz/rothgo/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	ProjectionEngine  *calculation.ProjectionEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(projectionEngine *calculation.ProjectionEngine) *CompareEngine {
	return &CompareEngine{
		ProjectionEngine:  projectionEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates   []string // List of template names to apply
	SkipOwn     bool     // Do not include the scenario's own strategy as an alternative
	Concurrency int      // Maximum parallel projections; zero means one per run
}

// Compare projects the scenario without conversions as the base, then its own
// strategy and every requested template as alternatives. Runs are independent
// and execute in parallel.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	scenario *domain.Scenario,
	options CompareOptions,
) (*ComparisonSet, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario cannot be nil")
	}

	baseScenario, err := transform.ApplyTransforms(scenario, []transform.ScenarioTransform{
		&transform.SetStrategy{Strategy: domain.NoConversion()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build base scenario: %w", err)
	}
	baseScenario.Name = scenario.Name + " (no conversion)"

	alternatives := []*domain.Scenario{}
	if !options.SkipOwn {
		own, err := scenario.ResolveStrategy()
		if err != nil {
			return nil, err
		}
		if !(domain.Projection{Strategy: own}).IsBaseline() {
			alternatives = append(alternatives, scenario)
		}
	}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modifiedScenario, err := transform.ApplyTemplate(scenario, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		alternatives = append(alternatives, modifiedScenario)
	}

	return ce.run(ctx, baseScenario, alternatives, options.Concurrency)
}

// CompareScenarios compares explicit scenarios (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	base *domain.Scenario,
	alternatives []*domain.Scenario,
) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}
	return ce.run(ctx, base, alternatives, 0)
}

func (ce *CompareEngine) run(
	ctx context.Context,
	base *domain.Scenario,
	alternatives []*domain.Scenario,
	limit int,
) (*ComparisonSet, error) {
	scenarios := append([]*domain.Scenario{base}, alternatives...)
	projections := make([]*domain.Projection, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			strategy, err := sc.ResolveStrategy()
			if err != nil {
				return err
			}
			p, err := ce.ProjectionEngine.Run(sc.Profile, strategy)
			if err != nil {
				return fmt.Errorf("failed to calculate scenario %s: %w", sc.Name, err)
			}
			projections[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(base, projections[0])
	results := make([]ComparisonResult, 0, len(alternatives))
	for i, sc := range alternatives {
		altResult := ce.MetricsCalculator.CalculateMetrics(sc, projections[i+1])
		results = append(results, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	now := time.Now()
	compSet := &ComparisonSet{
		ReportID:           output.NewReportIDAt(now),
		GeneratedAt:        now,
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
		Profile:            base.Profile,
		TaxParameters:      ce.ProjectionEngine.Params,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	if l := ce.ProjectionEngine.Logger; l != nil {
		l.Debugf("compared %d scenario(s) against %s", len(alternatives), base.Name)
	}
	return compSet, nil
}
