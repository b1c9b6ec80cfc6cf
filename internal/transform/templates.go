package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func strategyTemplate(name, description string, s domain.StrategyChoice) Template {
	return Template{
		Name:        name,
		Description: description,
		Transforms:  []ScenarioTransform{&SetStrategy{Strategy: s}},
	}
}

// CreateBuiltInTemplates creates a template registry with the common conversion plans
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(strategyTemplate("no_conversion", "Baseline: never convert", domain.NoConversion()))
	registry.Register(strategyTemplate("fill_12", "Convert to the top of the 12% bracket each year",
		domain.BracketFill{Target: domain.Bracket12}))
	registry.Register(strategyTemplate("fill_22", "Convert to the top of the 22% bracket each year",
		domain.BracketFill{Target: domain.Bracket22}))
	registry.Register(strategyTemplate("fill_24", "Convert to the top of the 24% bracket each year",
		domain.BracketFill{Target: domain.Bracket24}))
	registry.Register(strategyTemplate("irmaa_cap", "Convert up to the IRMAA threshold each year",
		domain.MaxToIRMAAThreshold{}))

	// Social Security delay templates
	for years := 1; years <= 3; years++ {
		registry.Register(Template{
			Name:        fmt.Sprintf("delay_ss_%d", years),
			Description: fmt.Sprintf("Delay Social Security by %d year(s)", years),
			Transforms:  []ScenarioTransform{&DelaySocialSecurity{Years: years}},
		})
	}

	registry.Register(Template{
		Name:        "qcd_10k",
		Description: "Give $10,000 per year as QCDs from age 70",
		Transforms: []ScenarioTransform{
			&EnableQCD{Amount: decimal.NewFromInt(10000), StartAge: 70},
		},
	})

	registry.Register(Template{
		Name:        "survivor_5yr",
		Description: "Survivor files single after 5 years",
		Transforms:  []ScenarioTransform{&SurvivorAfter{Years: 5}},
	})

	// Combination templates
	registry.Register(Template{
		Name:        "conservative",
		Description: "Fill the 12% bracket and give $10,000 per year as QCDs",
		Transforms: []ScenarioTransform{
			&SetStrategy{Strategy: domain.BracketFill{Target: domain.Bracket12}},
			&EnableQCD{Amount: decimal.NewFromInt(10000), StartAge: 70},
		},
	})

	registry.Register(Template{
		Name:        "aggressive",
		Description: "Fill the 24% bracket and delay Social Security 3 years",
		Transforms: []ScenarioTransform{
			&SetStrategy{Strategy: domain.BracketFill{Target: domain.Bracket24}},
			&DelaySocialSecurity{Years: 3},
		},
	})

	registry.Register(Template{
		Name:        "fill_22_delay_ss",
		Description: "Fill the 22% bracket while delaying Social Security 2 years",
		Transforms: []ScenarioTransform{
			&SetStrategy{Strategy: domain.BracketFill{Target: domain.Bracket22}},
			&DelaySocialSecurity{Years: 2},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario and names the result after the template
func ApplyTemplate(base *domain.Scenario, template Template) (*domain.Scenario, error) {
	result, err := ApplyTransforms(base, template.Transforms)
	if err != nil {
		return nil, err
	}
	result.Name = template.Name
	result.Description = template.Description
	return result, nil
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

func templateCategory(name string) string {
	switch {
	case name == "no_conversion" || name == "irmaa_cap" || (strings.HasPrefix(name, "fill_") && !strings.Contains(name, "delay")):
		return "Conversion Strategies"
	case strings.HasPrefix(name, "delay_ss_"):
		return "Social Security"
	case strings.HasPrefix(name, "qcd_"):
		return "Charitable Giving"
	case strings.HasPrefix(name, "survivor_"):
		return "Survivor Planning"
	default:
		return "Combination Strategies"
	}
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	order := []string{"Conversion Strategies", "Social Security", "Charitable Giving", "Survivor Planning", "Combination Strategies"}
	categories := make(map[string][]Template, len(order))
	for _, name := range registry.List() {
		t := registry.templates[name]
		c := templateCategory(name)
		categories[c] = append(categories[c], t)
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  rothgo compare base.yaml --with fill_22,irmaa_cap\n")
	sb.WriteString("  rothgo compare base.yaml --with conservative,aggressive\n")

	return sb.String()
}
