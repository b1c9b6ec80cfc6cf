package transform

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/rothgo/internal/domain"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []ScenarioTransform{},
	}

	registry.Register(template)

	retrieved, ok := registry.Get("test_template")
	if !ok {
		t.Fatal("Expected to find template")
	}
	if retrieved.Name != template.Name {
		t.Errorf("Expected name %s, got %s", template.Name, retrieved.Name)
	}

	if _, ok = registry.Get("TEST_TEMPLATE"); !ok {
		t.Fatal("Expected case-insensitive lookup to work")
	}

	if _, ok = registry.Get("nonexistent"); ok {
		t.Error("Expected not to find nonexistent template")
	}
}

func TestTemplateRegistry_List(t *testing.T) {
	registry := NewTemplateRegistry()

	registry.Register(Template{Name: "template2", Description: "Second"})
	registry.Register(Template{Name: "template1", Description: "First"})

	names := registry.List()
	if len(names) != 2 {
		t.Fatalf("Expected 2 templates, got %d", len(names))
	}
	if names[0] != "template1" {
		t.Errorf("Expected sorted names, got %v", names)
	}
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	for _, name := range []string{
		"no_conversion", "fill_12", "fill_22", "fill_24", "irmaa_cap",
		"delay_ss_1", "delay_ss_2", "delay_ss_3", "qcd_10k", "survivor_5yr",
		"conservative", "aggressive",
	} {
		if _, ok := registry.Get(name); !ok {
			t.Errorf("Expected built-in template %s", name)
		}
	}
}

func TestApplyTemplate_BuiltIns(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := createTestScenario()

	tests := []struct {
		template string
		check    func(t *testing.T, s *domain.Scenario)
	}{
		{"fill_22", func(t *testing.T, s *domain.Scenario) {
			choice, err := s.ResolveStrategy()
			if err != nil {
				t.Fatal(err)
			}
			if choice != (domain.BracketFill{Target: domain.Bracket22}) {
				t.Errorf("Expected 22%% fill, got %v", choice)
			}
		}},
		{"irmaa_cap", func(t *testing.T, s *domain.Scenario) {
			if s.Strategy.Type != "irmaa_cap" {
				t.Errorf("Expected irmaa_cap, got %s", s.Strategy.Type)
			}
		}},
		{"no_conversion", func(t *testing.T, s *domain.Scenario) {
			choice, err := s.ResolveStrategy()
			if err != nil {
				t.Fatal(err)
			}
			if choice.Name() != "No Conversion" {
				t.Errorf("Expected baseline, got %s", choice.Name())
			}
		}},
		{"delay_ss_3", func(t *testing.T, s *domain.Scenario) {
			if s.Profile.EffectiveClaimAge() != 70 {
				t.Errorf("Expected claim age 70, got %d", s.Profile.EffectiveClaimAge())
			}
		}},
		{"qcd_10k", func(t *testing.T, s *domain.Scenario) {
			if !s.Profile.QCDEnabled || s.Profile.QCDAnnualAmount.IntPart() != 10000 {
				t.Errorf("Expected $10,000 QCD, got %+v", s.Profile)
			}
		}},
		{"survivor_5yr", func(t *testing.T, s *domain.Scenario) {
			if s.Profile.WidowTriggerYear() != 2030 {
				t.Errorf("Expected widow trigger 2030, got %d", s.Profile.WidowTriggerYear())
			}
		}},
		{"aggressive", func(t *testing.T, s *domain.Scenario) {
			if s.Strategy.TargetBracket != "24%" || s.Profile.SSDelayYears != 3 {
				t.Errorf("Unexpected aggressive scenario %+v", s)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			tmpl, ok := registry.Get(tt.template)
			if !ok {
				t.Fatalf("template %s not found", tt.template)
			}
			result, err := ApplyTemplate(base, tmpl)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if result.Name != tmpl.Name {
				t.Errorf("Expected result named %s, got %s", tmpl.Name, result.Name)
			}
			if err := result.Validate(); err != nil {
				t.Errorf("Template produced invalid scenario: %v", err)
			}
			tt.check(t, result)
		})
	}

	if base.Name != "Test Scenario" {
		t.Error("Base scenario name was modified")
	}
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"fill_22", []string{"fill_22"}},
		{"fill_22, irmaa_cap ,,delay_ss_1", []string{"fill_22", "irmaa_cap", "delay_ss_1"}},
	}

	for _, tt := range tests {
		got := ParseTemplateList(tt.input)
		if len(got) != len(tt.expected) {
			t.Errorf("ParseTemplateList(%q) = %v, want %v", tt.input, got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("ParseTemplateList(%q)[%d] = %s, want %s", tt.input, i, got[i], tt.expected[i])
			}
		}
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())

	for _, want := range []string{
		"Available Templates:",
		"Conversion Strategies:",
		"Social Security:",
		"Charitable Giving:",
		"Survivor Planning:",
		"Combination Strategies:",
		"fill_22",
		"rothgo compare base.yaml",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("Expected help to contain %q", want)
		}
	}

	if GetTemplateHelp(NewTemplateRegistry()) != "No templates registered" {
		t.Error("Expected empty-registry message")
	}
}
