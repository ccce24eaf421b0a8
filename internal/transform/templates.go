package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/carbonliab/internal/domain"
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
	Category    string
	Transforms  []ScenarioTransform
}

// Apply runs the template's transforms against base.
func (t Template) Apply(base domain.Scenario) (domain.Scenario, error) {
	return ApplyTransforms(base, t.Transforms)
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
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const (
	categoryPrice    = "Carbon Price"
	categoryRate     = "Discount Rate"
	categoryPathway  = "Pathway"
	categoryCombined = "Policy Packages"
)

// CreateBuiltInTemplates creates a template registry with common policy what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Carbon price templates
	registry.Register(Template{
		Name:        "price_plus_50",
		Description: "Carbon price 50% higher",
		Category:    categoryPrice,
		Transforms:  []ScenarioTransform{&ScaleCarbonPrice{Percent: decimal.NewFromInt(50)}},
	})
	registry.Register(Template{
		Name:        "price_double",
		Description: "Carbon price doubled",
		Category:    categoryPrice,
		Transforms:  []ScenarioTransform{&ScaleCarbonPrice{Percent: decimal.NewFromInt(100)}},
	})
	registry.Register(Template{
		Name:        "price_halved",
		Description: "Carbon price cut in half",
		Category:    categoryPrice,
		Transforms:  []ScenarioTransform{&ScaleCarbonPrice{Percent: decimal.NewFromInt(-50)}},
	})
	registry.Register(Template{
		Name:        "eu_ets_parity",
		Description: "Carbon price at the EU ETS reference price",
		Category:    categoryPrice,
		Transforms:  []ScenarioTransform{&MatchMarketPrice{Market: "EU ETS"}},
	})

	// Discount rate templates
	registry.Register(Template{
		Name:        "cheap_capital",
		Description: "Discount rate 3 points lower",
		Category:    categoryRate,
		Transforms:  []ScenarioTransform{&AdjustDiscountRate{Points: decimal.NewFromInt(-3)}},
	})
	registry.Register(Template{
		Name:        "costly_capital",
		Description: "Discount rate 3 points higher",
		Category:    categoryRate,
		Transforms:  []ScenarioTransform{&AdjustDiscountRate{Points: decimal.NewFromInt(3)}},
	})

	// Pathway templates
	registry.Register(Template{
		Name:        "stalled_transition",
		Description: "No additional climate action (BAU)",
		Category:    categoryPathway,
		Transforms:  []ScenarioTransform{&SetPathway{Pathway: domain.PathwayBAU}},
	})
	registry.Register(Template{
		Name:        "early_action",
		Description: "Retire high-emission assets ahead of schedule",
		Category:    categoryPathway,
		Transforms:  []ScenarioTransform{&SetPathway{Pathway: domain.PathwayEarlyAction}},
	})

	// Combinations
	registry.Register(Template{
		Name:        "cbam_alignment",
		Description: "EU ETS price with the transition accelerated one step",
		Category:    categoryCombined,
		Transforms: []ScenarioTransform{
			&MatchMarketPrice{Market: "EU ETS"},
			&ShiftPathway{Steps: 1},
		},
	})
	registry.Register(Template{
		Name:        "delayed_policy",
		Description: "Carbon price halved and the transition slowed one step",
		Category:    categoryCombined,
		Transforms: []ScenarioTransform{
			&ScaleCarbonPrice{Percent: decimal.NewFromInt(-50)},
			&ShiftPathway{Steps: -1},
		},
	})

	return registry
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(list string) []string {
	if list == "" {
		return nil
	}

	parts := strings.Split(list, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	for _, name := range registry.List() {
		t := registry.templates[name]
		category := t.Category
		if category == "" {
			category = "Other"
		}
		categories[category] = append(categories[category], t)
	}

	for _, category := range []string{categoryPrice, categoryRate, categoryPathway, categoryCombined, "Other"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-22s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  carbonliab compare --with price_double,early_action\n")
	sb.WriteString("  carbonliab compare --transform \"scale_price:pct=25;shift_pathway:steps=1\"\n")

	return sb.String()
}
