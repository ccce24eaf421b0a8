package transform

import (
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/domain"
)

// SetPathway replaces the decarbonization pathway.
type SetPathway struct {
	Pathway domain.Pathway
}

func (t *SetPathway) Name() string { return "set_pathway" }

func (t *SetPathway) Description() string {
	return fmt.Sprintf("Switch to the %s pathway", t.Pathway)
}

func (t *SetPathway) Validate(base domain.Scenario) error {
	if !t.Pathway.Valid() {
		return NewTransformError(t.Name(), "validate", "invalid pathway",
			&domain.InvalidPathwayError{Name: string(t.Pathway)})
	}
	return nil
}

func (t *SetPathway) Apply(base domain.Scenario) (domain.Scenario, error) {
	return base.WithPathway(t.Pathway)
}

// ShiftPathway moves along the pathway table: positive steps toward Early
// Action, negative toward BAU.
type ShiftPathway struct {
	Steps int
}

func (t *ShiftPathway) Name() string { return "shift_pathway" }

func (t *ShiftPathway) Description() string {
	if t.Steps < 0 {
		return fmt.Sprintf("Slow the transition by %d pathway step(s)", -t.Steps)
	}
	return fmt.Sprintf("Accelerate the transition by %d pathway step(s)", t.Steps)
}

func (t *ShiftPathway) Validate(base domain.Scenario) error {
	if _, err := t.target(base); err != nil {
		return err
	}
	return nil
}

func (t *ShiftPathway) Apply(base domain.Scenario) (domain.Scenario, error) {
	p, err := t.target(base)
	if err != nil {
		return domain.Scenario{}, err
	}
	return base.WithPathway(p)
}

// target resolves the shifted pathway. Pathways are ordered from BAU to
// Early Action.
func (t *ShiftPathway) target(base domain.Scenario) (domain.Pathway, error) {
	pathways := domain.Pathways()
	current := -1
	for i, p := range pathways {
		if p == base.Pathway() {
			current = i
			break
		}
	}
	if current < 0 {
		return "", NewTransformError(t.Name(), "validate", "base pathway is invalid",
			&domain.InvalidPathwayError{Name: string(base.Pathway())})
	}

	next := current + t.Steps
	if next < 0 || next >= len(pathways) {
		return "", NewTransformError(t.Name(), "validate",
			fmt.Sprintf("cannot shift %s by %d steps", base.Pathway(), t.Steps), nil)
	}
	return pathways[next], nil
}
