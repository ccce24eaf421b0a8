// Package transform derives what-if scenarios from a base scenario through
// small composable edits to carbon price, discount rate and pathway.
package transform

import (
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/domain"
)

// ScenarioTransform defines the interface for all scenario transformations.
// Scenarios are values, so Apply always returns a new scenario and never
// touches base.
type ScenarioTransform interface {
	// Apply transforms a base scenario and returns the modified scenario.
	Apply(base domain.Scenario) (domain.Scenario, error)

	// Name returns a short identifier for this transform (e.g., "scale_price").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid for base without applying it.
	Validate(base domain.Scenario) error
}

// ApplyTransforms applies a sequence of transforms to a base scenario.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base domain.Scenario, transforms []ScenarioTransform) (domain.Scenario, error) {
	if base.IsZero() {
		return domain.Scenario{}, fmt.Errorf("base scenario cannot be empty")
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return domain.Scenario{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.Scenario{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.Scenario{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) *TransformError {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
