package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Pathway is a named decarbonization trajectory
type Pathway string

const (
	PathwayBAU         Pathway = "BAU"
	PathwayModerate    Pathway = "Moderate"
	PathwayAggressive  Pathway = "Aggressive"
	PathwayEarlyAction Pathway = "Early Action"
)

// pathwayTable maps each pathway to its liability multiplier. Ordered by
// multiplier, highest first. Never modified after package init.
var pathwayTable = []struct {
	pathway    Pathway
	multiplier decimal.Decimal
}{
	{PathwayBAU, decimal.RequireFromString("1.44")},
	{PathwayModerate, decimal.RequireFromString("1.21")},
	{PathwayAggressive, decimal.RequireFromString("1.00")},
	{PathwayEarlyAction, decimal.RequireFromString("0.92")},
}

// Pathways returns every known pathway ordered by multiplier, highest first.
func Pathways() []Pathway {
	out := make([]Pathway, len(pathwayTable))
	for i, entry := range pathwayTable {
		out[i] = entry.pathway
	}
	return out
}

// PathwayMultiplier returns the liability multiplier for a pathway.
func PathwayMultiplier(p Pathway) (decimal.Decimal, bool) {
	for _, entry := range pathwayTable {
		if entry.pathway == p {
			return entry.multiplier, true
		}
	}
	return decimal.Zero, false
}

// Valid reports whether p is a known pathway.
func (p Pathway) Valid() bool {
	_, ok := PathwayMultiplier(p)
	return ok
}

func (p Pathway) String() string { return string(p) }

// ParsePathway resolves a pathway name. Names must match exactly.
func ParsePathway(name string) (Pathway, error) {
	if p := Pathway(name); p.Valid() {
		return p, nil
	}
	return "", &InvalidPathwayError{Name: name}
}

// PathwayNames returns the pathway names as plain strings, for flag help and errors.
func PathwayNames() []string {
	names := make([]string, len(pathwayTable))
	for i, entry := range pathwayTable {
		names[i] = string(entry.pathway)
	}
	return names
}

// MustPathway is ParsePathway for constant input; it panics on unknown names.
func MustPathway(name string) Pathway {
	p, err := ParsePathway(name)
	if err != nil {
		panic(fmt.Sprintf("domain: %v", err))
	}
	return p
}
