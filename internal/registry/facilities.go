// Package registry holds the static reference data consumed by the liability
// engine: refinery facilities, global carbon market prices and the glossary.
// All data is fixed at package initialisation and exposed only through
// accessors that return copies.
package registry

import (
	"sort"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var facilities = []domain.FacilityRecord{
	{Name: "Jamnagar DTA", Operator: "RIL", Ownership: domain.OwnershipPrivate, Capacity: d("33.0"), Age: 25, Liability: d("5.57"), Risk: domain.RiskA, State: "Gujarat", Latitude: 22.47, Longitude: 70.07},
	{Name: "Jamnagar SEZ", Operator: "RIL", Ownership: domain.OwnershipPrivate, Capacity: d("35.2"), Age: 16, Liability: d("4.92"), Risk: domain.RiskAAA, State: "Gujarat", Latitude: 22.45, Longitude: 70.05},
	{Name: "Paradip", Operator: "IOCL", Ownership: domain.OwnershipPSU, Capacity: d("15.0"), Age: 8, Liability: d("2.62"), Risk: domain.RiskAAA, State: "Odisha", Latitude: 20.32, Longitude: 86.61},
	{Name: "Kochi", Operator: "BPCL", Ownership: domain.OwnershipPSU, Capacity: d("15.5"), Age: 58, Liability: d("0.95"), Risk: domain.RiskBB, State: "Kerala", Latitude: 9.93, Longitude: 76.27},
	{Name: "Panipat", Operator: "IOCL", Ownership: domain.OwnershipPSU, Capacity: d("15.0"), Age: 26, Liability: d("0.88"), Risk: domain.RiskAAA, State: "Haryana", Latitude: 29.39, Longitude: 76.97},
	{Name: "Mangalore", Operator: "MRPL", Ownership: domain.OwnershipPSU, Capacity: d("15.0"), Age: 36, Liability: d("0.85"), Risk: domain.RiskBBB, State: "Karnataka", Latitude: 12.91, Longitude: 74.86},
	{Name: "Gujarat", Operator: "IOCL", Ownership: domain.OwnershipPSU, Capacity: d("13.7"), Age: 59, Liability: d("0.78"), Risk: domain.RiskBB, State: "Gujarat", Latitude: 22.31, Longitude: 73.18},
	{Name: "BPCL Mumbai", Operator: "BPCL", Ownership: domain.OwnershipPSU, Capacity: d("12.0"), Age: 69, Liability: d("0.72"), Risk: domain.RiskB, State: "Maharashtra", Latitude: 19.03, Longitude: 72.85},
	{Name: "Chennai", Operator: "CPCL", Ownership: domain.OwnershipPSU, Capacity: d("10.5"), Age: 55, Liability: d("0.65"), Risk: domain.RiskBB, State: "Tamil Nadu", Latitude: 13.05, Longitude: 80.25},
	{Name: "Visakhapatnam", Operator: "HPCL", Ownership: domain.OwnershipPSU, Capacity: d("8.33"), Age: 67, Liability: d("0.58"), Risk: domain.RiskB, State: "AP", Latitude: 17.69, Longitude: 83.22},
	{Name: "HPCL Mumbai", Operator: "HPCL", Ownership: domain.OwnershipPSU, Capacity: d("7.5"), Age: 70, Liability: d("0.52"), Risk: domain.RiskB, State: "Maharashtra", Latitude: 19.08, Longitude: 72.88},
	{Name: "Mathura", Operator: "IOCL", Ownership: domain.OwnershipPSU, Capacity: d("8.0"), Age: 42, Liability: d("0.48"), Risk: domain.RiskBB, State: "UP", Latitude: 27.49, Longitude: 77.67},
	{Name: "Haldia", Operator: "IOCL", Ownership: domain.OwnershipPSU, Capacity: d("8.0"), Age: 50, Liability: d("0.46"), Risk: domain.RiskBB, State: "WB", Latitude: 22.03, Longitude: 88.06},
	{Name: "Bina", Operator: "BPCL", Ownership: domain.OwnershipPSU, Capacity: d("7.8"), Age: 13, Liability: d("0.44"), Risk: domain.RiskAAA, State: "MP", Latitude: 24.18, Longitude: 78.13},
	{Name: "Bathinda", Operator: "HMEL", Ownership: domain.OwnershipPSU, Capacity: d("11.3"), Age: 14, Liability: d("0.42"), Risk: domain.RiskAAA, State: "Punjab", Latitude: 30.21, Longitude: 74.95},
	{Name: "Numaligarh", Operator: "NRL", Ownership: domain.OwnershipPSU, Capacity: d("3.0"), Age: 25, Liability: d("0.22"), Risk: domain.RiskBBB, State: "Assam", Latitude: 26.63, Longitude: 93.72},
	{Name: "Vadodara", Operator: "IOCL", Ownership: domain.OwnershipPSU, Capacity: d("4.5"), Age: 62, Liability: d("0.18"), Risk: domain.RiskB, State: "Gujarat", Latitude: 22.31, Longitude: 73.18},
	{Name: "Barauni", Operator: "IOCL", Ownership: domain.OwnershipPSU, Capacity: d("6.0"), Age: 60, Liability: d("0.16"), Risk: domain.RiskB, State: "Bihar", Latitude: 25.47, Longitude: 86.02},
	{Name: "Guwahati", Operator: "IOCL", Ownership: domain.OwnershipPSU, Capacity: d("1.0"), Age: 62, Liability: d("0.08"), Risk: domain.RiskB, State: "Assam", Latitude: 26.14, Longitude: 91.74},
	{Name: "Digboi", Operator: "IOCL", Ownership: domain.OwnershipPSU, Capacity: d("0.65"), Age: 123, Liability: d("0.01"), Risk: domain.RiskB, State: "Assam", Latitude: 27.39, Longitude: 95.62},
	{Name: "Tatipaka", Operator: "ONGC", Ownership: domain.OwnershipPSU, Capacity: d("0.07"), Age: 23, Liability: d("0.02"), Risk: domain.RiskBBB, State: "AP", Latitude: 16.57, Longitude: 82.17},
	{Name: "Nagapattinam", Operator: "CPCL", Ownership: domain.OwnershipPSU, Capacity: d("1.0"), Age: 30, Liability: d("0.05"), Risk: domain.RiskBB, State: "TN", Latitude: 10.76, Longitude: 79.84},
	{Name: "Bongaigaon", Operator: "IOCL", Ownership: domain.OwnershipPSU, Capacity: d("2.35"), Age: 45, Liability: d("0.12"), Risk: domain.RiskBB, State: "Assam", Latitude: 26.48, Longitude: 90.56},
}

// Query filters the facility list. Zero-valued fields match everything;
// set fields are combined with logical AND.
type Query struct {
	Ownership domain.Ownership
	Risk      domain.RiskGrade
}

func (q Query) matches(f domain.FacilityRecord) bool {
	if q.Ownership != "" && f.Ownership != q.Ownership {
		return false
	}
	if q.Risk != "" && f.Risk != q.Risk {
		return false
	}
	return true
}

// All returns a copy of every facility in registry order.
func All() []domain.FacilityRecord {
	out := make([]domain.FacilityRecord, len(facilities))
	copy(out, facilities)
	return out
}

// Len returns the number of facilities.
func Len() int { return len(facilities) }

// Filter returns the facilities matching q, in registry order.
func Filter(q Query) []domain.FacilityRecord {
	out := make([]domain.FacilityRecord, 0, len(facilities))
	for _, f := range facilities {
		if q.matches(f) {
			out = append(out, f)
		}
	}
	return out
}

// ByOwnership is Filter with only the ownership set.
func ByOwnership(o domain.Ownership) []domain.FacilityRecord {
	return Filter(Query{Ownership: o})
}

// ByRisk is Filter with only the risk grade set.
func ByRisk(g domain.RiskGrade) []domain.FacilityRecord {
	return Filter(Query{Risk: g})
}

// HighRisk returns facilities graded B or BB.
func HighRisk() []domain.FacilityRecord {
	out := make([]domain.FacilityRecord, 0)
	for _, f := range facilities {
		if f.Risk.IsHighRisk() {
			out = append(out, f)
		}
	}
	return out
}

// CountByOwnership tallies facilities per ownership type.
func CountByOwnership() map[domain.Ownership]int {
	counts := map[domain.Ownership]int{
		domain.OwnershipPSU:     0,
		domain.OwnershipPrivate: 0,
	}
	for _, f := range facilities {
		counts[f.Ownership]++
	}
	return counts
}

// Counts returns the registry aggregate used in scenario summaries.
func Counts() domain.FacilityCounts {
	return domain.FacilityCounts{
		Total:    len(facilities),
		ByType:   CountByOwnership(),
		HighRisk: len(HighRisk()),
	}
}

// TopByLiability returns the n facilities with the largest liability share,
// largest first. Ties keep registry order.
func TopByLiability(n int) []domain.FacilityRecord {
	sorted := All()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Liability.GreaterThan(sorted[j].Liability)
	})
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// AverageAgeByOwnership returns the mean facility age per ownership type,
// rounded to one decimal.
func AverageAgeByOwnership() map[domain.Ownership]decimal.Decimal {
	sums := make(map[domain.Ownership]int)
	counts := make(map[domain.Ownership]int)
	for _, f := range facilities {
		sums[f.Ownership] += f.Age
		counts[f.Ownership]++
	}
	out := make(map[domain.Ownership]decimal.Decimal, len(sums))
	for o, sum := range sums {
		out[o] = decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(counts[o]))).Round(1)
	}
	return out
}
