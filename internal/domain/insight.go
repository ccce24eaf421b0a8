package domain

// InsightKind classifies an advisory message.
type InsightKind string

const (
	InsightWarning  InsightKind = "warning"
	InsightCritical InsightKind = "critical"
	InsightSuccess  InsightKind = "success"
	InsightInfo     InsightKind = "info"
)

// IsAlert reports whether the kind counts toward the dashboard alert total.
func (k InsightKind) IsAlert() bool {
	return k == InsightCritical || k == InsightWarning
}

// Insight is a structured advisory message derived from a scenario.
type Insight struct {
	Kind   InsightKind `json:"type"`
	Icon   string      `json:"icon"`
	Title  string      `json:"title"`
	Detail string      `json:"detail"`
	Action string      `json:"action"`
}
