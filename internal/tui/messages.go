package tui

import (
	"github.com/rgehrsitz/carbonliab/internal/compare"
	"github.com/rgehrsitz/carbonliab/internal/config"
	"github.com/rgehrsitz/carbonliab/internal/output"
)

// Scene represents the different screens in the dashboard
type Scene int

const (
	SceneDashboard Scene = iota
	SceneInsights
	SceneSensitivity
	SceneDistribution
	SceneCompare
	SceneStakeholders
	SceneHelp
)

// scenes lists the screens reachable with tab, in order.
var scenes = []Scene{SceneDashboard, SceneInsights, SceneSensitivity, SceneDistribution, SceneCompare, SceneStakeholders}

// NavigateMsg requests a scene change
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals the scenario file has been loaded
type ConfigLoadedMsg struct {
	Set *config.ScenarioSet
}

// ConfigReloadedMsg carries a live reload from the file watcher
type ConfigReloadedMsg struct {
	Update config.Update
}

// RecalculatedMsg carries the report for the scenario at sequence Seq.
// Results for anything but the latest sequence are discarded.
type RecalculatedMsg struct {
	Seq    int
	Report *output.Report
	Err    error
}

// ComparisonCompleteMsg carries the pathway comparison for sequence Seq
type ComparisonCompleteMsg struct {
	Seq int
	Set *compare.ComparisonSet
	Err error
}
