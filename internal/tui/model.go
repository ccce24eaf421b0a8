// Package tui implements the interactive carbon liability dashboard.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/carbonliab/internal/calculation"
	"github.com/rgehrsitz/carbonliab/internal/compare"
	"github.com/rgehrsitz/carbonliab/internal/config"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/output"
	"github.com/rgehrsitz/carbonliab/internal/tui/components"
)

// Slider bounds match the dashboard controls.
const (
	PriceMin, PriceMax, PriceStep = 10.0, 200.0, 5.0
	RateMin, RateMax, RateStep    = 5.0, 15.0, 0.5
)

const (
	focusPrice = iota
	focusRate
	focusPathway
	focusCount
)

// Model is the main application model
type Model struct {
	currentScene  Scene
	previousScene Scene
	width         int
	height        int

	configPath   string
	set          *config.ScenarioSet
	scenarioName string
	engine       *calculation.CarbonEngine
	reports      *output.ReportBuilder
	comparer     *compare.CompareEngine
	watcher      *config.Watcher

	priceSlider *components.ParameterSlider
	rateSlider  *components.ParameterSlider
	pathway     *components.ChoiceSelector
	focus       int
	stakeholder domain.Stakeholder

	// seq identifies the scenario the sliders currently describe
	seq           int
	report        *output.Report
	comparison    *compare.ComparisonSet
	comparisonSeq int

	loading        bool
	loadingMessage string
	err            error
	notice         string

	keys keyMap
	help help.Model
}

// NewModel creates a dashboard on the base case. When configPath is set the
// scenario file is loaded on Init and its first scenario becomes the start.
func NewModel(configPath string) Model {
	pathways := make([]string, 0, len(domain.Pathways()))
	for _, p := range domain.Pathways() {
		pathways = append(pathways, string(p))
	}

	m := Model{
		currentScene:  SceneDashboard,
		previousScene: SceneDashboard,
		configPath:    configPath,
		set:           config.DefaultScenarioSet(),
		priceSlider: components.NewParameterSlider("Carbon Price", domain.DefaultCarbonPrice, PriceMin, PriceMax, PriceStep).
			WithPrefix("$").WithUnit("/t").WithDescription("USD per tonne CO2"),
		rateSlider: components.NewParameterSlider("Discount Rate", domain.DefaultDiscountRate, RateMin, RateMax, RateStep).
			WithFormat("%.1f").WithUnit("%"),
		pathway:       components.NewChoiceSelector("Pathway", pathways, string(domain.DefaultPathway)),
		stakeholder:   domain.StakeholderGovernment,
		comparisonSeq: -1,
		keys:          defaultKeyMap(),
		help:          help.New(),
	}
	m.useSet(m.set)
	m.applyFocus()
	return m
}

// WithEngine replaces the calculation engine, e.g. with a seeded one.
func (m Model) WithEngine(engine *calculation.CarbonEngine) Model {
	m.setEngine(engine)
	return m
}

// WithWatcher delivers live reloads from a started watcher.
func (m Model) WithWatcher(w *config.Watcher) Model {
	m.watcher = w
	return m
}

// Init starts the first calculation, or loads the scenario file first.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.configPath != "" {
		cmds = append(cmds, loadConfigCmd(m.configPath))
	} else {
		cmds = append(cmds, m.recalcCmd())
	}
	if m.watcher != nil {
		cmds = append(cmds, watchCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m *Model) setEngine(engine *calculation.CarbonEngine) {
	m.engine = engine
	reports := output.NewReportBuilder(engine)
	if m.reports != nil {
		reports.SensitivityFactor = m.reports.SensitivityFactor
		reports.SensitivityRange = m.reports.SensitivityRange
	}
	m.reports = reports
	m.comparer = compare.NewCompareEngine(engine)
}

// useSet installs a scenario set: its engine, sensitivity defaults and
// starting scenario.
func (m *Model) useSet(set *config.ScenarioSet) {
	m.set = set
	m.setEngine(set.NewEngine())
	m.reports.SensitivityFactor = set.SensitivityFactor
	m.reports.SensitivityRange = set.SensitivityRange

	ns, ok := set.Lookup(m.scenarioName)
	if !ok {
		ns = set.Base()
	}
	m.applyScenario(ns)
}

func (m *Model) applyScenario(ns config.NamedScenario) {
	m.scenarioName = ns.Name
	price, _ := ns.Scenario.CarbonPrice().Float64()
	rate, _ := ns.Scenario.DiscountRate().Float64()
	m.priceSlider.SetValue(price)
	m.rateSlider.SetValue(rate)
	m.pathway.Select(string(ns.Scenario.Pathway()))
}

func (m *Model) applyFocus() {
	m.priceSlider.SetFocused(m.focus == focusPrice)
	m.rateSlider.SetFocused(m.focus == focusRate)
	m.pathway.IsFocused = m.focus == focusPathway
}

// Scenario returns the scenario described by the current controls.
func (m Model) Scenario() (domain.Scenario, error) {
	return domain.NewScenario(m.priceSlider.Value, m.rateSlider.Value, m.pathway.Selected())
}

// Report returns the latest calculated report, or nil before the first one.
func (m Model) Report() *output.Report {
	return m.report
}

// CurrentScene returns the scene being displayed.
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// recalcCmd evaluates the current controls in the background.
func (m Model) recalcCmd() tea.Cmd {
	seq := m.seq
	reports := m.reports
	scenario, err := m.Scenario()
	return func() tea.Msg {
		if err != nil {
			return RecalculatedMsg{Seq: seq, Err: err}
		}
		report, err := reports.Build(context.Background(), scenario)
		return RecalculatedMsg{Seq: seq, Report: report, Err: err}
	}
}

// compareCmd compares every pathway at the current price and rate.
func (m Model) compareCmd() tea.Cmd {
	seq := m.seq
	comparer := m.comparer
	scenario, err := m.Scenario()
	return func() tea.Msg {
		if err != nil {
			return ComparisonCompleteMsg{Seq: seq, Err: err}
		}
		set, err := comparer.ComparePathways(context.Background(), scenario)
		return ComparisonCompleteMsg{Seq: seq, Set: set, Err: err}
	}
}

// loadConfigCmd loads the scenario file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		set, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Set: set}
	}
}

// watchCmd waits for the next reload. It yields nil once the watcher stops.
func watchCmd(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-w.Updates()
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Update: update}
	}
}

// String returns the display name of the scene
func (s Scene) String() string {
	switch s {
	case SceneDashboard:
		return "Dashboard"
	case SceneInsights:
		return "Insights"
	case SceneSensitivity:
		return "Sensitivity"
	case SceneDistribution:
		return "Distribution"
	case SceneCompare:
		return "Pathways"
	case SceneStakeholders:
		return "Stakeholders"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
