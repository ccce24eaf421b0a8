package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/carbonliab/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Keyboard input
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	// Window resize
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case NavigateMsg:
		return m.navigate(msg.Scene)

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.useSet(msg.Set)
		m.notice = fmt.Sprintf("Loaded %d scenarios", len(msg.Set.Scenarios))
		return m.recalculate()

	case ConfigReloadedMsg:
		// Keep watching regardless of the outcome
		var next tea.Cmd
		if m.watcher != nil {
			next = watchCmd(m.watcher)
		}
		if msg.Update.Err != nil {
			m.notice = "Reload failed: " + msg.Update.Err.Error()
			return m, next
		}
		m.useSet(msg.Update.Set)
		m.notice = fmt.Sprintf("Reloaded %d scenarios", len(msg.Update.Set.Scenarios))
		var cmd tea.Cmd
		m, cmd = m.recalculate()
		return m, tea.Batch(cmd, next)

	case RecalculatedMsg:
		// Stale result
		if msg.Seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.report = msg.Report
		return m, nil

	case ComparisonCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.comparison = msg.Set
		m.comparisonSeq = msg.Seq
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	// Global keys
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m.navigate(SceneHelp)

	case key.Matches(msg, m.keys.Back):
		if m.currentScene == SceneHelp {
			return m.navigate(m.previousScene)
		}
		return m.navigate(SceneDashboard)

	case key.Matches(msg, m.keys.NextScene):
		return m.navigate(m.cycleScene(1))

	case key.Matches(msg, m.keys.PrevScene):
		return m.navigate(m.cycleScene(-1))

	// Direct scene shortcuts
	case key.Matches(msg, m.keys.Dashboard):
		return m.navigate(SceneDashboard)
	case key.Matches(msg, m.keys.Insights):
		return m.navigate(SceneInsights)
	case key.Matches(msg, m.keys.Sensitive):
		return m.navigate(SceneSensitivity)
	case key.Matches(msg, m.keys.Distribute):
		return m.navigate(SceneDistribution)
	case key.Matches(msg, m.keys.Compare):
		return m.navigate(SceneCompare)
	case key.Matches(msg, m.keys.Stakehold):
		return m.navigate(SceneStakeholders)

	case key.Matches(msg, m.keys.View):
		if m.currentScene == SceneStakeholders {
			m.stakeholder = nextStakeholder(m.stakeholder)
		}
		return m, nil

	// Control focus
	case key.Matches(msg, m.keys.Up):
		m.focus = (m.focus - 1 + focusCount) % focusCount
		m.applyFocus()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.focus = (m.focus + 1) % focusCount
		m.applyFocus()
		return m, nil

	// Adjust the focused control
	case key.Matches(msg, m.keys.Left):
		if m.adjust(-1) {
			return m.recalculate()
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.adjust(1) {
			return m.recalculate()
		}
		return m, nil

	// Scenario presets
	case key.Matches(msg, m.keys.Scenario):
		if len(m.set.Scenarios) == 0 {
			return m, nil
		}
		m.applyScenario(m.set.Scenarios[m.nextScenarioIndex()])
		return m.recalculate()

	case key.Matches(msg, m.keys.Reset):
		m.applyScenario(m.set.Base())
		return m.recalculate()
	}

	return m, nil
}

// adjust moves the focused control and reports whether it changed.
func (m *Model) adjust(dir int) bool {
	switch m.focus {
	case focusPrice:
		if dir > 0 {
			return m.priceSlider.Increment()
		}
		return m.priceSlider.Decrement()
	case focusRate:
		if dir > 0 {
			return m.rateSlider.Increment()
		}
		return m.rateSlider.Decrement()
	case focusPathway:
		if dir > 0 {
			m.pathway.Next()
		} else {
			m.pathway.Prev()
		}
		return len(m.pathway.Choices) > 1
	}
	return false
}

func (m Model) nextScenarioIndex() int {
	for i, ns := range m.set.Scenarios {
		if ns.Name == m.scenarioName {
			return (i + 1) % len(m.set.Scenarios)
		}
	}
	return 0
}

func nextStakeholder(s domain.Stakeholder) domain.Stakeholder {
	all := domain.Stakeholders()
	for i, o := range all {
		if o == s {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (m Model) cycleScene(dir int) Scene {
	current := 0
	for i, s := range scenes {
		if s == m.currentScene {
			current = i
		}
	}
	return scenes[(current+dir+len(scenes))%len(scenes)]
}

// recalculate starts a fresh calculation for the current controls. Any
// result still in flight for an earlier sequence is ignored on arrival.
func (m Model) recalculate() (Model, tea.Cmd) {
	m.seq++
	m.loading = true
	m.loadingMessage = "Calculating scenario..."
	cmds := []tea.Cmd{m.recalcCmd()}
	if m.currentScene == SceneCompare {
		cmds = append(cmds, m.compareCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if scene != m.currentScene {
		m.previousScene = m.currentScene
		m.currentScene = scene
	}
	if scene == SceneCompare && m.comparisonSeq != m.seq {
		m.loading = true
		m.loadingMessage = "Comparing pathways..."
		return m, m.compareCmd()
	}
	return m, nil
}
