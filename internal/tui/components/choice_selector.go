package components

import (
	"strings"

	"github.com/rgehrsitz/carbonliab/internal/tui/tuistyles"
)

// ChoiceSelector cycles through a fixed list of named options.
type ChoiceSelector struct {
	Label     string
	Choices   []string
	Index     int
	IsFocused bool
}

// NewChoiceSelector creates a selector positioned on current, or on the
// first choice when current is not in the list.
func NewChoiceSelector(label string, choices []string, current string) *ChoiceSelector {
	c := &ChoiceSelector{Label: label, Choices: choices}
	c.Select(current)
	return c
}

// Selected returns the current choice, or "" for an empty selector.
func (c *ChoiceSelector) Selected() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[c.Index]
}

// Select moves to the named choice and reports whether it exists.
func (c *ChoiceSelector) Select(name string) bool {
	for i, choice := range c.Choices {
		if choice == name {
			c.Index = i
			return true
		}
	}
	return false
}

// Next advances to the following choice, wrapping at the end.
func (c *ChoiceSelector) Next() {
	if len(c.Choices) > 0 {
		c.Index = (c.Index + 1) % len(c.Choices)
	}
}

// Prev moves to the preceding choice, wrapping at the start.
func (c *ChoiceSelector) Prev() {
	if len(c.Choices) > 0 {
		c.Index = (c.Index - 1 + len(c.Choices)) % len(c.Choices)
	}
}

// Render shows every choice with the selected one highlighted.
func (c *ChoiceSelector) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	if c.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
	}

	parts := make([]string, len(c.Choices))
	for i, choice := range c.Choices {
		if i == c.Index {
			style := tuistyles.SelectedItemStyle
			if c.IsFocused {
				style = style.Foreground(tuistyles.ColorAccent)
			}
			parts[i] = style.Render("‹" + choice + "›")
		} else {
			parts[i] = tuistyles.UnselectedItemStyle.Render(" " + choice + " ")
		}
	}
	return labelStyle.Render(c.Label) + "\n" + strings.Join(parts, " ")
}
