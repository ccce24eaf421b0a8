package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/registry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStakeholderView(t *testing.T) {
	view, err := registry.StakeholderView(domain.StakeholderIndustry, decimal.RequireFromString("18.9"))
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteStakeholderView(&buf, view)
	out := buf.String()

	assert.Contains(t, out, "INDUSTRY")
	assert.Contains(t, out, "▼ Compliance Cost        $18.9B")
	assert.Contains(t, out, "▲ Efficiency Potential   15-20%")
	assert.Contains(t, out, "✓ Form industry CCUS consortium")
}

func TestWritePayback(t *testing.T) {
	var buf bytes.Buffer
	WritePayback(&buf, registry.PaybackSchedule(), 15)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8)

	assert.True(t, strings.HasPrefix(lines[0], "  2026"), lines[0])
	assert.Contains(t, lines[0], "░░░░░|")
	assert.True(t, strings.HasSuffix(lines[0], "-$15B"), lines[0])
	assert.Contains(t, lines[7], "|"+strings.Repeat("█", 15))
	assert.True(t, strings.HasSuffix(lines[7], "+$45B"), lines[7])

	buf.Reset()
	WritePayback(&buf, []domain.PaybackPoint{{Year: 2030, Cumulative: decimal.Zero}}, 10)
	assert.Empty(t, buf.String(), "an all-zero series has no scale")
}

func TestConsoleFormatter_StakeholdersAndPayback(t *testing.T) {
	report := buildTestReport(t, 50, 10, "BAU")
	require.Len(t, report.Stakeholders, 3)
	require.Len(t, report.Payback, 8)

	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)

	for _, want := range []string{
		"STAKEHOLDERS",
		"GOVERNMENT",
		"Compliance Cost        $18.9B",
		"INVESTOR",
		"TRANSITION FUND PAYBACK ($15B)",
		"2040",
	} {
		assert.Contains(t, content, want)
	}
}
