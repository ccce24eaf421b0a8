package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
)

var toneMarks = map[domain.MetricTone]string{
	domain.ToneGood:    "▲",
	domain.ToneBad:     "▼",
	domain.ToneNeutral: " ",
}

// WriteStakeholderView writes one perspective's metrics and actions.
func WriteStakeholderView(w io.Writer, v domain.StakeholderView) {
	fmt.Fprintf(w, "%s %s\n", v.Icon, strings.ToUpper(string(v.Stakeholder)))
	for _, m := range v.Metrics {
		fmt.Fprintf(w, "  %s %-22s %s\n", toneMarks[m.Tone], m.Label, m.Value)
	}
	fmt.Fprintln(w, "  Recommended actions:")
	for _, a := range v.Actions {
		fmt.Fprintf(w, "    ✓ %s\n", a)
	}
}

// WritePayback draws the cumulative fund position as bars either side of a
// zero axis, width characters per side at the largest magnitude.
func WritePayback(w io.Writer, points []domain.PaybackPoint, width int) {
	peak := int64(0)
	for _, p := range points {
		if v := p.Cumulative.Abs().IntPart(); v > peak {
			peak = v
		}
	}
	if peak == 0 {
		return
	}
	for _, p := range points {
		n := int(p.Cumulative.Abs().IntPart() * int64(width) / peak)
		left, right := strings.Repeat(" ", width), ""
		if p.Cumulative.IsNegative() {
			left = strings.Repeat(" ", width-n) + strings.Repeat("░", n)
		} else {
			right = strings.Repeat("█", n)
		}
		fmt.Fprintf(w, "  %d %s|%-*s %sB\n", p.Year, left, width, right, signedAmount(p.Cumulative))
	}
}

func signedAmount(d decimal.Decimal) string {
	switch {
	case d.IsPositive():
		return "+$" + d.String()
	case d.IsNegative():
		return "-$" + d.Abs().String()
	}
	return "$0"
}
