package components

import (
	"strings"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/tui/tuistyles"
)

var insightBadges = map[domain.InsightKind]string{
	domain.InsightCritical: "CRITICAL",
	domain.InsightWarning:  "WARNING",
	domain.InsightSuccess:  "OK",
	domain.InsightInfo:     "INFO",
}

// InsightList renders insights in evaluation order. Limit caps the number
// shown; zero shows all of them.
func InsightList(insights []domain.Insight, limit int) string {
	if len(insights) == 0 {
		return tuistyles.InfoStyle.Render("No insights for this scenario")
	}
	if limit > 0 && len(insights) > limit {
		insights = insights[:limit]
	}

	var out strings.Builder
	for i, in := range insights {
		if i > 0 {
			out.WriteString("\n\n")
		}
		badge := insightBadges[in.Kind]
		if badge == "" {
			badge = strings.ToUpper(string(in.Kind))
		}
		out.WriteString(tuistyles.InsightStyle(in.Kind).Render("[" + badge + "] " + in.Title))
		if in.Detail != "" {
			out.WriteString("\n  ")
			out.WriteString(tuistyles.TableCellStyle.Render(in.Detail))
		}
		if in.Action != "" {
			out.WriteString("\n  ")
			out.WriteString(tuistyles.SubtitleStyle.Render("→ " + in.Action))
		}
	}
	return out.String()
}
