package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"github.com/rgehrsitz/carbonliab/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"billions": FormatBillions,
	"factor":   factorLabel,
	"kind":     func(k domain.InsightKind) string { return strings.ToLower(string(k)) },
	"barPct":   histogramBarPct,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// histogramBarPct scales a bin count against the tallest bin for CSS widths.
func histogramBarPct(count int, bins []domain.HistogramBin) int {
	peak := 0
	for _, b := range bins {
		if b.Count > peak {
			peak = b.Count
		}
	}
	if peak == 0 {
		return 0
	}
	return count * 100 / peak
}
