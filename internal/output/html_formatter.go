package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"github.com/rpgo/corpus-projector/internal/domain"
)

// HTMLFormatter produces a printable report: verdict, scenario table,
// expense impact and the median ledger.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"compact": FormatCompact,
	"pct":     FormatPercentage,
	"rate":    FormatRate,
	"upper":   func(s domain.ScenarioStatus) string { return strings.ToUpper(string(s)) },
	"safeAge": safeAgeString,
}).Parse(htmlTemplateSource))

type htmlScenario struct {
	*domain.ScenarioResult
	BaselineFinalAge int
	Optimizations    []domain.ExpenseOptimization
	Assumptions      []string
}

func (h HTMLFormatter) Format(results *domain.FullProjection) ([]byte, error) {
	var scenarios []htmlScenario
	for _, kind := range domain.AllScenarios {
		sr := results.Result(kind)
		if sr == nil {
			continue
		}
		s := htmlScenario{ScenarioResult: sr, Optimizations: results.Optimizations[kind], Assumptions: ScenarioAssumptions[kind]}
		if b := results.Baselines[kind]; b != nil {
			s.BaselineFinalAge = b.FinalAge
		}
		scenarios = append(scenarios, s)
	}

	data := struct {
		*domain.FullProjection
		Verdict     Verdict
		Scenarios   []htmlScenario
		Assumptions []string
		Limitations []struct{ Topic, Text string }
	}{results, AnalyzeProjection(results), scenarios, CommonAssumptions, ModelLimitations}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
