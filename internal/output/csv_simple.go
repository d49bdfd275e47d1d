package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/corpus-projector/internal/domain"
)

// CSVSummarizer implements the summary CSV output: one row per scenario and
// one per baseline, in reporting order.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.FullProjection) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "IgnoreExpenses", "Status", "RequiredCorpus", "ProjectedCorpus", "Shortfall", "YearsLasting", "FinalAge", "SWR"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, kind := range domain.AllScenarios {
		for _, sr := range []*domain.ScenarioResult{results.Result(kind), results.Baselines[kind]} {
			if sr == nil {
				continue
			}
			row := []string{
				string(sr.Scenario),
				boolToString(sr.IgnoreExpenses),
				string(sr.Status),
				sr.RequiredCorpus.StringFixed(2),
				sr.ProjectedCorpus.StringFixed(2),
				sr.Shortfall.StringFixed(2),
				intToString(sr.YearsLasting),
				intToString(sr.FinalAge),
				sr.SWR.StringFixed(3),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
