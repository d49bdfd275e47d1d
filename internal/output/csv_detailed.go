package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/corpus-projector/internal/domain"
)

// CSVDetailedExporter writes the yearly ledger of every scenario.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.FullProjection) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Age", "Year", "Phase", "Cashflow", "Corpus", "ReturnApplied", "InflationApplied", "Note"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, kind := range domain.AllScenarios {
		sr := results.Result(kind)
		if sr == nil {
			continue
		}
		for _, yr := range sr.Data {
			row := []string{
				string(kind),
				intToString(yr.Age),
				intToString(yr.Year),
				string(yr.Phase),
				yr.Cashflow.StringFixed(2),
				yr.Corpus.StringFixed(2),
				yr.ReturnApplied.StringFixed(2),
				yr.InflationApplied.StringFixed(2),
				yr.Note,
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
