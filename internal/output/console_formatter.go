package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/corpus-projector/internal/domain"
)

// ConsoleFormatter renders the scenario summary, expense impact and verdict.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.FullProjection) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RETIREMENT CORPUS PROJECTION")
	fmt.Fprintln(&buf, "============================")
	fmt.Fprintf(&buf, "Years to retirement:           %d\n", results.YearsToRetirement)
	fmt.Fprintf(&buf, "Monthly savings:               %s\n", FormatCurrency(results.MonthlySavings))
	fmt.Fprintf(&buf, "Monthly expense at retirement: %s\n", FormatCurrency(results.MonthlyExpenseAtRetirement))
	fmt.Fprintf(&buf, "Annual expense at retirement:  %s\n", FormatCurrency(results.AnnualExpenseAtRetirement))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SCENARIOS")
	fmt.Fprintln(&buf, strings.Repeat("-", 96))
	fmt.Fprintf(&buf, "%-12s %-9s %14s %14s %14s %9s %9s %6s\n",
		"Scenario", "Status", "Required", "Projected", "Shortfall", "Lasts to", "Baseline", "SWR")
	for _, kind := range domain.AllScenarios {
		sr := results.Result(kind)
		if sr == nil {
			continue
		}
		baseline := "-"
		if b := results.Baselines[kind]; b != nil {
			baseline = intToString(b.FinalAge)
		}
		fmt.Fprintf(&buf, "%-12s %-9s %14s %14s %14s %9d %9s %6s\n",
			sr.Title,
			strings.ToUpper(string(sr.Status)),
			FormatCompact(sr.RequiredCorpus),
			FormatCompact(sr.ProjectedCorpus),
			FormatCompact(sr.Shortfall),
			sr.FinalAge,
			baseline,
			FormatRate(sr.SWR),
		)
	}
	fmt.Fprintln(&buf)

	for _, kind := range domain.AllScenarios {
		opts := results.Optimizations[kind]
		if len(opts) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "EXPENSE IMPACT (%s, target age %d)\n", kind, kind.TargetFinalAge())
		for _, opt := range opts {
			fmt.Fprintf(&buf, "  %-24s age %-3d  -%d years  %-7s", opt.Name, opt.OriginalAge, opt.ImpactYears, opt.Status)
			if opt.Status == domain.OptimizationCaution && opt.SafeAge != nil {
				fmt.Fprintf(&buf, "  delay to age %d", *opt.SafeAge)
			}
			fmt.Fprintln(&buf)
		}
		fmt.Fprintln(&buf)
	}

	v := AnalyzeProjection(results)
	if v.Outcome != "" {
		fmt.Fprintln(&buf, "VERDICT")
		fmt.Fprintln(&buf, strings.Repeat("-", 7))
		fmt.Fprintf(&buf, "Base scenario outcome: %s (success probability %s, funds last to age %d)\n",
			strings.ToUpper(string(v.Outcome)), v.SuccessProbability, v.FundLongevity)
		fmt.Fprintln(&buf, v.Strategy)
		if v.WorstDepleted {
			fmt.Fprintf(&buf, "Worst case: funds deplete by age %d.", v.WorstFinalAge)
		} else {
			fmt.Fprintf(&buf, "Worst case: funds last to age %d.", v.WorstFinalAge)
		}
		fmt.Fprintf(&buf, " Safe withdrawal rate %s, planned %s.\n", FormatRate(v.SWR), FormatRate(v.CurrentWithdrawalRate))
		for _, d := range v.Deferrals {
			fmt.Fprintf(&buf, "• %s\n", d)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range CommonAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}
