package output

import (
	"fmt"

	"github.com/rpgo/corpus-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Verdict is the plain-language reading of a projection.
type Verdict struct {
	Outcome            domain.ScenarioStatus
	SuccessProbability string
	FundLongevity      int // Median final age
	WorstFinalAge      int
	WorstDepleted      bool // Worst case ledger reaches the Depleted phase
	SWR                decimal.Decimal
	// CurrentWithdrawalRate is the first-year withdrawal as a fraction of the
	// median projected corpus; zero when nothing is projected.
	CurrentWithdrawalRate decimal.Decimal
	Strategy              string
	Deferrals             []string
}

// AnalyzeProjection builds the verdict from the median scenario, with the
// worst case used for the risk assessment.
func AnalyzeProjection(results *domain.FullProjection) Verdict {
	median := results.Median
	if median == nil {
		return Verdict{}
	}

	v := Verdict{
		Outcome:       median.Status,
		FundLongevity: median.FinalAge,
		SWR:           median.SWR,
	}
	switch median.Status {
	case domain.StatusSafe:
		v.SuccessProbability = "High"
	case domain.StatusRisk:
		v.SuccessProbability = "Moderate"
	default:
		v.SuccessProbability = "Low"
	}
	if results.Worst != nil {
		v.WorstFinalAge = results.Worst.FinalAge
		_, v.WorstDepleted = results.Worst.DepletionAge()
	}
	if median.ProjectedCorpus.IsPositive() {
		v.CurrentWithdrawalRate = results.AnnualExpenseAtRetirement.Div(median.ProjectedCorpus)
	}

	v.Strategy = fmt.Sprintf("You require a corpus of %s.", FormatCompact(median.RequiredCorpus))
	if median.Shortfall.IsPositive() {
		v.Strategy += fmt.Sprintf(" You currently have a projected shortfall of %s. Consider raising your annual SIP step-up by 5%% or delaying retirement by 2-3 years.",
			FormatCompact(median.Shortfall))
	} else {
		v.Strategy += " You are on track to meet this goal with a comfortable buffer."
	}

	for _, opt := range results.Optimizations[domain.ScenarioMedian] {
		if opt.Status == domain.OptimizationCaution && opt.SafeAge != nil {
			v.Deferrals = append(v.Deferrals, fmt.Sprintf("Delay %s to age %d", opt.Name, *opt.SafeAge))
		}
	}
	return v
}
