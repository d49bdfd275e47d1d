package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Phase is the life stage of a projected year. Phases only move forward,
// in declaration order.
type Phase string

const (
	PhaseAccumulation Phase = "Accumulation"
	PhaseTransition   Phase = "Transition"
	PhaseDecumulation Phase = "Decumulation"
	PhaseDepleted     Phase = "Depleted"
)

// ScenarioKind selects one of the three market-assumption scenarios.
type ScenarioKind string

const (
	ScenarioMedian ScenarioKind = "median"
	ScenarioBest   ScenarioKind = "best"
	ScenarioWorst  ScenarioKind = "worst"
)

// AllScenarios lists the scenarios in reporting order.
var AllScenarios = []ScenarioKind{ScenarioMedian, ScenarioBest, ScenarioWorst}

// ParseScenarioKind accepts the scenario tag case-insensitively.
func ParseScenarioKind(s string) (ScenarioKind, error) {
	switch ScenarioKind(strings.ToLower(strings.TrimSpace(s))) {
	case ScenarioMedian:
		return ScenarioMedian, nil
	case ScenarioBest:
		return ScenarioBest, nil
	case ScenarioWorst:
		return ScenarioWorst, nil
	}
	return "", fmt.Errorf("unknown scenario %q (want median, best or worst)", s)
}

// TargetFinalAge is the age the corpus has to last to for the scenario to be
// considered on track by the expense optimizer.
func (k ScenarioKind) TargetFinalAge() int {
	switch k {
	case ScenarioBest:
		return 100
	case ScenarioWorst:
		return 75
	default:
		return 90
	}
}

func (k ScenarioKind) Title() string {
	switch k {
	case ScenarioBest:
		return "Optimistic"
	case ScenarioWorst:
		return "Pessimistic"
	default:
		return "Base Plan"
	}
}

func (k ScenarioKind) Description() string {
	switch k {
	case ScenarioBest:
		return "High returns, low inflation."
	case ScenarioWorst:
		return "Early crash, high inflation."
	default:
		return "Balanced assumptions."
	}
}

// StatusFor applies the scenario's final-age thresholds.
func (k ScenarioKind) StatusFor(finalAge int) ScenarioStatus {
	switch k {
	case ScenarioBest:
		if finalAge >= 95 {
			return StatusSafe
		}
		return StatusRisk
	case ScenarioWorst:
		if finalAge >= 85 {
			return StatusSafe
		}
		return StatusCritical
	default:
		if finalAge >= 90 {
			return StatusSafe
		}
		if finalAge > 80 {
			return StatusRisk
		}
		return StatusCritical
	}
}

// ScenarioStatus is the qualitative outcome of a scenario.
type ScenarioStatus string

const (
	StatusSafe     ScenarioStatus = "safe"
	StatusRisk     ScenarioStatus = "risk"
	StatusCritical ScenarioStatus = "critical"
)

// OptimizationStatus classifies a major expense against the scenario target.
type OptimizationStatus string

const (
	OptimizationSafe    OptimizationStatus = "safe"
	OptimizationCaution OptimizationStatus = "caution"
	OptimizationUnsafe  OptimizationStatus = "unsafe"
)

// YearlyData is one row of the projection ledger.
type YearlyData struct {
	Year             int             `json:"year"`
	Age              int             `json:"age"`
	Phase            Phase           `json:"phase"`
	Cashflow         decimal.Decimal `json:"cashflow"` // Positive = saving, negative = withdrawal
	Corpus           decimal.Decimal `json:"corpus"`
	ReturnApplied    decimal.Decimal `json:"return_applied"`
	InflationApplied decimal.Decimal `json:"inflation_applied"`
	Note             string          `json:"note,omitempty"`
}

// ScenarioResult is the complete output of one scenario run.
type ScenarioResult struct {
	Scenario        ScenarioKind    `json:"scenario"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Status          ScenarioStatus  `json:"status"`
	IgnoreExpenses  bool            `json:"ignore_expenses"`
	RequiredCorpus  decimal.Decimal `json:"required_corpus"`
	ProjectedCorpus decimal.Decimal `json:"projected_corpus"` // At the retirement transition
	Shortfall       decimal.Decimal `json:"shortfall"`
	YearsLasting    int             `json:"years_lasting"`
	FinalAge        int             `json:"final_age"`
	SWR             decimal.Decimal `json:"swr"`
	Data            []YearlyData    `json:"data"`
}

// Row returns the ledger row for the given age.
func (sr *ScenarioResult) Row(age int) (YearlyData, bool) {
	for _, row := range sr.Data {
		if row.Age == age {
			return row, true
		}
	}
	return YearlyData{}, false
}

// DepletionAge returns the first age reported as Depleted, if any.
func (sr *ScenarioResult) DepletionAge() (int, bool) {
	for _, row := range sr.Data {
		if row.Phase == PhaseDepleted {
			return row.Age, true
		}
	}
	return 0, false
}

// ExpenseOptimization reports how a major expense affects a scenario and the
// earliest purchase age that keeps the scenario on target.
type ExpenseOptimization struct {
	ExpenseID   string             `json:"expense_id"`
	Name        string             `json:"name"`
	OriginalAge int                `json:"original_age"`
	SafeAge     *int               `json:"safe_age"` // nil when no delay within the search window works
	ImpactYears int                `json:"impact_years"`
	Status      OptimizationStatus `json:"status"`
	TargetAge   int                `json:"target_age"`
}

// FullProjection bundles every scenario, its expense-free baseline and the
// per-scenario expense optimizations.
type FullProjection struct {
	YearsToRetirement          int             `json:"years_to_retirement"`
	MonthlySavings             decimal.Decimal `json:"monthly_savings"`
	MonthlyExpenseAtRetirement decimal.Decimal `json:"monthly_expense_at_retirement"`
	AnnualExpenseAtRetirement  decimal.Decimal `json:"annual_expense_at_retirement"`

	Median *ScenarioResult `json:"median"`
	Best   *ScenarioResult `json:"best"`
	Worst  *ScenarioResult `json:"worst"`

	Baselines     map[ScenarioKind]*ScenarioResult      `json:"baselines"`
	Optimizations map[ScenarioKind][]ExpenseOptimization `json:"optimizations"`
}

// Result returns the scenario result for kind.
func (fp *FullProjection) Result(kind ScenarioKind) *ScenarioResult {
	switch kind {
	case ScenarioBest:
		return fp.Best
	case ScenarioWorst:
		return fp.Worst
	default:
		return fp.Median
	}
}
