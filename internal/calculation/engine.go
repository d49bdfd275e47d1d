package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/corpus-projector/internal/domain"
	"github.com/shopspring/decimal"
)

const defaultWorkers = 8

// CalculationEngine runs scenario projections, aggregates them and searches
// for safer purchase ages for major expenses.
type CalculationEngine struct {
	// BaseYear is the calendar year of the first projected row. It seeds the
	// volatility overlay, so a fixed BaseYear gives byte-identical output.
	// Zero follows the clock: each calculation uses the year it runs in.
	BaseYear int
	// Workers bounds the number of concurrent optimizer re-simulations.
	Workers int
	Logger  Logger
}

// NewCalculationEngine creates an engine that projects from the calendar year
// of each calculation
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineForYear(0)
}

// NewCalculationEngineForYear creates an engine anchored at a fixed calendar year
func NewCalculationEngineForYear(baseYear int) *CalculationEngine {
	return &CalculationEngine{
		BaseYear: baseYear,
		Workers:  defaultWorkers,
		Logger:   NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// ProjectionYear returns the calendar year a calculation started now would
// project from.
func (ce *CalculationEngine) ProjectionYear() int {
	if ce.BaseYear > 0 {
		return ce.BaseYear
	}
	return nowFunc().Year()
}

func (ce *CalculationEngine) workers() int {
	if ce.Workers < 1 {
		return 1
	}
	return ce.Workers
}

// CalculateScenario projects a single scenario. With ignoreExpenses the major
// expenses are suppressed, which gives the scenario's baseline.
func (ce *CalculationEngine) CalculateScenario(plan *domain.Plan, kind domain.ScenarioKind, ignoreExpenses bool) (*domain.ScenarioResult, error) {
	if err := checkExpenses(plan.MajorExpenses); err != nil {
		return nil, err
	}
	return ce.scenario(plan, kind, ignoreExpenses, ce.ProjectionYear()), nil
}

// CalculateFinances runs all scenarios with and without major expenses and
// the expense deferral search.
func (ce *CalculationEngine) CalculateFinances(ctx context.Context, plan *domain.Plan) (*domain.FullProjection, error) {
	if err := checkExpenses(plan.MajorExpenses); err != nil {
		return nil, err
	}

	year := ce.ProjectionYear()
	current := make(map[domain.ScenarioKind]*domain.ScenarioResult, len(domain.AllScenarios))
	baselines := make(map[domain.ScenarioKind]*domain.ScenarioResult, len(domain.AllScenarios))
	for _, kind := range domain.AllScenarios {
		current[kind] = ce.scenario(plan, kind, false, year)
		baselines[kind] = ce.scenario(plan, kind, true, year)
		ce.Logger.Debugf("scenario %s: final age %d (baseline %d), projected %s, required %s",
			kind, current[kind].FinalAge, baselines[kind].FinalAge,
			current[kind].ProjectedCorpus.StringFixed(0), current[kind].RequiredCorpus.StringFixed(0))
	}

	optimizations, err := ce.optimizeExpenses(ctx, plan, current, baselines, year)
	if err != nil {
		return nil, fmt.Errorf("expense optimization failed: %w", err)
	}

	years := plan.YearsToRetirement()
	monthlyAtRetirement := plan.MonthlyExpenses.Mul(percentFactor(plan.Inflation).Pow(decimal.NewFromInt(int64(years))))

	return &domain.FullProjection{
		YearsToRetirement:          years,
		MonthlySavings:             plan.MonthlySavings(),
		MonthlyExpenseAtRetirement: monthlyAtRetirement,
		AnnualExpenseAtRetirement:  monthlyAtRetirement.Mul(decimal.NewFromInt(12)),
		Median:                     current[domain.ScenarioMedian],
		Best:                       current[domain.ScenarioBest],
		Worst:                      current[domain.ScenarioWorst],
		Baselines:                  baselines,
		Optimizations:              optimizations,
	}, nil
}

func (ce *CalculationEngine) scenario(plan *domain.Plan, kind domain.ScenarioKind, ignoreExpenses bool, year int) *domain.ScenarioResult {
	rows := ProjectScenario(plan, kind, ignoreExpenses, year)
	return summarizeScenario(plan, kind, ignoreExpenses, rows)
}

// summarizeScenario derives the headline metrics from a projected ledger.
func summarizeScenario(plan *domain.Plan, kind domain.ScenarioKind, ignoreExpenses bool, rows []domain.YearlyData) *domain.ScenarioResult {
	a := ResolveAssumptions(plan, kind)
	swr := SafeWithdrawalRate(plan.RetirementAge)
	required := annualExpensesAtRetirement(plan, a.PreRetInflation).Div(swr)

	projected := decimal.Zero
	if row, ok := (&domain.ScenarioResult{Data: rows}).Row(plan.RetirementAge); ok && row.Phase == domain.PhaseTransition {
		projected = row.Corpus
	}

	yearsLasting := countYearsLasting(rows)
	finalAge := plan.RetirementAge + yearsLasting

	return &domain.ScenarioResult{
		Scenario:        kind,
		Title:           kind.Title(),
		Description:     kind.Description(),
		Status:          kind.StatusFor(finalAge),
		IgnoreExpenses:  ignoreExpenses,
		RequiredCorpus:  required,
		ProjectedCorpus: projected,
		Shortfall:       decimal.Max(decimal.Zero, required.Sub(projected)),
		YearsLasting:    yearsLasting,
		FinalAge:        finalAge,
		SWR:             swr,
		Data:            rows,
	}
}

// countYearsLasting counts retired rows that still hold a positive corpus.
func countYearsLasting(rows []domain.YearlyData) int {
	n := 0
	for _, row := range rows {
		if row.Phase != domain.PhaseAccumulation && row.Corpus.IsPositive() {
			n++
		}
	}
	return n
}
