package calculation

import (
	"github.com/rpgo/corpus-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// ScenarioAssumptions are the scenario-adjusted rates (annual %) a projection runs on.
type ScenarioAssumptions struct {
	Scenario                domain.ScenarioKind
	PreRetReturn            decimal.Decimal
	PreRetInflation         decimal.Decimal
	GeneralPostRetInflation decimal.Decimal
	HealthInflation         decimal.Decimal
	// PostRetReturnDelta is added to the age-banded post-retirement return.
	PostRetReturnDelta decimal.Decimal
}

// ResolveAssumptions perturbs the plan's base rates for the given scenario.
func ResolveAssumptions(plan *domain.Plan, kind domain.ScenarioKind) ScenarioAssumptions {
	a := ScenarioAssumptions{
		Scenario:                kind,
		PreRetReturn:            plan.ExpectedReturn,
		PreRetInflation:         plan.Inflation,
		GeneralPostRetInflation: decimal.Max(decimal.NewFromFloat(5.0), plan.Inflation.Sub(decimal.NewFromFloat(0.5))),
		HealthInflation:         decimal.NewFromFloat(9.0),
		PostRetReturnDelta:      decimal.Zero,
	}

	switch kind {
	case domain.ScenarioBest:
		a.PreRetReturn = a.PreRetReturn.Add(decimal.NewFromInt(2))
		a.PreRetInflation = a.PreRetInflation.Sub(decimal.NewFromInt(1))
		a.GeneralPostRetInflation = decimal.Max(decimal.NewFromFloat(4.0), a.GeneralPostRetInflation.Sub(decimal.NewFromInt(1)))
		a.HealthInflation = decimal.NewFromFloat(7.0)
		a.PostRetReturnDelta = decimal.NewFromInt(2)
	case domain.ScenarioWorst:
		a.PreRetReturn = a.PreRetReturn.Sub(decimal.NewFromInt(3))
		a.PreRetInflation = a.PreRetInflation.Add(decimal.NewFromFloat(1.5))
		a.GeneralPostRetInflation = a.GeneralPostRetInflation.Add(decimal.NewFromFloat(1.5))
		a.HealthInflation = decimal.NewFromFloat(10.0)
		a.PostRetReturnDelta = decimal.NewFromInt(-3)
	}

	return a
}

// SafeWithdrawalRate returns the fraction of corpus that can be drawn each
// year, stepped by retirement age. Earlier retirements need a longer runway.
func SafeWithdrawalRate(retirementAge int) decimal.Decimal {
	switch {
	case retirementAge < 45:
		return decimal.NewFromFloat(0.025)
	case retirementAge <= 55:
		return decimal.NewFromFloat(0.030)
	default:
		return decimal.NewFromFloat(0.035)
	}
}

// annualExpensesAtRetirement inflates today's monthly expenses to the
// retirement year at the given rate and annualizes them.
func annualExpensesAtRetirement(plan *domain.Plan, inflation decimal.Decimal) decimal.Decimal {
	factor := percentFactor(inflation).Pow(decimal.NewFromInt(int64(plan.YearsToRetirement())))
	return plan.MonthlyExpenses.Mul(factor).Mul(decimal.NewFromInt(12))
}

var hundred = decimal.NewFromInt(100)

// percentFactor turns an annual percentage into a growth factor (6 -> 1.06).
func percentFactor(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(pct.Div(hundred))
}
