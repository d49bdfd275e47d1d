package calculation

import (
	"fmt"

	"github.com/rpgo/corpus-projector/internal/domain"
	money "github.com/rpgo/corpus-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

const (
	// workingPrecision bounds the digits carried between years.
	workingPrecision int32 = 10
	// volatilityYears is the last post-retirement year that gets a market swing.
	volatilityYears = 10
	// bestCaseFloorYears is how many early retirement years the best case floors at 12%.
	bestCaseFloorYears = 5
	// growthStreakLimit is the number of consecutive growing years tolerated
	// before returns are held below inflation.
	growthStreakLimit = 10
)

var (
	maxRealReturn     = decimal.NewFromFloat(0.015)
	maxHealthWeight   = decimal.NewFromFloat(0.6)
	baseHealthWeight  = decimal.NewFromFloat(0.2)
	healthWeightStep  = decimal.NewFromFloat(0.01)
	bestCaseFloor     = decimal.NewFromInt(12)
	preservationRate  = decimal.NewFromInt(4)
	halfSwing         = decimal.NewFromFloat(0.5)
	worstCaseOverride = map[int]decimal.Decimal{
		0: decimal.NewFromInt(-35),
		1: decimal.NewFromInt(-10),
		2: decimal.NewFromInt(-5),
	}
)

// projectionState is the running balance threaded from one year to the next.
type projectionState struct {
	corpus       decimal.Decimal
	contribution decimal.Decimal // Annual savings for the coming year
	withdrawal   decimal.Decimal // Annual withdrawal for the coming retired year
	depleted     bool
	growthStreak int
}

type projector struct {
	plan           *domain.Plan
	assumptions    ScenarioAssumptions
	baseYear       int
	ignoreExpenses bool
}

// ProjectScenario walks the plan from the current age to domain.MaxAge and
// returns one ledger row per age. baseYear is the calendar year of the first
// row and seeds the volatility overlay; the result depends on nothing else.
func ProjectScenario(plan *domain.Plan, kind domain.ScenarioKind, ignoreExpenses bool, baseYear int) []domain.YearlyData {
	a := ResolveAssumptions(plan, kind)
	p := projector{plan: plan, assumptions: a, baseYear: baseYear, ignoreExpenses: ignoreExpenses}

	state := projectionState{
		corpus:       plan.CurrentSavings,
		contribution: plan.MonthlySavings().Mul(decimal.NewFromInt(12)),
		withdrawal:   annualExpensesAtRetirement(plan, a.PreRetInflation),
	}

	rows := make([]domain.YearlyData, 0, max(0, domain.MaxAge-plan.CurrentAge+1))
	for age := plan.CurrentAge; age <= domain.MaxAge; age++ {
		var row domain.YearlyData
		row, state = p.step(state, age)
		rows = append(rows, row)
	}
	return rows
}

func (p projector) step(s projectionState, age int) (domain.YearlyData, projectionState) {
	year := p.baseYear + (age - p.plan.CurrentAge)

	note := ""
	if !p.ignoreExpenses {
		s.corpus, note = p.deductExpenses(s.corpus, age)
	}

	if age < p.plan.RetirementAge {
		return p.accumulate(s, age, year, note)
	}
	if s.depleted || !s.corpus.IsPositive() {
		return p.deplete(s, age, year, note)
	}
	return p.decumulate(s, age, year, note)
}

// deductExpenses pays every expense due at age out of the corpus.
func (p projector) deductExpenses(corpus decimal.Decimal, age int) (decimal.Decimal, string) {
	note := ""
	total := decimal.Zero
	for _, e := range p.plan.ExpensesAt(age) {
		cost := e.InflatedCost(p.plan.CurrentAge)
		total = total.Add(cost)
		note = appendNote(note, "; ", fmt.Sprintf("Buy: %s (-%s)", e.Name, money.NewMoneyFromDecimal(cost).Compact()))
	}
	if total.IsPositive() {
		corpus = corpus.Sub(total)
	}
	return corpus, note
}

// accumulate emits a pre-retirement row. A negative corpus marks the run as
// depleted for good, but rows keep coming until the retirement age so the
// ledger stays contiguous; contributions and growth stop.
func (p projector) accumulate(s projectionState, age, year int, note string) (domain.YearlyData, projectionState) {
	a := p.assumptions
	if s.corpus.IsNegative() {
		s.depleted = true
	}
	if age == p.plan.CurrentAge {
		note = appendNote("Start", "; ", note)
	}

	row := domain.YearlyData{
		Year:             year,
		Age:              age,
		Phase:            domain.PhaseAccumulation,
		Cashflow:         s.contribution,
		Corpus:           decimal.Max(decimal.Zero, s.corpus),
		ReturnApplied:    a.PreRetReturn,
		InflationApplied: a.PreRetInflation,
		Note:             note,
	}

	if !s.depleted {
		s.corpus = s.corpus.Add(s.contribution).Mul(percentFactor(a.PreRetReturn)).Round(workingPrecision)
		s.contribution = s.contribution.Mul(percentFactor(p.plan.StepUpSIP)).Round(workingPrecision)
	}
	return row, s
}

// deplete emits a terminal row. Once here the run never leaves.
func (p projector) deplete(s projectionState, age, year int, note string) (domain.YearlyData, projectionState) {
	if !s.depleted {
		note = appendNote(note, ". ", "CORPUS DEPLETED")
	}
	s.depleted = true
	return domain.YearlyData{
		Year:             year,
		Age:              age,
		Phase:            domain.PhaseDepleted,
		Cashflow:         decimal.Zero,
		Corpus:           decimal.Zero,
		ReturnApplied:    decimal.Zero,
		InflationApplied: decimal.Zero,
		Note:             note,
	}, s
}

// decumulate emits a retired row showing the opening corpus, then applies the
// year's return and withdrawal to produce next year's opening balance.
func (p projector) decumulate(s projectionState, age, year int, note string) (domain.YearlyData, projectionState) {
	a := p.assumptions
	yearsRetired := age - p.plan.RetirementAge

	baseReturn, note := p.ageBandReturn(age, yearsRetired, note)
	baseReturn = baseReturn.Add(a.PostRetReturnDelta)

	healthWeight := decimal.Zero
	if age >= 60 {
		healthWeight = decimal.Min(maxHealthWeight, baseHealthWeight.Add(decimal.NewFromInt(int64(age-60)).Mul(healthWeightStep)))
		if age == 60 {
			note = appendNote(note, ". ", "Healthcare Costs Up")
		}
	}
	effectiveInflation := decimal.NewFromInt(1).Sub(healthWeight).Mul(a.GeneralPostRetInflation).
		Add(healthWeight.Mul(a.HealthInflation))

	finalReturn := capRealReturn(baseReturn, effectiveInflation)

	if yearsRetired <= volatilityYears {
		swing := decimal.NewFromFloat(volatilitySwing(year))
		if a.Scenario == domain.ScenarioMedian {
			swing = swing.Mul(halfSwing)
		}
		finalReturn = finalReturn.Add(swing)

		if a.Scenario == domain.ScenarioWorst {
			if override, ok := worstCaseOverride[yearsRetired]; ok {
				finalReturn = override
			}
			switch yearsRetired {
			case 0:
				note = appendNote(note, ". ", "MARKET CRASH (-35%)")
			case 1:
				note = appendNote(note, ". ", "Bear Market")
			}
		}
		if a.Scenario == domain.ScenarioBest && yearsRetired < bestCaseFloorYears {
			finalReturn = decimal.Max(finalReturn, bestCaseFloor)
			if yearsRetired == 0 {
				note = appendNote(note, ". ", "Bull Run Start")
			}
		}
	}

	if s.growthStreak > growthStreakLimit {
		finalReturn = decimal.Min(finalReturn, effectiveInflation.Sub(decimal.NewFromInt(1)))
	}

	phase := domain.PhaseDecumulation
	if yearsRetired == 0 {
		phase = domain.PhaseTransition
	}
	row := domain.YearlyData{
		Year:             year,
		Age:              age,
		Phase:            phase,
		Cashflow:         s.withdrawal.Neg(),
		Corpus:           s.corpus,
		ReturnApplied:    finalReturn,
		InflationApplied: effectiveInflation,
		Note:             note,
	}

	opening := s.corpus
	s.corpus = s.corpus.Mul(percentFactor(finalReturn)).Sub(s.withdrawal).Round(workingPrecision)
	if s.corpus.GreaterThan(opening) {
		s.growthStreak++
	} else {
		s.growthStreak = 0
	}
	s.withdrawal = s.withdrawal.Mul(percentFactor(effectiveInflation)).Round(workingPrecision)
	return row, s
}

// ageBandReturn de-risks the portfolio with age: equity-heavy before 60,
// balanced until 75, capital preservation after.
func (p projector) ageBandReturn(age, yearsRetired int, note string) (decimal.Decimal, string) {
	expected := p.plan.ExpectedReturn
	switch {
	case age < 60:
		if yearsRetired == 0 && note == "" {
			note = "Retirement Transition"
		}
		return expected.Sub(decimal.NewFromInt(4)), note
	case age < 75:
		if age == 60 {
			note = appendNote(note, ". ", "De-risking")
		}
		return expected.Sub(decimal.NewFromInt(6)), note
	default:
		if age == 90 {
			note = appendNote(note, ". ", "Preservation")
		}
		return preservationRate, note
	}
}

// capRealReturn holds the nominal return so the implied real return does not
// exceed maxRealReturn.
func capRealReturn(nominal, inflation decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	impliedReal := percentFactor(nominal).Div(percentFactor(inflation)).Sub(one)
	if impliedReal.GreaterThan(maxRealReturn) {
		return percentFactor(inflation).Mul(one.Add(maxRealReturn)).Sub(one).Mul(hundred)
	}
	return nominal
}

func appendNote(note, sep, text string) string {
	switch {
	case text == "":
		return note
	case note == "":
		return text
	}
	return note + sep + text
}
