package calculation

import (
	"context"

	"github.com/rpgo/corpus-projector/internal/domain"
	"golang.org/x/sync/errgroup"
)

// maxDeferralYears is the longest purchase delay the optimizer tries.
const maxDeferralYears = 15

// OptimizeExpenses evaluates every major expense against every scenario.
// current and baselines hold the scenario results with and without expenses.
// Each (scenario, expense) search runs on its own goroutine and fills its own
// slot, so the result does not depend on scheduling.
func (ce *CalculationEngine) OptimizeExpenses(ctx context.Context, plan *domain.Plan, current, baselines map[domain.ScenarioKind]*domain.ScenarioResult) (map[domain.ScenarioKind][]domain.ExpenseOptimization, error) {
	return ce.optimizeExpenses(ctx, plan, current, baselines, ce.ProjectionYear())
}

// optimizeExpenses re-simulates from year, which must be the year current
// and baselines were projected from.
func (ce *CalculationEngine) optimizeExpenses(ctx context.Context, plan *domain.Plan, current, baselines map[domain.ScenarioKind]*domain.ScenarioResult, year int) (map[domain.ScenarioKind][]domain.ExpenseOptimization, error) {
	out := make(map[domain.ScenarioKind][]domain.ExpenseOptimization, len(domain.AllScenarios))
	for _, kind := range domain.AllScenarios {
		out[kind] = make([]domain.ExpenseOptimization, len(plan.MajorExpenses))
	}
	if len(plan.MajorExpenses) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ce.workers())
	for _, kind := range domain.AllScenarios {
		slots := out[kind]
		for i, expense := range plan.MajorExpenses {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				slots[i] = ce.optimizeExpense(plan, kind, expense, current[kind], baselines[kind], year)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// optimizeExpense finds the smallest delay that brings the scenario to its
// target final age. Only the examined expense moves; the others stay put.
func (ce *CalculationEngine) optimizeExpense(plan *domain.Plan, kind domain.ScenarioKind, expense domain.MajorExpense, current, baseline *domain.ScenarioResult, year int) domain.ExpenseOptimization {
	target := kind.TargetFinalAge()
	opt := domain.ExpenseOptimization{
		ExpenseID:   expense.ID,
		Name:        expense.Name,
		OriginalAge: expense.PurchaseAge,
		ImpactYears: max(0, baseline.FinalAge-current.FinalAge),
		TargetAge:   target,
	}

	if current.FinalAge >= target {
		safeAge := expense.PurchaseAge
		opt.SafeAge = &safeAge
		opt.Status = domain.OptimizationSafe
		return opt
	}

	for delay := 1; delay <= maxDeferralYears; delay++ {
		testAge := expense.PurchaseAge + delay
		if testAge > domain.MaxAge {
			break
		}
		trial := plan.WithPurchaseAge(expense.ID, testAge)
		rows := ProjectScenario(trial, kind, false, year)
		if finalAge := trial.RetirementAge + countYearsLasting(rows); finalAge >= target {
			opt.SafeAge = &testAge
			opt.Status = domain.OptimizationCaution
			ce.Logger.Debugf("%s: deferring %q to age %d reaches final age %d", kind, expense.Name, testAge, finalAge)
			return opt
		}
	}

	opt.Status = domain.OptimizationUnsafe
	ce.Logger.Debugf("%s: no deferral of %q within %d years reaches age %d", kind, expense.Name, maxDeferralYears, target)
	return opt
}
