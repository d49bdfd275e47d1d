package calculation

import (
	"context"
	"testing"

	"github.com/rpgo/corpus-projector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optimize(t *testing.T, plan *domain.Plan) *domain.FullProjection {
	t.Helper()
	result, err := NewCalculationEngineForYear(testBaseYear).CalculateFinances(context.Background(), plan)
	require.NoError(t, err)
	return result
}

func TestOptimizeExpenses_AlreadySafe(t *testing.T) {
	plan := examplePlan()
	plan.MajorExpenses = []domain.MajorExpense{
		{ID: "car", Name: "Car", CurrentCost: dec(1000000), PurchaseAge: 40, InflationRate: dec(6)},
	}

	result := optimize(t, plan)
	opts := result.Optimizations[domain.ScenarioMedian]
	require.Len(t, opts, 1)

	opt := opts[0]
	assert.Equal(t, "car", opt.ExpenseID)
	assert.Equal(t, "Car", opt.Name)
	assert.Equal(t, 40, opt.OriginalAge)
	assert.Equal(t, 90, opt.TargetAge)
	assert.Equal(t, domain.OptimizationSafe, opt.Status)
	require.NotNil(t, opt.SafeAge)
	assert.Equal(t, 40, *opt.SafeAge)
	assert.GreaterOrEqual(t, opt.ImpactYears, 0)
}

func TestOptimizeExpenses_DeferralFixesShortfall(t *testing.T) {
	result := optimize(t, earlyPurchasePlan())

	opt := result.Optimizations[domain.ScenarioMedian][0]
	assert.Equal(t, domain.OptimizationCaution, opt.Status)
	require.NotNil(t, opt.SafeAge)
	assert.Equal(t, 31, *opt.SafeAge)
	assert.Equal(t, 30, opt.OriginalAge)
	assert.GreaterOrEqual(t, opt.ImpactYears, 40)
	assert.Equal(t, result.Baselines[domain.ScenarioMedian].FinalAge-result.Median.FinalAge, opt.ImpactYears)
}

func TestOptimizeExpenses_NothingHelps(t *testing.T) {
	result := optimize(t, brokePlan())

	for _, kind := range domain.AllScenarios {
		opts := result.Optimizations[kind]
		require.Len(t, opts, 1, kind)
		assert.Equal(t, domain.OptimizationUnsafe, opts[0].Status, kind)
		assert.Nil(t, opts[0].SafeAge, kind)
		assert.Equal(t, kind.TargetFinalAge(), opts[0].TargetAge)
		assert.Equal(t, 0, opts[0].ImpactYears, kind)
	}
}

func TestOptimizeExpenses_StopsAtMaxAge(t *testing.T) {
	plan := brokePlan()
	plan.MajorExpenses[0].PurchaseAge = 98

	result := optimize(t, plan)
	opt := result.Optimizations[domain.ScenarioWorst][0]
	assert.Equal(t, domain.OptimizationUnsafe, opt.Status)
	assert.Nil(t, opt.SafeAge)
}

func TestOptimizeExpenses_OnlyMovesOneExpense(t *testing.T) {
	plan := earlyPurchasePlan()
	plan.MajorExpenses = append(plan.MajorExpenses, domain.MajorExpense{
		ID: "phone", Name: "Phone", CurrentCost: dec(80000), PurchaseAge: 45, InflationRate: dec(5),
	})

	result := optimize(t, plan)
	opts := result.Optimizations[domain.ScenarioMedian]
	require.Len(t, opts, 2)
	assert.Equal(t, "bike", opts[0].ExpenseID)
	assert.Equal(t, "phone", opts[1].ExpenseID)

	// The phone is harmless, but the bike still breaks the plan, so delaying
	// the phone alone never reaches the target.
	assert.Equal(t, domain.OptimizationUnsafe, opts[1].Status)
	assert.Equal(t, domain.OptimizationCaution, opts[0].Status)

	// The input plan is untouched by the search.
	assert.Equal(t, 30, plan.MajorExpenses[0].PurchaseAge)
	assert.Equal(t, 45, plan.MajorExpenses[1].PurchaseAge)
}

func TestOptimizeExpenses_NoExpenses(t *testing.T) {
	engine := NewCalculationEngineForYear(testBaseYear)
	out, err := engine.OptimizeExpenses(context.Background(), examplePlan(), nil, nil)
	require.NoError(t, err)
	for _, kind := range domain.AllScenarios {
		assert.Empty(t, out[kind])
	}
}
