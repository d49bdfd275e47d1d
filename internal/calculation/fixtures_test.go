package calculation

import (
	"github.com/rpgo/corpus-projector/internal/domain"
	"github.com/shopspring/decimal"
)

const testBaseYear = 2025

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// examplePlan mirrors the default plan shown to a new user.
func examplePlan() *domain.Plan {
	return &domain.Plan{
		CurrentAge:      32,
		RetirementAge:   55,
		MonthlyIncome:   dec(150000),
		MonthlyExpenses: dec(60000),
		CurrentSavings:  dec(1000000),
		ExpectedReturn:  dec(12),
		Inflation:       dec(6),
		StepUpSIP:       dec(10),
	}
}

// brokePlan has no savings and no surplus, so every scenario depletes at retirement.
func brokePlan() *domain.Plan {
	return &domain.Plan{
		CurrentAge:      30,
		RetirementAge:   31,
		MonthlyIncome:   dec(10000),
		MonthlyExpenses: dec(10000),
		CurrentSavings:  decimal.Zero,
		ExpectedReturn:  dec(12),
		Inflation:       dec(6),
		StepUpSIP:       dec(10),
		MajorExpenses: []domain.MajorExpense{
			{ID: "bike", Name: "Bike", CurrentCost: dec(50000), PurchaseAge: 30, InflationRate: decimal.Zero},
		},
	}
}

// earlyPurchasePlan buys something bigger than the starting corpus in the
// first year, which stops all contributions; a one year delay fixes it.
func earlyPurchasePlan() *domain.Plan {
	return &domain.Plan{
		CurrentAge:      30,
		RetirementAge:   50,
		MonthlyIncome:   dec(200000),
		MonthlyExpenses: dec(100000),
		CurrentSavings:  dec(100000),
		ExpectedReturn:  dec(12),
		Inflation:       dec(6),
		StepUpSIP:       dec(10),
		MajorExpenses: []domain.MajorExpense{
			{ID: "bike", Name: "Bike", CurrentCost: dec(150000), PurchaseAge: 30, InflationRate: decimal.Zero, Category: domain.CategoryCar},
		},
	}
}
