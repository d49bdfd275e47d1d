package domain

import (
	"github.com/shopspring/decimal"
)

// MaxAge is the terminal age of every projection (inclusive).
const MaxAge = 100

// Plan holds the user inputs for a projection. Rates are annual percentages
// (6 means 6%), money amounts are in rupees.
type Plan struct {
	CurrentAge      int             `yaml:"current_age" json:"current_age"`
	RetirementAge   int             `yaml:"retirement_age" json:"retirement_age"`
	MonthlyIncome   decimal.Decimal `yaml:"monthly_income" json:"monthly_income"`
	MonthlyExpenses decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses"`
	CurrentSavings  decimal.Decimal `yaml:"current_savings" json:"current_savings"`
	ExpectedReturn  decimal.Decimal `yaml:"expected_return" json:"expected_return"` // Pre-retirement
	Inflation       decimal.Decimal `yaml:"inflation" json:"inflation"`             // Pre-retirement lifestyle inflation
	StepUpSIP       decimal.Decimal `yaml:"step_up_sip" json:"step_up_sip"`         // Annual growth of savings contributions

	MajorExpenses []MajorExpense `yaml:"major_expenses,omitempty" json:"major_expenses"`
}

// MajorExpense is a planned one-off purchase paid out of the corpus at PurchaseAge.
type MajorExpense struct {
	ID            string          `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	CurrentCost   decimal.Decimal `yaml:"current_cost" json:"current_cost"` // In today's money
	PurchaseAge   int             `yaml:"purchase_age" json:"purchase_age"`
	InflationRate decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	Category      ExpenseCategory `yaml:"category,omitempty" json:"category,omitempty"`
}

// InflatedCost returns the cash outflow at PurchaseAge, growing CurrentCost by
// InflationRate from currentAge.
func (e MajorExpense) InflatedCost(currentAge int) decimal.Decimal {
	years := e.PurchaseAge - currentAge
	factor := decimal.NewFromInt(1).Add(e.InflationRate.Div(decimal.NewFromInt(100))).Pow(decimal.NewFromInt(int64(years)))
	return e.CurrentCost.Mul(factor)
}

// Clone returns a copy of the plan that shares nothing mutable with the original.
func (p *Plan) Clone() *Plan {
	clone := *p
	if p.MajorExpenses != nil {
		clone.MajorExpenses = make([]MajorExpense, len(p.MajorExpenses))
		copy(clone.MajorExpenses, p.MajorExpenses)
	}
	return &clone
}

// WithPurchaseAge returns a clone of the plan in which only the expense with
// the given ID is moved to purchaseAge.
func (p *Plan) WithPurchaseAge(expenseID string, purchaseAge int) *Plan {
	clone := p.Clone()
	for i := range clone.MajorExpenses {
		if clone.MajorExpenses[i].ID == expenseID {
			clone.MajorExpenses[i].PurchaseAge = purchaseAge
		}
	}
	return clone
}

// YearsToRetirement is never negative, so an already retired plan projects
// from the current age.
func (p *Plan) YearsToRetirement() int {
	if p.RetirementAge < p.CurrentAge {
		return 0
	}
	return p.RetirementAge - p.CurrentAge
}

// MonthlySavings returns income minus expenses, floored at zero.
func (p *Plan) MonthlySavings() decimal.Decimal {
	return decimal.Max(decimal.Zero, p.MonthlyIncome.Sub(p.MonthlyExpenses))
}

// ExpensesAt returns the major expenses scheduled at the given age, in plan order.
func (p *Plan) ExpensesAt(age int) []MajorExpense {
	var due []MajorExpense
	for _, e := range p.MajorExpenses {
		if e.PurchaseAge == age {
			due = append(due, e)
		}
	}
	return due
}

// ExpenseCategory tags an expense for display.
type ExpenseCategory string

const (
	CategoryCustom    ExpenseCategory = "custom"
	CategoryHome      ExpenseCategory = "home"
	CategoryCar       ExpenseCategory = "car"
	CategoryEducation ExpenseCategory = "education"
	CategoryWedding   ExpenseCategory = "wedding"
	CategoryTravel    ExpenseCategory = "travel"
	CategoryMedical   ExpenseCategory = "medical"
	CategoryBusiness  ExpenseCategory = "business"
)

var categoryLabels = map[ExpenseCategory]string{
	CategoryCustom:    "Custom",
	CategoryHome:      "Home Purchase",
	CategoryCar:       "Car / Vehicle",
	CategoryEducation: "Education",
	CategoryWedding:   "Wedding",
	CategoryTravel:    "World Tour",
	CategoryMedical:   "Medical Emergency",
	CategoryBusiness:  "New Business",
}

// Label returns the display label; unknown and empty categories read as Custom.
func (c ExpenseCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return categoryLabels[CategoryCustom]
}

// IsKnown reports whether c is one of the catalogued categories.
func (c ExpenseCategory) IsKnown() bool {
	_, ok := categoryLabels[c]
	return ok
}
