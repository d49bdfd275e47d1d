package calculation

import (
	"fmt"

	"github.com/rpgo/corpus-projector/internal/domain"
)

// InvalidExpenseError reports a major expense whose cost or inflation rate
// cannot be projected.
type InvalidExpenseError struct {
	ExpenseID string
	Field     string
	Reason    string
}

func (e *InvalidExpenseError) Error() string {
	return fmt.Sprintf("invalid major expense %q: %s %s", e.ExpenseID, e.Field, e.Reason)
}

// checkExpenses rejects negative costs and inflation rates before they reach
// the projector.
func checkExpenses(expenses []domain.MajorExpense) error {
	for _, e := range expenses {
		if e.CurrentCost.IsNegative() {
			return &InvalidExpenseError{ExpenseID: e.ID, Field: "current_cost", Reason: "cannot be negative"}
		}
		if e.InflationRate.IsNegative() {
			return &InvalidExpenseError{ExpenseID: e.ID, Field: "inflation_rate", Reason: "cannot be negative"}
		}
	}
	return nil
}
