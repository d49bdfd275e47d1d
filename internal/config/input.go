package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rpgo/corpus-projector/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Input limits applied to every plan before it is projected.
const (
	MinAge          = 18
	MaxAge          = 120
	MaxNameLength   = 255
	customExpense   = "Custom Expense"
	expenseLeadTime = 5
)

var (
	maxCurrency   = decimal.NewFromInt(100_000_000)
	maxPercentage = decimal.NewFromInt(100)

	scriptTag = regexp.MustCompile(`(?is)<script\b[^<]*(?:<[^<]*)*?</script>`)
	htmlTag   = regexp.MustCompile(`<[^>]*>`)
)

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, normalizes and validates a plan document.
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.Normalize(&plan)

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &plan, nil
}

// Normalize fills in expense IDs and names and strips markup from names.
func (ip *InputParser) Normalize(plan *domain.Plan) {
	for i := range plan.MajorExpenses {
		e := &plan.MajorExpenses[i]
		if strings.TrimSpace(e.ID) == "" {
			e.ID = uuid.NewString()
		}
		if e.Category == "" {
			e.Category = domain.CategoryCustom
		}
		e.Name = SanitizeString(e.Name, MaxNameLength)
		if e.Name == "" {
			e.Name = defaultExpenseName(e.Category)
		}
	}
}

// ValidatePlan validates a plan
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if err := validateAge("current age", plan.CurrentAge); err != nil {
		return err
	}
	if err := validateAge("retirement age", plan.RetirementAge); err != nil {
		return err
	}
	if plan.RetirementAge <= plan.CurrentAge {
		return fmt.Errorf("retirement age (%d) must be after current age (%d)", plan.RetirementAge, plan.CurrentAge)
	}
	if plan.RetirementAge > domain.MaxAge {
		return fmt.Errorf("retirement age must be at most %d", domain.MaxAge)
	}

	for _, c := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"monthly income", plan.MonthlyIncome},
		{"monthly expenses", plan.MonthlyExpenses},
		{"current savings", plan.CurrentSavings},
	} {
		if err := validateCurrency(c.name, c.value); err != nil {
			return err
		}
	}

	for _, p := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"expected return", plan.ExpectedReturn},
		{"inflation", plan.Inflation},
		{"step-up SIP", plan.StepUpSIP},
	} {
		if err := validatePercentage(p.name, p.value); err != nil {
			return err
		}
	}

	seen := make(map[string]struct{}, len(plan.MajorExpenses))
	for i := range plan.MajorExpenses {
		e := &plan.MajorExpenses[i]
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("major expense %d: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = struct{}{}
		if err := ip.validateExpense(plan, e); err != nil {
			return fmt.Errorf("major expense %q validation failed: %w", e.Name, err)
		}
	}

	return nil
}

// validateExpense validates a single major expense
func (ip *InputParser) validateExpense(plan *domain.Plan, e *domain.MajorExpense) error {
	if e.ID == "" {
		return fmt.Errorf("id is required")
	}
	if err := validateCurrency("current cost", e.CurrentCost); err != nil {
		return err
	}
	if err := validatePercentage("inflation rate", e.InflationRate); err != nil {
		return err
	}
	if e.PurchaseAge < plan.CurrentAge || e.PurchaseAge > domain.MaxAge {
		return fmt.Errorf("purchase age must be between %d and %d", plan.CurrentAge, domain.MaxAge)
	}
	if !e.Category.IsKnown() {
		return fmt.Errorf("unknown category %q", e.Category)
	}
	if len(e.Name) > MaxNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	return nil
}

func validateAge(name string, age int) error {
	if age < MinAge || age > MaxAge {
		return fmt.Errorf("%s must be between %d and %d", name, MinAge, MaxAge)
	}
	return nil
}

func validateCurrency(name string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(maxCurrency) {
		return fmt.Errorf("%s must be between 0 and %s", name, maxCurrency)
	}
	return nil
}

func validatePercentage(name string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(maxPercentage) {
		return fmt.Errorf("%s must be between 0 and 100%%", name)
	}
	return nil
}

// SanitizeString removes script blocks and HTML tags, trims the result and
// truncates it to maxLength runes.
func SanitizeString(s string, maxLength int) string {
	s = scriptTag.ReplaceAllString(s, "")
	s = htmlTag.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > maxLength {
		s = string(r[:maxLength])
	}
	return s
}

func defaultExpenseName(c domain.ExpenseCategory) string {
	if c == domain.CategoryCustom || !c.IsKnown() {
		return customExpense
	}
	return c.Label()
}

// NewMajorExpense returns the expense a user starts from when adding one:
// ten lakh, five years out, inflating at 7%.
func NewMajorExpense(currentAge int) domain.MajorExpense {
	return domain.MajorExpense{
		ID:            uuid.NewString(),
		Name:          customExpense,
		CurrentCost:   decimal.NewFromInt(1_000_000),
		PurchaseAge:   currentAge + expenseLeadTime,
		InflationRate: decimal.NewFromInt(7),
		Category:      domain.CategoryCustom,
	}
}

// CreateExamplePlan creates the default plan
func (ip *InputParser) CreateExamplePlan() *domain.Plan {
	return &domain.Plan{
		CurrentAge:      32,
		RetirementAge:   55,
		MonthlyIncome:   decimal.NewFromInt(150000),
		MonthlyExpenses: decimal.NewFromInt(60000),
		CurrentSavings:  decimal.NewFromInt(1000000),
		ExpectedReturn:  decimal.NewFromInt(12),
		Inflation:       decimal.NewFromInt(6),
		StepUpSIP:       decimal.NewFromInt(10),
		MajorExpenses:   []domain.MajorExpense{},
	}
}

// SavePlan writes plan to filename as YAML.
func (ip *InputParser) SavePlan(plan *domain.Plan, filename string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
