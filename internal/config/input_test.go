package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpgo/corpus-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testPlan := "current_age: 32\n" +
		"retirement_age: 55\n" +
		"monthly_income: 150000\n" +
		"monthly_expenses: 60000\n" +
		"current_savings: 1000000\n" +
		"expected_return: 12\n" +
		"inflation: 6\n" +
		"step_up_sip: 10\n" +
		"major_expenses:\n" +
		"  - id: car\n" +
		"    name: \"New <b>Car</b>\"\n" +
		"    current_cost: 800000\n" +
		"    purchase_age: 38\n" +
		"    inflation_rate: 5.5\n" +
		"    category: car\n" +
		"  - current_cost: 2500000\n" +
		"    purchase_age: 45\n" +
		"    inflation_rate: 8\n" +
		"    category: education\n"

	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testPlan), 0o644))

	parser := NewInputParser()
	plan, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 32, plan.CurrentAge)
	assert.Equal(t, 55, plan.RetirementAge)
	assert.True(t, plan.MonthlyIncome.Equal(decimal.NewFromInt(150000)))
	require.Len(t, plan.MajorExpenses, 2)

	car := plan.MajorExpenses[0]
	assert.Equal(t, "car", car.ID)
	assert.Equal(t, "New Car", car.Name)
	assert.True(t, car.InflationRate.Equal(decimal.NewFromFloat(5.5)))

	edu := plan.MajorExpenses[1]
	assert.NotEmpty(t, edu.ID)
	assert.Equal(t, "Education", edu.Name)
	assert.Equal(t, domain.CategoryEducation, edu.Category)
}

func TestLoadFromFile_JSON(t *testing.T) {
	doc := `{"current_age": 40, "retirement_age": 60, "monthly_income": 90000,
"monthly_expenses": 50000, "current_savings": 2500000, "expected_return": 11,
"inflation": 6, "step_up_sip": 5, "major_expenses": []}`

	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	plan, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 40, plan.CurrentAge)
	assert.True(t, plan.CurrentSavings.Equal(decimal.NewFromInt(2500000)))
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	plan, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, plan)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("current_age: [oops\n"), 0o644))

	plan, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, plan)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidatePlan_Success(t *testing.T) {
	parser := NewInputParser()
	assert.NoError(t, parser.ValidatePlan(parser.CreateExamplePlan()))
}

func TestValidatePlan_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.Plan)
		want   string
	}{
		{"current age too young", func(p *domain.Plan) { p.CurrentAge = 10 }, "current age must be between 18 and 120"},
		{"retirement before current", func(p *domain.Plan) { p.RetirementAge = 30 }, "must be after current age"},
		{"retirement equals current", func(p *domain.Plan) { p.RetirementAge = p.CurrentAge }, "must be after current age"},
		{"retirement past horizon", func(p *domain.Plan) { p.RetirementAge = 105 }, "at most 100"},
		{"negative income", func(p *domain.Plan) { p.MonthlyIncome = decimal.NewFromInt(-1) }, "monthly income"},
		{"savings too large", func(p *domain.Plan) { p.CurrentSavings = decimal.NewFromInt(100_000_001) }, "current savings"},
		{"return above 100", func(p *domain.Plan) { p.ExpectedReturn = decimal.NewFromInt(101) }, "expected return"},
		{"negative inflation", func(p *domain.Plan) { p.Inflation = decimal.NewFromFloat(-0.5) }, "inflation"},
		{"expense before today", func(p *domain.Plan) {
			p.MajorExpenses = []domain.MajorExpense{expense("a", 30)}
		}, "purchase age must be between 32 and 100"},
		{"expense after horizon", func(p *domain.Plan) {
			p.MajorExpenses = []domain.MajorExpense{expense("a", 101)}
		}, "purchase age"},
		{"duplicate ids", func(p *domain.Plan) {
			p.MajorExpenses = []domain.MajorExpense{expense("a", 40), expense("a", 41)}
		}, "duplicate id"},
		{"unknown category", func(p *domain.Plan) {
			e := expense("a", 40)
			e.Category = "yacht"
			p.MajorExpenses = []domain.MajorExpense{e}
		}, "unknown category"},
		{"negative cost", func(p *domain.Plan) {
			e := expense("a", 40)
			e.CurrentCost = decimal.NewFromInt(-5)
			p.MajorExpenses = []domain.MajorExpense{e}
		}, "current cost"},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := parser.CreateExamplePlan()
			tt.mutate(plan)
			err := parser.ValidatePlan(plan)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Home", SanitizeString("  <script>alert(1)</script>Home ", 255))
	assert.Equal(t, "Dream Car", SanitizeString("<i>Dream</i> Car", 255))
	assert.Equal(t, "abc", SanitizeString("abcdef", 3))
	assert.Equal(t, "", SanitizeString("<br/>", 255))
}

func TestNormalize_DefaultNames(t *testing.T) {
	plan := &domain.Plan{MajorExpenses: []domain.MajorExpense{
		{Category: domain.CategoryHome},
		{},
	}}
	NewInputParser().Normalize(plan)

	assert.Equal(t, "Home Purchase", plan.MajorExpenses[0].Name)
	assert.Equal(t, "Custom Expense", plan.MajorExpenses[1].Name)
	assert.Equal(t, domain.CategoryCustom, plan.MajorExpenses[1].Category)
	assert.NotEqual(t, plan.MajorExpenses[0].ID, plan.MajorExpenses[1].ID)
}

func TestNewMajorExpense(t *testing.T) {
	e := NewMajorExpense(32)
	assert.Equal(t, 37, e.PurchaseAge)
	assert.Equal(t, "Custom Expense", e.Name)
	assert.True(t, e.CurrentCost.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, e.InflationRate.Equal(decimal.NewFromInt(7)))
	assert.NotEmpty(t, e.ID)
}

func TestSavePlan_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	plan := parser.CreateExamplePlan()
	plan.MajorExpenses = append(plan.MajorExpenses, NewMajorExpense(plan.CurrentAge))

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, parser.SavePlan(plan, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "retirement_age: 55"))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, plan.RetirementAge, loaded.RetirementAge)
	assert.True(t, plan.CurrentSavings.Equal(loaded.CurrentSavings))
	require.Len(t, loaded.MajorExpenses, 1)
	assert.Equal(t, plan.MajorExpenses[0].ID, loaded.MajorExpenses[0].ID)
}

func TestCreateExamplePlan(t *testing.T) {
	plan := NewInputParser().CreateExamplePlan()
	assert.Equal(t, 32, plan.CurrentAge)
	assert.Equal(t, 55, plan.RetirementAge)
	assert.True(t, plan.MonthlyExpenses.Equal(decimal.NewFromInt(60000)))
	assert.True(t, plan.StepUpSIP.Equal(decimal.NewFromInt(10)))
	assert.Empty(t, plan.MajorExpenses)
}

func expense(id string, age int) domain.MajorExpense {
	return domain.MajorExpense{
		ID:            id,
		Name:          "Thing",
		CurrentCost:   decimal.NewFromInt(100000),
		PurchaseAge:   age,
		InflationRate: decimal.NewFromInt(6),
		Category:      domain.CategoryCustom,
	}
}
