package output

import (
	"github.com/rpgo/corpus-projector/internal/domain"
)

// ScenarioAssumptions lists the modeling rules behind each scenario, rendered
// in the console and HTML reports.
var ScenarioAssumptions = map[domain.ScenarioKind][]string{
	domain.ScenarioMedian: {
		"Pre-retirement return and inflation as entered",
		"Post-retirement inflation: entered rate less 0.5%, at least 5%",
		"Healthcare inflation: 9%, weighted from 20% at 60 up to 60%",
		"Market swings of up to ±1.5% in the first 10 retired years",
	},
	domain.ScenarioBest: {
		"Pre-retirement return +2%, inflation -1%",
		"Post-retirement inflation 1% lower (at least 4%), healthcare 7%",
		"Returns floored at 12% for the first 5 retired years",
	},
	domain.ScenarioWorst: {
		"Pre-retirement return -3%, inflation +1.5%",
		"Post-retirement inflation 1.5% higher, healthcare 10%",
		"Market crash of -35% at retirement, then -10% and -5%",
	},
}

// CommonAssumptions apply to every scenario.
var CommonAssumptions = []string{
	"Returns de-risk with age: expected -4% before 60, -6% until 75, 4% after",
	"Real returns are capped at 1.5% a year in retirement",
	"After 10 straight years of growth, returns are held 1% below inflation",
	"Major expenses are paid from the corpus in the year of purchase",
}

// ModelLimitations are printed at the end of the verdict.
var ModelLimitations = []struct{ Topic, Text string }{
	{"Taxation", "Results are pre-tax. Actual post-tax returns will be lower depending on the asset class and tax regime (LTCG/STCG)."},
	{"Volatility", "The model simulates volatility, but a harsher sequence of returns right after retirement may do more damage."},
	{"Inflation", "Inflation is smooth. Lumpy costs such as medical emergencies or weddings are only captured when added as major expenses."},
	{"Advice", "This is a simulation tool, not an investment advisory service. Consult a certified financial planner."},
}
