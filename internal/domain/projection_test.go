package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenarioKind(t *testing.T) {
	for in, want := range map[string]ScenarioKind{
		"median": ScenarioMedian,
		" Best ": ScenarioBest,
		"WORST":  ScenarioWorst,
	} {
		got, err := ParseScenarioKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseScenarioKind("typical")
	assert.ErrorContains(t, err, "unknown scenario")
}

func TestScenarioKind_StatusFor(t *testing.T) {
	tests := []struct {
		kind     ScenarioKind
		finalAge int
		want     ScenarioStatus
	}{
		{ScenarioMedian, 90, StatusSafe},
		{ScenarioMedian, 89, StatusRisk},
		{ScenarioMedian, 81, StatusRisk},
		{ScenarioMedian, 80, StatusCritical},
		{ScenarioBest, 95, StatusSafe},
		{ScenarioBest, 94, StatusRisk},
		{ScenarioBest, 40, StatusRisk},
		{ScenarioWorst, 85, StatusSafe},
		{ScenarioWorst, 84, StatusCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.StatusFor(tt.finalAge), "%s at %d", tt.kind, tt.finalAge)
	}
}

func TestScenarioKind_Targets(t *testing.T) {
	assert.Equal(t, 90, ScenarioMedian.TargetFinalAge())
	assert.Equal(t, 100, ScenarioBest.TargetFinalAge())
	assert.Equal(t, 75, ScenarioWorst.TargetFinalAge())

	assert.Equal(t, "Base Plan", ScenarioMedian.Title())
	assert.Equal(t, "Early crash, high inflation.", ScenarioWorst.Description())
}

func TestScenarioResult_RowAndDepletion(t *testing.T) {
	sr := &ScenarioResult{Data: []YearlyData{
		{Age: 60, Phase: PhaseDecumulation},
		{Age: 61, Phase: PhaseDepleted},
		{Age: 62, Phase: PhaseDepleted},
	}}

	row, ok := sr.Row(61)
	require.True(t, ok)
	assert.Equal(t, PhaseDepleted, row.Phase)

	_, ok = sr.Row(99)
	assert.False(t, ok)

	age, ok := sr.DepletionAge()
	assert.True(t, ok)
	assert.Equal(t, 61, age)

	_, ok = (&ScenarioResult{Data: sr.Data[:1]}).DepletionAge()
	assert.False(t, ok)
}

func TestFullProjection_Result(t *testing.T) {
	fp := &FullProjection{
		Median: &ScenarioResult{Scenario: ScenarioMedian},
		Best:   &ScenarioResult{Scenario: ScenarioBest},
		Worst:  &ScenarioResult{Scenario: ScenarioWorst},
	}
	for _, k := range AllScenarios {
		assert.Equal(t, k, fp.Result(k).Scenario)
	}
}
