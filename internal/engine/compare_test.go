package engine

import (
	"testing"

	"github.com/piwi3910/FabricCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios(t *testing.T) {
	in := propertyInput()
	scenarios := BuildDefaultScenarios(in)

	require.Len(t, scenarios, 4)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, 2, scenarios[1].Input.SpacingOrZero())
	assert.Nil(t, scenarios[2].Input.DefinedLength)
	assert.Nil(t, scenarios[3].Input.Filler)

	// Variations must not leak into the base input
	assert.Equal(t, 5, in.SpacingOrZero())
	assert.NotNil(t, in.DefinedLength)
	assert.NotNil(t, in.Filler)
}

func TestBuildDefaultScenarios_MinimalInput(t *testing.T) {
	in := model.LayoutInput{LayoutConfig: model.LayoutConfig{MaxLength: 100, DefinedWidth: 100}}
	scenarios := BuildDefaultScenarios(in)
	assert.Len(t, scenarios, 1)
}

func TestCompareScenarios(t *testing.T) {
	results := CompareScenarios(BuildDefaultScenarios(scenarioInput()))

	require.Len(t, results, 2)
	assert.Equal(t, 100, results[0].LengthUsed)
	assert.Equal(t, 1, results[0].UnplacedCount)
	assert.InDelta(t, 100.0-results[0].Result.Usage, results[0].WastePercent, 0.0001)
	assert.Equal(t, "Spacing 5mm (half)", results[1].Scenario.Name)
}
