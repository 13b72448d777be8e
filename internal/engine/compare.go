package engine

import (
	"fmt"

	"github.com/piwi3910/FabricCut/internal/model"
)

// ComparisonScenario defines a named variation of a disposition to compare.
type ComparisonScenario struct {
	Name  string
	Input model.LayoutInput
}

// ComparisonResult holds the layout and computed statistics for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.LayoutOutput
	LengthUsed    int
	FillerCount   int
	WastePercent  float64
	UnplacedCount int
}

// CompareScenarios lays out each scenario and returns the results in
// scenario order. This enables side-by-side comparison of what-if
// variations (spacing, length limit, filler).
func CompareScenarios(scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		out := Organize(scenario.Input)

		waste := 0.0
		if out.TotalArea > 0 {
			waste = 100.0 - out.Usage
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        out,
			LengthUsed:    out.LengthUsed,
			FillerCount:   len(out.PositionedFillers),
			WastePercent:  waste,
			UnplacedCount: len(out.UnplacedPieces),
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current input, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(base model.LayoutInput) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:  "Current Settings",
			Input: base,
		},
	}

	// Scenario: Half spacing (tighter nesting)
	if s := base.SpacingOrZero(); s > 1 {
		half := cloneInput(base)
		half.Spacing = model.IntPtr(s / 2)
		scenarios = append(scenarios, ComparisonScenario{
			Name:  fmt.Sprintf("Spacing %dmm (half)", s/2),
			Input: half,
		})
	}

	// Scenario: Use the whole table instead of the defined length
	if base.DefinedLength != nil && *base.DefinedLength < base.MaxLength {
		full := cloneInput(base)
		full.DefinedLength = nil
		scenarios = append(scenarios, ComparisonScenario{
			Name:  fmt.Sprintf("Full Table (%dmm)", base.MaxLength),
			Input: full,
		})
	}

	// Scenario: No filler
	if base.Filler != nil {
		noFiller := cloneInput(base)
		noFiller.Filler = nil
		scenarios = append(scenarios, ComparisonScenario{
			Name:  "No Filler",
			Input: noFiller,
		})
	}

	return scenarios
}

func cloneInput(in model.LayoutInput) model.LayoutInput {
	d := model.Disposition{
		Pieces:        in.Pieces,
		ExcludedZones: in.ExcludedZones,
		Filler:        in.Filler,
		Config:        in.LayoutConfig,
	}
	return d.Input()
}
