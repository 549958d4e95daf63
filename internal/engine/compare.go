package engine

import (
	"fmt"

	"github.com/piwi3910/atlaspack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.AtlasSettings
}

// ComparisonResult holds the layout and computed statistics for a single scenario.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Result       model.PackResult
	Err          error // Non-nil when the scenario could not pack every sprite
	AtlasWidth   int
	AtlasHeight  int
	WastePercent float64
}

// Fits reports whether every sprite was placed.
func (c ComparisonResult) Fits() bool {
	return c.Err == nil
}

// CompareScenarios runs the optimizer for each scenario and returns the results
// in scenario order. This enables side-by-side comparison of different
// settings (padding, rotation, power-of-two rounding, container size).
func CompareScenarios(scenarios []ComparisonScenario, sprites []model.Sprite) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		opt := New(scenario.Settings)
		result, err := opt.Optimize(sprites)

		cr := ComparisonResult{
			Scenario: scenario,
			Result:   result,
			Err:      err,
		}
		if err == nil {
			cr.AtlasWidth = result.AtlasWidth
			cr.AtlasHeight = result.AtlasHeight
			cr.WastePercent = 100.0 - result.Efficiency()
		}
		results = append(results, cr)
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(base model.AtlasSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	// Scenario: flip rotation
	rot := base
	rot.AllowRotation = !base.AllowRotation
	name := "Rotation Enabled"
	if base.AllowRotation {
		name = "Rotation Disabled"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Settings: rot})

	// Scenario: no padding
	if base.Padding > 0 {
		noPad := base
		noPad.Padding = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Padding",
			Settings: noPad,
		})
	}

	// Scenario: exact size instead of power of two
	if base.PowerOfTwo {
		exact := base
		exact.PowerOfTwo = false
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Exact Size",
			Settings: exact,
		})
	}

	// Scenario: let the container grow
	if !base.AutoGrow {
		grow := base
		grow.AutoGrow = true
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Auto Grow (max %d)", grow.MaxSize),
			Settings: grow,
		})
	}

	return scenarios
}
