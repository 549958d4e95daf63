package engine

import (
	"testing"

	"github.com/piwi3910/atlaspack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestSettings() model.AtlasSettings {
	s := model.DefaultSettings()
	// Simplify for testing: no padding, exact sizes
	s.Padding = 0
	s.PowerOfTwo = false
	return s
}

func TestOptimize_SingleSprite(t *testing.T) {
	settings := defaultTestSettings()
	settings.Width, settings.Height = 64, 64
	settings.PowerOfTwo = true

	result, err := New(settings).Optimize([]model.Sprite{model.NewSprite("hero", 30, 20, 1)})
	require.NoError(t, err)

	require.Len(t, result.Placements, 1)
	p := result.Placements[0]
	assert.Equal(t, "hero", p.Sprite.Label)
	assert.Equal(t, 0, p.X)
	assert.Equal(t, 0, p.Y)
	assert.False(t, p.Rotated)
	assert.Equal(t, 64, result.Width)
	assert.Equal(t, 32, result.AtlasWidth, "30 rounds up to 32")
	assert.Equal(t, 32, result.AtlasHeight, "20 rounds up to 32")
}

func TestOptimize_MixedSpritesScenario(t *testing.T) {
	settings := defaultTestSettings()
	settings.Width, settings.Height = 100, 100

	sprites := []model.Sprite{
		{Label: "1", Width: 60, Height: 40, Quantity: 1},
		{Label: "2", Width: 40, Height: 60, Quantity: 1},
		{Label: "3", Width: 50, Height: 50, Quantity: 1},
	}
	result, err := New(settings).Optimize(sprites)
	require.NoError(t, err)
	require.Len(t, result.Placements, 3)
	require.NoError(t, result.Validate())

	// Placements come back in input order even though "3" was packed first.
	for i, p := range result.Placements {
		assert.Equal(t, sprites[i].Label, p.Sprite.Label)
	}
	assert.Equal(t, model.Rect{X: 60, Y: 0, W: 40, H: 60}, result.Placements[1].Rect())
}

func TestOptimize_QuantityExpansion(t *testing.T) {
	settings := defaultTestSettings()
	settings.Width, settings.Height = 50, 50

	result, err := New(settings).Optimize([]model.Sprite{
		model.NewSprite("tile", 10, 10, 5),
		{Label: "unset", Width: 10, Height: 10},
	})
	require.NoError(t, err)
	assert.Len(t, result.Placements, 6, "quantity 0 counts as one copy")
	for _, p := range result.Placements {
		assert.Equal(t, 1, p.Sprite.Quantity)
	}
	require.NoError(t, result.Validate())
}

func TestOptimize_PaddingStripped(t *testing.T) {
	settings := defaultTestSettings()
	settings.Width, settings.Height = 24, 12
	settings.Padding = 2

	result, err := New(settings).Optimize([]model.Sprite{
		model.NewSprite("a", 10, 10, 1),
		model.NewSprite("b", 10, 10, 1),
	})
	require.NoError(t, err)
	require.Len(t, result.Placements, 2)

	xs := []int{result.Placements[0].X, result.Placements[1].X}
	assert.ElementsMatch(t, []int{0, 12}, xs)
	for _, p := range result.Placements {
		assert.Equal(t, 10, p.PlacedWidth())
		assert.Equal(t, 10, p.PlacedHeight())
	}
	assert.Equal(t, 24, result.AtlasWidth)
	assert.Equal(t, 12, result.AtlasHeight)
}

func TestOptimize_DoesNotFit(t *testing.T) {
	settings := defaultTestSettings()
	settings.Width, settings.Height = 10, 10

	result, err := New(settings).Optimize([]model.Sprite{model.NewSprite("wide", 20, 5, 1)})
	assert.ErrorIs(t, err, ErrDoesNotFit)
	assert.Empty(t, result.Placements)
}

func TestOptimize_AutoGrow(t *testing.T) {
	settings := defaultTestSettings()
	settings.Width, settings.Height = 16, 16
	settings.AutoGrow = true
	settings.MaxSize = 64
	settings.AllowRotation = false

	result, err := New(settings).Optimize([]model.Sprite{model.NewSprite("bar", 40, 10, 1)})
	require.NoError(t, err)
	assert.Equal(t, 64, result.Width)
	assert.Equal(t, 32, result.Height)
	require.NoError(t, result.Validate())
}

func TestOptimize_AutoGrowStopsAtMaxSize(t *testing.T) {
	settings := defaultTestSettings()
	settings.Width, settings.Height = 16, 16
	settings.AutoGrow = true
	settings.MaxSize = 32
	settings.AllowRotation = false

	_, err := New(settings).Optimize([]model.Sprite{model.NewSprite("bar", 40, 10, 1)})
	assert.ErrorIs(t, err, ErrDoesNotFit)
}

func TestOptimize_Rotation(t *testing.T) {
	settings := defaultTestSettings()
	settings.Width, settings.Height = 10, 30

	result, err := New(settings).Optimize([]model.Sprite{model.NewSprite("bar", 30, 10, 1)})
	require.NoError(t, err)
	require.Len(t, result.Placements, 1)
	p := result.Placements[0]
	assert.True(t, p.Rotated)
	assert.Equal(t, 10, p.PlacedWidth())
	assert.Equal(t, 30, p.PlacedHeight())

	settings.AllowRotation = false
	_, err = New(settings).Optimize([]model.Sprite{model.NewSprite("bar", 30, 10, 1)})
	assert.ErrorIs(t, err, ErrDoesNotFit)

	settings.AllowRotation = true
	fixed := model.NewSprite("bar", 30, 10, 1)
	fixed.CanRotate = false
	_, err = New(settings).Optimize([]model.Sprite{fixed})
	assert.ErrorIs(t, err, ErrDoesNotFit, "per-sprite flag is honoured")
}

func TestOptimize_InvalidInput(t *testing.T) {
	_, err := New(defaultTestSettings()).Optimize([]model.Sprite{{Label: "bad", Width: -1, Height: 4}})
	assert.ErrorIs(t, err, ErrInvalidSprite)

	settings := defaultTestSettings()
	settings.Padding = -1
	_, err = New(settings).Optimize([]model.Sprite{model.NewSprite("a", 4, 4, 1)})
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestOptimize_EstimatesContainer(t *testing.T) {
	settings := defaultTestSettings()
	settings.Width, settings.Height = 0, 0

	result, err := New(settings).Optimize([]model.Sprite{model.NewSprite("tile", 32, 32, 4)})
	require.NoError(t, err)
	assert.Equal(t, 64, result.Width)
	assert.Equal(t, 64, result.Height)
	assert.Len(t, result.Placements, 4)
	assert.Equal(t, 100.0, result.Efficiency())
}

func TestOptimize_EmptyInput(t *testing.T) {
	result, err := New(defaultTestSettings()).Optimize(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Placements)
	assert.Equal(t, 0, result.AtlasWidth)
	assert.Equal(t, 0, result.AtlasHeight)
}

func TestOptimize_Deterministic(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Width, settings.Height = 256, 256
	var sprites []model.Sprite
	for i := 1; i <= 30; i++ {
		sprites = append(sprites, model.Sprite{Label: "s", Width: 3 + (i*7)%29, Height: 2 + (i*11)%31, Quantity: 1, CanRotate: i%2 == 0})
	}

	first, err := New(settings).Optimize(sprites)
	require.NoError(t, err)
	require.NoError(t, first.Validate())
	second, err := New(settings).Optimize(sprites)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGrow(t *testing.T) {
	o := New(model.AtlasSettings{MaxSize: 64})

	w, h, ok := o.grow(16, 32)
	assert.True(t, ok)
	assert.Equal(t, [2]int{32, 32}, [2]int{w, h})

	w, h, ok = o.grow(64, 32)
	assert.True(t, ok)
	assert.Equal(t, [2]int{64, 64}, [2]int{w, h})

	_, _, ok = o.grow(64, 64)
	assert.False(t, ok)

	w, h, ok = o.grow(0, 0)
	assert.True(t, ok)
	assert.Equal(t, [2]int{1, 0}, [2]int{w, h})
}

func TestCompareScenarios(t *testing.T) {
	base := model.DefaultSettings()
	base.Width, base.Height = 64, 64
	scenarios := BuildDefaultScenarios(base)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Current Settings", "Rotation Disabled", "No Padding", "Exact Size", "Auto Grow (max 4096)"}, names)

	sprites := []model.Sprite{model.NewSprite("a", 20, 20, 4), model.NewSprite("b", 60, 10, 1)}
	results := CompareScenarios(scenarios, sprites)
	require.Len(t, results, len(scenarios))
	for _, r := range results {
		assert.True(t, r.Fits(), "scenario %q: %v", r.Scenario.Name, r.Err)
		assert.Positive(t, r.AtlasWidth)
		assert.GreaterOrEqual(t, r.WastePercent, 0.0)
	}
}

func TestCompareScenarios_ReportsFailures(t *testing.T) {
	base := defaultTestSettings()
	base.Width, base.Height = 8, 8
	results := CompareScenarios([]ComparisonScenario{{Name: "tiny", Settings: base}}, []model.Sprite{model.NewSprite("a", 20, 20, 1)})
	require.Len(t, results, 1)
	assert.False(t, results[0].Fits())
	assert.ErrorIs(t, results[0].Err, ErrDoesNotFit)
}
