package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/atlaspack/internal/model"
	"github.com/piwi3910/atlaspack/internal/project"
)

// settingsFlags are the atlas settings overrides shared by pack and compare.
// Only flags set on the command line replace the job's values.
type settingsFlags struct {
	preset   string
	width    int
	height   int
	padding  int
	noRotate bool
	pot      bool
	grow     bool
	maxSize  int
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.preset, "preset", "", "apply a named settings preset before other overrides")
	fl.IntVar(&f.width, "width", 0, "container width in px (0 = estimate)")
	fl.IntVar(&f.height, "height", 0, "container height in px (0 = estimate)")
	fl.IntVar(&f.padding, "padding", 0, "px added right of and below each sprite")
	fl.BoolVar(&f.noRotate, "no-rotate", false, "never rotate sprites")
	fl.BoolVar(&f.pot, "pot", false, "round the atlas size up to powers of two")
	fl.BoolVar(&f.grow, "grow", false, "enlarge the container until everything fits")
	fl.IntVar(&f.maxSize, "max-size", 0, "largest side allowed when growing")
}

// apply resolves the preset and flag overrides on top of s.
func (f *settingsFlags) apply(cmd *cobra.Command, e *env, s *model.AtlasSettings) error {
	if f.preset != "" {
		custom, err := project.LoadCustomPresets(e.presetsPath())
		if err != nil {
			return fmt.Errorf("load presets: %w", err)
		}
		preset, ok := model.FindPreset(f.preset, custom)
		if !ok {
			return fmt.Errorf("unknown preset %q", f.preset)
		}
		*s = preset.Settings
	}

	fl := cmd.Flags()
	if fl.Changed("width") {
		s.Width = f.width
	}
	if fl.Changed("height") {
		s.Height = f.height
	}
	if fl.Changed("padding") {
		s.Padding = f.padding
	}
	if fl.Changed("no-rotate") {
		s.AllowRotation = !f.noRotate
	}
	if fl.Changed("pot") {
		s.PowerOfTwo = f.pot
	}
	if fl.Changed("grow") {
		s.AutoGrow = f.grow
	}
	if fl.Changed("max-size") {
		s.MaxSize = f.maxSize
	}
	return nil
}
