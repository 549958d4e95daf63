package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/atlaspack/internal/model"
)

var (
	// ErrDoesNotFit is returned when the sprites cannot all be placed in the container.
	ErrDoesNotFit = errors.New("sprites do not fit in the atlas")
	// ErrInvalidSprite is returned for sprites with negative dimensions.
	ErrInvalidSprite = errors.New("invalid sprite")
	// ErrInvalidSettings is returned for negative padding or container sizes.
	ErrInvalidSettings = errors.New("invalid atlas settings")
)

// Optimizer builds an atlas layout from a sprite list.
type Optimizer struct {
	Settings model.AtlasSettings
	Logger   *log.Logger
}

func New(settings model.AtlasSettings) *Optimizer {
	return &Optimizer{Settings: settings, Logger: log.Default()}
}

// Optimize packs every sprite (expanded by quantity) into a single atlas.
// Padding is added to the right and bottom of each sprite while packing and
// stripped from the returned placements, which are in input order.
//
// When the sprites do not fit and AutoGrow is set, the smaller container side
// is doubled (up to MaxSize) and the whole batch is packed again from scratch.
// Otherwise ErrDoesNotFit is returned.
func (o *Optimizer) Optimize(sprites []model.Sprite) (model.PackResult, error) {
	if o.Settings.Padding < 0 || o.Settings.Width < 0 || o.Settings.Height < 0 {
		return model.PackResult{}, fmt.Errorf("padding %d, size %dx%d: %w",
			o.Settings.Padding, o.Settings.Width, o.Settings.Height, ErrInvalidSettings)
	}

	expanded, err := expandSprites(sprites)
	if err != nil {
		return model.PackResult{}, err
	}

	width, height := o.containerSize(expanded)
	packer := NewPacker(len(expanded))

	for {
		ok, err := o.packOnce(packer, expanded, width, height)
		if err != nil {
			return model.PackResult{}, err
		}
		if ok {
			result := o.buildResult(packer, expanded)
			o.logger().Debug("packed atlas",
				"sprites", len(expanded),
				"container", fmt.Sprintf("%dx%d", width, height),
				"atlas", fmt.Sprintf("%dx%d", result.AtlasWidth, result.AtlasHeight),
				"efficiency", fmt.Sprintf("%.1f%%", result.Efficiency()))
			return result, nil
		}

		if !o.Settings.AutoGrow {
			return model.PackResult{}, fmt.Errorf("%d sprites into %dx%d: %w", len(expanded), width, height, ErrDoesNotFit)
		}
		nw, nh, grown := o.grow(width, height)
		if !grown {
			return model.PackResult{}, fmt.Errorf("%d sprites into %dx%d (max size %d): %w",
				len(expanded), width, height, o.maxSize(), ErrDoesNotFit)
		}
		o.logger().Debug("atlas too small, growing",
			"from", fmt.Sprintf("%dx%d", width, height),
			"to", fmt.Sprintf("%dx%d", nw, nh))
		width, height = nw, nh
	}
}

func (o *Optimizer) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

// expandSprites validates sprites and expands them by quantity. A quantity
// below one counts as a single copy.
func expandSprites(sprites []model.Sprite) ([]model.Sprite, error) {
	var expanded []model.Sprite
	for _, s := range sprites {
		if s.Width < 0 || s.Height < 0 {
			return nil, fmt.Errorf("sprite %q is %dx%d: %w", s.Label, s.Width, s.Height, ErrInvalidSprite)
		}
		qty := max(s.Quantity, 1)
		for i := 0; i < qty; i++ {
			cp := s
			cp.Quantity = 1
			expanded = append(expanded, cp)
		}
	}
	return expanded, nil
}

// containerSize returns the configured container, estimating any side left at zero.
func (o *Optimizer) containerSize(sprites []model.Sprite) (int, int) {
	width, height := o.Settings.Width, o.Settings.Height
	if width > 0 && height > 0 {
		return width, height
	}
	side := max(model.EstimateAtlasSize(sprites, o.Settings.Padding, 0).Side, 1)
	if width == 0 {
		width = side
	}
	if height == 0 {
		height = side
	}
	return width, height
}

// packOnce runs one packing session for the whole batch.
func (o *Optimizer) packOnce(packer *Packer, sprites []model.Sprite, width, height int) (bool, error) {
	if err := packer.Init(width, height); err != nil {
		return false, err
	}
	pad := o.Settings.Padding
	for i, s := range sprites {
		canRotate := o.Settings.AllowRotation && s.CanRotate
		if err := packer.Add(i, s.Width+pad, s.Height+pad, canRotate); err != nil {
			return false, err
		}
	}
	return packer.Pack()
}

// buildResult converts the packer output back into sprite placements.
func (o *Optimizer) buildResult(packer *Packer, sprites []model.Sprite) model.PackResult {
	placed := packer.Placed()
	// Ids are input indices, so sorting restores input order.
	sort.Slice(placed, func(i, j int) bool {
		return placed[i].ID < placed[j].ID
	})

	pad := o.Settings.Padding
	width, height := packer.Size()
	result := model.PackResult{
		Width:      width,
		Height:     height,
		Placements: make([]model.Placement, 0, len(placed)),
	}
	for _, r := range placed {
		s := sprites[r.ID]
		rotated := s.Width != s.Height && r.Rect.W == s.Height+pad
		result.Placements = append(result.Placements, model.Placement{
			Sprite:  s,
			X:       r.Rect.X,
			Y:       r.Rect.Y,
			Rotated: rotated,
		})
	}

	if len(placed) > 0 {
		result.AtlasWidth, result.AtlasHeight = packer.Bounds()
		if o.Settings.PowerOfTwo {
			result.AtlasWidth = model.NextPowerOfTwo(result.AtlasWidth)
			result.AtlasHeight = model.NextPowerOfTwo(result.AtlasHeight)
		}
	}
	return result
}

func (o *Optimizer) maxSize() int {
	if o.Settings.MaxSize > 0 {
		return o.Settings.MaxSize
	}
	return model.DefaultSettings().MaxSize
}

// grow doubles the smaller side of the container, capped at the max size.
// It reports false when neither side can grow any further.
func (o *Optimizer) grow(width, height int) (int, int, bool) {
	limit := o.maxSize()
	double := func(v int) int {
		return min(max(v*2, 1), limit)
	}

	if width <= height {
		if nw := double(width); nw > width {
			return nw, height, true
		}
	}
	if nh := double(height); nh > height {
		return width, nh, true
	}
	if nw := double(width); nw > width {
		return nw, height, true
	}
	return width, height, false
}
