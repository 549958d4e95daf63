package model

import "math"

// SizeEstimate holds the results of an atlas size calculation.
type SizeEstimate struct {
	TotalSpriteArea int     `json:"total_sprite_area"` // Area of all sprites including padding (px²)
	MaxSpriteSide   int     `json:"max_sprite_side"`   // Longest single sprite side including padding
	WastePercent    float64 `json:"waste_percent"`     // Waste factor applied (e.g. 15 for 15%)
	Side            int     `json:"side"`              // Suggested square container side
}

// EstimateAtlasSize suggests a square container side for a sprite list. The
// side is the smallest power of two whose area covers the padded sprite area
// plus wastePercent and which is at least as long as the longest sprite side.
// The estimate is a starting point only: a pack at this size may still fail.
func EstimateAtlasSize(sprites []Sprite, padding int, wastePercent float64) SizeEstimate {
	var totalArea, maxSide int
	for _, s := range sprites {
		w := s.Width + padding
		h := s.Height + padding
		qty := max(s.Quantity, 1)
		totalArea += w * h * qty
		maxSide = max(maxSide, w, h)
	}

	if totalArea == 0 {
		return SizeEstimate{WastePercent: wastePercent}
	}

	wasteFactor := 1.0 + (wastePercent / 100.0)
	minSide := int(math.Ceil(math.Sqrt(float64(totalArea) * wasteFactor)))
	side := NextPowerOfTwo(max(minSide, maxSide))

	return SizeEstimate{
		TotalSpriteArea: totalArea,
		MaxSpriteSide:   maxSide,
		WastePercent:    wastePercent,
		Side:            side,
	}
}

// NextPowerOfTwo returns the smallest power of two >= v. Values <= 1 return 1.
func NextPowerOfTwo(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}
