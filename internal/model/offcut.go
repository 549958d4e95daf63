package model

import "sort"

// SpareRegion is a rectangular strip of the container left empty after
// packing, large enough to hold more sprites in a later build.
type SpareRegion struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns the area of the region in px².
func (s SpareRegion) Area() int {
	return s.Width * s.Height
}

// MinSpareDimension is the minimum width or height (px) for an empty strip
// to be reported. Narrower strips are waste.
const MinSpareDimension = 16

// DetectSpareRegions returns the empty strips right of and below the used
// extent of a layout, largest first. The bottom strip stops at the used
// width so the two strips never overlap.
func DetectSpareRegions(r PackResult) []SpareRegion {
	if len(r.Placements) == 0 {
		if r.Width < MinSpareDimension || r.Height < MinSpareDimension {
			return nil
		}
		return []SpareRegion{{Width: r.Width, Height: r.Height}}
	}

	var usedRight, usedBottom int
	for _, p := range r.Placements {
		rect := p.Rect()
		usedRight = max(usedRight, rect.Right())
		usedBottom = max(usedBottom, rect.Bottom())
	}

	var spare []SpareRegion

	if w := r.Width - usedRight; w >= MinSpareDimension && r.Height >= MinSpareDimension {
		spare = append(spare, SpareRegion{X: usedRight, Y: 0, Width: w, Height: r.Height})
	}

	if h := r.Height - usedBottom; h >= MinSpareDimension && usedRight >= MinSpareDimension {
		spare = append(spare, SpareRegion{X: 0, Y: usedBottom, Width: usedRight, Height: h})
	}

	sort.Slice(spare, func(i, j int) bool {
		return spare[i].Area() > spare[j].Area()
	})
	return spare
}

// TotalSpareArea returns the total area of all regions in px².
func TotalSpareArea(regions []SpareRegion) int {
	var total int
	for _, s := range regions {
		total += s.Area()
	}
	return total
}
