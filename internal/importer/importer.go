// Package importer reads sprite lists from CSV, Excel and DXF files.
//
// Tabular sources are matched by header name: a row naming any known column
// is taken as the header, otherwise columns are read by position. Sizes can
// come as separate width/height columns or as a single "64x32" size column.
package importer

import (
	"fmt"
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/piwi3910/atlaspack/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Sprites  []model.Sprite
	Errors   []string
	Warnings []string
}

func (r *ImportResult) merge(o ImportResult) {
	r.Sprites = append(r.Sprites, o.Sprites...)
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// ColumnMapping holds the index of each recognised column, -1 when absent.
type ColumnMapping struct {
	Label    int // Frame name
	File     int // Source image path, used for the name when Label is empty
	Width    int
	Height   int
	Size     int // "WxH" in one cell
	Quantity int
	Rotate   int
}

type column int

const (
	colLabel column = iota
	colFile
	colWidth
	colHeight
	colSize
	colQuantity
	colRotate
)

// columnAliases maps lowercase header text to a column.
var columnAliases = map[string]column{
	"label": colLabel, "name": colLabel, "frame": colLabel, "sprite": colLabel, "id": colLabel,

	"file": colFile, "filename": colFile, "path": colFile, "image": colFile, "source": colFile,

	"width": colWidth, "w": colWidth, "sx": colWidth, "size x": colWidth,
	"height": colHeight, "h": colHeight, "sy": colHeight, "size y": colHeight,
	"size": colSize, "dimensions": colSize, "wxh": colSize,

	"quantity": colQuantity, "qty": colQuantity, "count": colQuantity, "copies": colQuantity,

	"rotate": colRotate, "rotation": colRotate, "can rotate": colRotate, "can_rotate": colRotate,
	"rotatable": colRotate, "allow rotation": colRotate,
}

func noColumns() ColumnMapping {
	return ColumnMapping{Label: -1, File: -1, Width: -1, Height: -1, Size: -1, Quantity: -1, Rotate: -1}
}

func (m *ColumnMapping) index(c column) *int {
	switch c {
	case colLabel:
		return &m.Label
	case colFile:
		return &m.File
	case colWidth:
		return &m.Width
	case colHeight:
		return &m.Height
	case colSize:
		return &m.Size
	case colQuantity:
		return &m.Quantity
	default:
		return &m.Rotate
	}
}

// missing lists the size columns a header lacks. Either width and height
// or a combined size column is required.
func (m ColumnMapping) missing() []string {
	if m.Size >= 0 {
		return nil
	}
	var out []string
	if m.Width < 0 {
		out = append(out, "Width")
	}
	if m.Height < 0 {
		out = append(out, "Height")
	}
	return out
}

// DetectColumns examines a row and returns the mapping it describes.
// Matching is case-insensitive and the first column of each kind wins.
// Without any known header it returns a positional mapping and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := noColumns()
	found := false
	for i, cell := range row {
		c, ok := columnAliases[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		found = true
		if idx := mapping.index(c); *idx == -1 {
			*idx = i
		}
	}
	if !found {
		return positionalColumns(row), false
	}
	return mapping, true
}

// positionalColumns reads headerless rows as name, width, height, quantity,
// rotate, or name, size, quantity, rotate when the second cell is a size.
func positionalColumns(row []string) ColumnMapping {
	m := noColumns()
	m.Label = 0
	if _, _, _, err := parseSize(getCell(row, 1)); err == nil {
		m.Size, m.Quantity, m.Rotate = 1, 2, 3
		return m
	}
	m.Width, m.Height, m.Quantity, m.Rotate = 1, 2, 3, 4
	return m
}

// parseRotate converts a rotate flag to a bool.
// It returns the value and a boolean indicating whether the string was recognized.
func parseRotate(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "t", "1", "x":
		return true, true
	case "no", "n", "false", "f", "0", "-":
		return false, true
	default:
		return true, false
	}
}

// parsePixels parses a sprite dimension. Fractional values are rounded up
// to whole pixels and reported as a warning.
func parsePixels(s string) (int, bool, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, false, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, err
	}
	return int(math.Ceil(f)), true, nil
}

// parseSize parses "64x32", "64 X 32" or "64×32".
func parseSize(s string) (w, h int, rounded bool, err error) {
	s = strings.ReplaceAll(strings.ToLower(s), "×", "x")
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, false, fmt.Errorf("size %q is not WxH", s)
	}
	w, rw, err := parsePixels(ws)
	if err != nil {
		return 0, 0, false, err
	}
	h, rh, err := parsePixels(hs)
	if err != nil {
		return 0, 0, false, err
	}
	return w, h, rw || rh, nil
}

// getCell returns the trimmed cell at idx, or "" when out of range.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// spriteName picks the frame name: the label column, else the base name of
// the file column, else a numbered placeholder.
func spriteName(row []string, m ColumnMapping, n int) string {
	if label := getCell(row, m.Label); label != "" {
		return label
	}
	if file := getCell(row, m.File); file != "" {
		return path.Base(strings.ReplaceAll(file, `\`, "/"))
	}
	return fmt.Sprintf("Sprite %d", n+1)
}

// rowSize reads the sprite size from the size column when it has a value,
// otherwise from the width and height columns.
func rowSize(row []string, m ColumnMapping, rowLabel string) (w, h int, warnings []string, errMsg string) {
	if sizeStr := getCell(row, m.Size); sizeStr != "" {
		w, h, rounded, err := parseSize(sizeStr)
		if err != nil {
			return 0, 0, nil, fmt.Sprintf("%s: Invalid size '%s'", rowLabel, sizeStr)
		}
		if rounded {
			warnings = append(warnings, fmt.Sprintf("%s: Size '%s' rounded up to %dx%d px", rowLabel, sizeStr, w, h))
		}
		return w, h, warnings, ""
	}
	if m.Width < 0 && m.Height < 0 {
		return 0, 0, nil, fmt.Sprintf("%s: Missing size value", rowLabel)
	}

	dims := [2]int{}
	for i, d := range []struct {
		name string
		col  int
	}{{"width", m.Width}, {"height", m.Height}} {
		s := getCell(row, d.col)
		if s == "" {
			return 0, 0, nil, fmt.Sprintf("%s: Missing %s value", rowLabel, d.name)
		}
		v, rounded, err := parsePixels(s)
		if err != nil {
			return 0, 0, nil, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, d.name, s)
		}
		if rounded {
			warnings = append(warnings, fmt.Sprintf("%s: %s '%s' rounded up to %d px",
				rowLabel, strings.ToUpper(d.name[:1])+d.name[1:], s, v))
		}
		dims[i] = v
	}
	return dims[0], dims[1], warnings, ""
}

// parseRow extracts a Sprite from a row using the given column mapping.
// Returns the sprite, any error message, and any warnings.
func parseRow(row []string, m ColumnMapping, rowLabel string, spriteCount int) (model.Sprite, string, []string) {
	width, height, warnings, errMsg := rowSize(row, m, rowLabel)
	if errMsg != "" {
		return model.Sprite{}, errMsg, nil
	}

	qty := 1
	if qtyStr := getCell(row, m.Quantity); qtyStr != "" {
		var err error
		if qty, err = strconv.Atoi(qtyStr); err != nil {
			return model.Sprite{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
	}
	if width <= 0 || height <= 0 || qty <= 0 {
		return model.Sprite{}, fmt.Sprintf("%s: Width, height, and quantity must be positive", rowLabel), nil
	}

	sprite := model.NewSprite(spriteName(row, m, spriteCount), width, height, qty)
	if rotateStr := getCell(row, m.Rotate); rotateStr != "" {
		rotate, ok := parseRotate(rotateStr)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown rotate flag '%s', defaulting to rotatable", rowLabel, rotateStr))
		}
		sprite.CanRotate = rotate
	}
	return sprite, "", warnings
}

// skipRow reports blank rows and "#" comment rows.
func skipRow(row []string) bool {
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		return strings.HasPrefix(cell, "#")
	}
	return true
}

// importRows turns table rows into sprites. rowPrefix names rows in
// messages, e.g. "Line" for CSV.
func importRows(rows [][]string, rowPrefix string) ImportResult {
	var result ImportResult

	first := -1
	for i, row := range rows {
		if !skipRow(row) {
			first = i
			break
		}
	}
	if first < 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[first])
	start := first
	switch {
	case hasHeader:
		start++
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if missing := mapping.missing(); len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"Required columns not found in header: %s (or Size)", strings.Join(missing, ", ")))
			return result
		}
	case mapping.Width >= 0 && len(rows[first]) >= 3:
		// Unknown header words above positional data
		if _, _, err := parsePixels(getCell(rows[first], mapping.Width)); err != nil {
			start++
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := start; i < len(rows); i++ {
		if skipRow(rows[i]) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		sprite, errMsg, warnings := parseRow(rows[i], mapping, rowLabel, len(result.Sprites))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Sprites = append(result.Sprites, sprite)
	}
	return result
}
