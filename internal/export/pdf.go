// Package export writes packed atlas layouts to JSON manifests, PDF previews
// and QR-coded label sheets.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/atlaspack/internal/model"
)

// ErrEmptyResult is returned when a layout has no placements to export.
var ErrEmptyResult = errors.New("no placed sprites to export")

// spriteColor represents an RGB color for a placed sprite.
type spriteColor struct {
	R, G, B int
}

var spriteColors = []spriteColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders a layout preview: one page with the container, the
// placed sprites and the spare regions, followed by a summary page listing
// every placement and the settings used.
func ExportPDF(path string, result model.PackResult, settings model.AtlasSettings) error {
	if len(result.Placements) == 0 {
		return ErrEmptyResult
	}
	if result.Width <= 0 || result.Height <= 0 {
		return fmt.Errorf("invalid container %dx%d", result.Width, result.Height)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, result)

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// layoutScale returns the mm-per-pixel scale that fits a w x h container
// into the drawing area.
func layoutScale(w, h int) float64 {
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	return math.Min(drawWidth/float64(w), drawHeight/float64(h))
}

func renderLayoutPage(pdf *fpdf.Fpdf, result model.PackResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Atlas %d x %d px (container %d x %d)",
		result.AtlasWidth, result.AtlasHeight, result.Width, result.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Sprites: %d | Used area: %d px² | Atlas area: %d px² | Efficiency: %.1f%%",
		len(result.Placements), result.UsedArea(), result.TotalArea(), result.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	scale := layoutScale(result.Width, result.Height)
	canvasW := float64(result.Width) * scale
	canvasH := float64(result.Height) * scale
	drawWidth := pageWidth - marginLeft - marginRight
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Container background
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, s := range model.DetectSpareRegions(result) {
		zx := offsetX + float64(s.X)*scale
		zy := offsetY + float64(s.Y)*scale
		zw := float64(s.Width) * scale
		zh := float64(s.Height) * scale
		pdf.SetFillColor(220, 240, 220)
		pdf.SetDrawColor(0, 140, 0)
		pdf.SetLineWidth(0.3)
		pdf.Rect(zx, zy, zw, zh, "FD")
		drawHatchPattern(pdf, zx, zy, zw, zh)
	}

	for i, p := range result.Placements {
		col := spriteColors[i%len(spriteColors)]
		pw := float64(p.PlacedWidth()) * scale
		ph := float64(p.PlacedHeight()) * scale
		px := offsetX + float64(p.X)*scale
		py := offsetY + float64(p.Y)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(px, py, pw, ph, "FD")

		// Label only when it fits
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Sprite.Label
			dims := fmt.Sprintf("%dx%d", p.Sprite.Width, p.Sprite.Height)
			if p.Rotated {
				dims += " R"
			}
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	// Used atlas extent, dashed
	if result.AtlasWidth > 0 && result.AtlasHeight > 0 {
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.4)
		pdf.SetDashPattern([]float64{2, 1}, 0)
		pdf.Rect(offsetX, offsetY,
			math.Min(float64(result.AtlasWidth)*scale, canvasW),
			math.Min(float64(result.AtlasHeight)*scale, canvasH), "D")
		pdf.SetDashPattern([]float64{}, 0)
	}

	drawDimensionAnnotations(pdf, result.Width, result.Height, offsetX, offsetY, canvasW, canvasH)
	drawSpriteLegend(pdf, result, offsetY+canvasH+6)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark spare space.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(0, 140, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds width and height labels outside the container.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, width, height int, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d px", width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d px", height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawSpriteLegend renders a compact colour legend under the layout.
func drawSpriteLegend(pdf *fpdf.Fpdf, result model.PackResult, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Sprites placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight
	maxY := pageHeight - marginBottom

	for i, p := range result.Placements {
		col := spriteColors[i%len(spriteColors)]
		label := fmt.Sprintf("%s (%dx%d)", p.Sprite.Label, p.Sprite.Width, p.Sprite.Height)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		if startY+4 > maxY {
			// The summary page lists everything
			pdf.SetXY(xPos, startY-5)
			pdf.CellFormat(20, 4, "...", "", 0, "L", false, 0, "")
			return
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, result model.PackResult, settings model.AtlasSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Atlas Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	spare := model.DetectSpareRegions(result)

	items := []struct {
		label string
		value string
	}{
		{"Atlas Size", fmt.Sprintf("%d x %d px", result.AtlasWidth, result.AtlasHeight)},
		{"Container", fmt.Sprintf("%d x %d px", result.Width, result.Height)},
		{"Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency())},
		{"Sprites Placed", fmt.Sprintf("%d", len(result.Placements))},
		{"Spare Regions", fmt.Sprintf("%d (%d px²)", len(spare), model.TotalSpareArea(spare))},
		{"Padding", fmt.Sprintf("%d px", settings.Padding)},
		{"Rotation", onOff(settings.AllowRotation)},
		{"Power of Two", onOff(settings.PowerOfTwo)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 5

	colWidths := []float64{15, 90, 35, 35, 35, 25}
	headers := []string{"#", "Sprite", "Size", "X", "Y", "Rotated"}
	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, h := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += 6
		pdf.SetFont("Helvetica", "", 9)
	}
	drawHeader()

	for i, p := range result.Placements {
		if y+6 > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
			drawHeader()
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			p.Sprite.Label,
			fmt.Sprintf("%d x %d", p.Sprite.Width, p.Sprite.Height),
			fmt.Sprintf("%d", p.X),
			fmt.Sprintf("%d", p.Y),
			onOff(p.Rotated),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos := marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by atlaspack", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func onOff(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
