package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/atlaspack/internal/model"
)

// buildTestResult creates a realistic layout for testing.
func buildTestResult() model.PackResult {
	return model.PackResult{
		Width:       256,
		Height:      256,
		AtlasWidth:  128,
		AtlasHeight: 128,
		Placements: []model.Placement{
			{
				Sprite: model.Sprite{ID: "s1", Label: "hero.png", Width: 64, Height: 96, Quantity: 1, CanRotate: true},
				X:      0, Y: 0, Rotated: false,
			},
			{
				Sprite: model.Sprite{ID: "s2", Label: "sword.png", Width: 64, Height: 16, Quantity: 1, CanRotate: true},
				X:      64, Y: 0, Rotated: true,
			},
			{
				Sprite: model.Sprite{ID: "s3", Label: "coin.png", Width: 16, Height: 16, Quantity: 1},
				X:      80, Y: 0, Rotated: false,
			},
		},
	}
}

func assertNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("file is empty")
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.pdf")

	if err := ExportPDF(path, buildTestResult(), model.DefaultSettings()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	assertNonEmptyFile(t, path)
	info, _ := os.Stat(path)
	// Layout page plus summary page
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, model.PackResult{Width: 64, Height: 64}, model.DefaultSettings())
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
}

func TestExportPDF_InvalidContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")

	result := buildTestResult()
	result.Width = 0
	if err := ExportPDF(path, result, model.DefaultSettings()); err == nil {
		t.Fatal("expected error for zero-width container")
	}
}

func TestExportPDF_NonSquareContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strip.pdf")

	result := buildTestResult()
	result.Width, result.Height = 2048, 128
	result.AtlasWidth = 256
	if err := ExportPDF(path, result, model.DefaultSettings()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportPDF_ManySprites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	// More sprites than colors, and enough rows to spill the summary table
	placements := make([]model.Placement, 60)
	for i := range placements {
		placements[i] = model.Placement{
			Sprite: model.Sprite{
				ID:       fmt.Sprintf("s%d", i),
				Label:    fmt.Sprintf("frame_%02d.png", i),
				Width:    32,
				Height:   24,
				Quantity: 1,
			},
			X:       (i % 10) * 32,
			Y:       (i / 10) * 32,
			Rotated: i%3 == 0,
		}
	}
	result := model.PackResult{
		Width: 512, Height: 512, AtlasWidth: 512, AtlasHeight: 256,
		Placements: placements,
	}

	if err := ExportPDF(path, result, model.DefaultSettings()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestLayoutScale(t *testing.T) {
	wide := layoutScale(1000, 10)
	tall := layoutScale(10, 1000)
	if wide*1000 > pageWidth-marginLeft-marginRight+1e-9 {
		t.Errorf("wide container does not fit horizontally: scale %f", wide)
	}
	if tall*1000 > pageHeight-drawAreaTop-marginBottom-legendHeight+1e-9 {
		t.Errorf("tall container does not fit vertically: scale %f", tall)
	}
}

func TestOnOff(t *testing.T) {
	if onOff(true) != "yes" || onOff(false) != "no" {
		t.Error("unexpected onOff output")
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 8},
		{30, 25, 7},
		{10, 15, 6},
	}
	for _, tt := range tests {
		got := labelFontSize(tt.w, tt.h)
		if got != tt.want {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
