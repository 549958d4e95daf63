package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/piwi3910/atlaspack/internal/model"
)

// ManifestVersion is written into every manifest.
const ManifestVersion = "1"

// Manifest is the machine-readable description of a packed atlas.
type Manifest struct {
	Meta   ManifestMeta `json:"meta"`
	Frames []Frame      `json:"frames"`
}

// ManifestMeta describes the atlas as a whole.
type ManifestMeta struct {
	App             string  `json:"app"`
	Version         string  `json:"version"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	ContainerWidth  int     `json:"container_width"`
	ContainerHeight int     `json:"container_height"`
	Padding         int     `json:"padding"`
	PowerOfTwo      bool    `json:"power_of_two"`
	Efficiency      float64 `json:"efficiency"`
}

// Frame is one placed sprite. X, Y, W and H describe the occupied
// rectangle in the atlas; SourceW and SourceH are the unrotated size.
type Frame struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	W       int    `json:"w"`
	H       int    `json:"h"`
	Rotated bool   `json:"rotated"`
	SourceW int    `json:"source_w"`
	SourceH int    `json:"source_h"`
}

// BuildManifest converts a layout into a manifest. Frame names are the
// sprite labels; repeated labels get a "#n" suffix that no other frame uses.
func BuildManifest(result model.PackResult, settings model.AtlasSettings) Manifest {
	m := Manifest{
		Meta: ManifestMeta{
			App:             "atlaspack",
			Version:         ManifestVersion,
			Width:           result.AtlasWidth,
			Height:          result.AtlasHeight,
			ContainerWidth:  result.Width,
			ContainerHeight: result.Height,
			Padding:         settings.Padding,
			PowerOfTwo:      settings.PowerOfTwo,
			Efficiency:      result.Efficiency(),
		},
		Frames: make([]Frame, 0, len(result.Placements)),
	}

	names := frameNames(result.Placements)
	for i, p := range result.Placements {
		r := p.Rect()
		m.Frames = append(m.Frames, Frame{
			Name:    names[i],
			ID:      p.Sprite.ID,
			X:       r.X,
			Y:       r.Y,
			W:       r.W,
			H:       r.H,
			Rotated: p.Rotated,
			SourceW: p.Sprite.Width,
			SourceH: p.Sprite.Height,
		})
	}
	return m
}

// frameNames assigns each placement a unique frame name. The first sprite
// with a label keeps it, as do all labels that occur in the input, so a
// literal "a#2" is never renamed. Later copies take the lowest free "#n"
// suffix starting at 2.
func frameNames(placements []model.Placement) []string {
	used := make(map[string]bool, len(placements))
	for _, p := range placements {
		used[p.Sprite.Label] = true
	}

	names := make([]string, len(placements))
	claimed := make(map[string]bool, len(placements))
	next := make(map[string]int)
	for i, p := range placements {
		label := p.Sprite.Label
		if !claimed[label] {
			claimed[label] = true
			names[i] = label
			continue
		}
		n := max(next[label], 2)
		name := fmt.Sprintf("%s#%d", label, n)
		for used[name] {
			n++
			name = fmt.Sprintf("%s#%d", label, n)
		}
		used[name] = true
		claimed[name] = true
		next[label] = n + 1
		names[i] = name
	}
	return names
}

// WriteManifest encodes the manifest for a layout as indented JSON.
func WriteManifest(w io.Writer, result model.PackResult, settings model.AtlasSettings) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildManifest(result, settings))
}

// ExportManifest writes the manifest for a layout to path.
func ExportManifest(path string, result model.PackResult, settings model.AtlasSettings) error {
	if len(result.Placements) == 0 {
		return ErrEmptyResult
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	if err := WriteManifest(f, result, settings); err != nil {
		f.Close()
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return f.Close()
}
