package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/piwi3910/atlaspack/internal/model"
)

// ProjectExt is the file extension used for saved projects.
const ProjectExt = ".atlas.json"

// ErrUnsupportedFormat is returned by LoadJob for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported job file format")

// SaveProject writes a project as indented JSON.
func SaveProject(path string, p model.Project) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// LoadProject reads a project written by SaveProject.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	p := model.NewProject()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	normalize(&p)
	return p, nil
}

// LoadJob reads a packing job. Files ending in .toml are decoded as TOML,
// anything ending in .json as a project. Sprites without an id get one,
// sprites without can_rotate may rotate in both formats, and settings
// missing from the file keep their defaults.
//
// A TOML job looks like:
//
//	name = "ui"
//	[settings]
//	width = 512
//	height = 512
//	[[sprites]]
//	label = "button"
//	width = 64
//	height = 24
//	quantity = 3
func LoadJob(path string) (model.Project, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return LoadProject(path)
	case ".toml":
	default:
		return model.Project{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	job := jobFile{
		Name:     strings.TrimSuffix(filepath.Base(path), ext),
		Settings: model.DefaultSettings(),
	}
	md, err := toml.DecodeFile(path, &job)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to parse job %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return model.Project{}, fmt.Errorf("job %s: unknown keys %v", path, undecoded)
	}

	p := model.Project{Name: job.Name, Settings: job.Settings}
	for _, js := range job.Sprites {
		p.Sprites = append(p.Sprites, js.sprite())
	}
	normalize(&p)
	return p, nil
}

type jobFile struct {
	Name     string              `toml:"name"`
	Settings model.AtlasSettings `toml:"settings"`
	Sprites  []jobSprite         `toml:"sprites"`
}

type jobSprite struct {
	ID        string `toml:"id"`
	Label     string `toml:"label"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Quantity  int    `toml:"quantity"`
	CanRotate *bool  `toml:"can_rotate"` // Unset means rotatable
}

func (js jobSprite) sprite() model.Sprite {
	s := model.Sprite{
		ID:        js.ID,
		Label:     js.Label,
		Width:     js.Width,
		Height:    js.Height,
		Quantity:  max(js.Quantity, 1),
		CanRotate: true,
	}
	if js.CanRotate != nil {
		s.CanRotate = *js.CanRotate
	}
	return s
}

func normalize(p *model.Project) {
	if p.Sprites == nil {
		p.Sprites = []model.Sprite{}
	}
	for i := range p.Sprites {
		if p.Sprites[i].ID == "" {
			p.Sprites[i].ID = uuid.New().String()[:8]
		}
	}
}
