// Package kinds holds the per-kind presets applied when items are created:
// display label and placeholder thumbnail. Presets ship as an embedded YAML
// file so deployments can rebrand placeholders without code changes.
package kinds

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"inkwell/internal/domain/models"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Preset describes the creation-time defaults for one item kind.
type Preset struct {
	ID        string `yaml:"id"`
	Label     string `yaml:"label"`
	Thumbnail string `yaml:"thumbnail"`
}

type presetFile struct {
	Kinds []Preset `yaml:"kinds"`
}

// Registry resolves presets by item kind.
type Registry struct {
	presets map[models.Kind]Preset
}

// NewRegistry loads the embedded preset file. Both item kinds must be
// present; a build with an incomplete file fails at startup.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/kinds.yaml")
	if err != nil {
		return nil, fmt.Errorf("read kind presets: %w", err)
	}

	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal kind presets: %w", err)
	}

	r := &Registry{presets: make(map[models.Kind]Preset, len(file.Kinds))}
	for _, preset := range file.Kinds {
		kind, err := models.ParseKind(preset.ID)
		if err != nil {
			return nil, fmt.Errorf("kind presets: %w", err)
		}
		r.presets[kind] = preset
	}

	for _, kind := range []models.Kind{models.KindBook, models.KindContent} {
		if _, ok := r.presets[kind]; !ok {
			return nil, fmt.Errorf("kind presets: missing entry for %q", kind)
		}
	}

	return r, nil
}

// Placeholder returns the default thumbnail for a kind.
func (r *Registry) Placeholder(kind models.Kind) string {
	return r.presets[kind].Thumbnail
}

// Label returns the display label for a kind.
func (r *Registry) Label(kind models.Kind) string {
	return r.presets[kind].Label
}
