package settings

import (
	"fmt"
	"sort"
	"strings"

	binviderrors "github.com/provide-io/binvid/pkg/binvid/errors"
)

// Built-in preset names
const (
	PresetOptimal       = "optimal"
	PresetParanoid      = "paranoid"
	PresetMaxEfficiency = "max-efficiency"
)

// Preset is a complete (mode, settings) tuple selectable by name.
type Preset struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Mode        OutputMode `json:"mode"`
	Settings    Settings   `json:"settings"`
}

// Catalog maps preset names to presets.
type Catalog map[string]Preset

// DefaultCatalog returns a fresh copy of the built-in presets.
func DefaultCatalog() Catalog {
	return Catalog{
		PresetOptimal: {
			Name:        PresetOptimal,
			Description: "Balanced compression resistance",
			Mode:        Binary,
			Settings:    Settings{Size: 2, Threads: 8, FPS: 10.0, Width: 1280, Height: 720},
		},
		PresetParanoid: {
			Name:        PresetParanoid,
			Description: "Maximum compression resistance",
			Mode:        Binary,
			Settings:    Settings{Size: 4, Threads: 8, FPS: 10.0, Width: 1280, Height: 720},
		},
		PresetMaxEfficiency: {
			Name:        PresetMaxEfficiency,
			Description: "Highest data density",
			Mode:        Color,
			Settings:    Settings{Size: 1, Threads: 8, FPS: 10.0, Width: 256, Height: 144},
		},
	}
}

var presetAliases = map[string]string{
	"maxefficiency":  PresetMaxEfficiency,
	"max_efficiency": PresetMaxEfficiency,
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := presetAliases[name]; ok {
		return alias
	}
	return name
}

// Lookup finds a preset by name or alias.
func (c Catalog) Lookup(name string) (Preset, error) {
	p, ok := c[normalizeName(name)]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q (known: %s)", binviderrors.ErrUnknownPreset, name, strings.Join(c.Names(), ", "))
	}
	return p, nil
}

// Names returns the sorted preset names.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new catalog where entries of other replace same-named ones.
func (c Catalog) Merge(other Catalog) Catalog {
	out := make(Catalog, len(c)+len(other))
	for name, p := range c {
		out[name] = p
	}
	for name, p := range other {
		out[normalizeName(name)] = p
	}
	return out
}
