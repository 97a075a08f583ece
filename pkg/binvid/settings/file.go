package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	binviderrors "github.com/provide-io/binvid/pkg/binvid/errors"
)

// presetFile is the YAML layout of a user preset file.
type presetFile struct {
	Presets map[string]presetEntry `yaml:"presets"`
}

type presetEntry struct {
	Description string   `yaml:"description"`
	Mode        string   `yaml:"mode"`
	BlockSize   int      `yaml:"block_size"`
	Threads     *int     `yaml:"threads"`
	FPS         *float64 `yaml:"fps"`
	Resolution  string   `yaml:"resolution"`
	Width       int      `yaml:"width"`
	Height      int      `yaml:"height"`
}

// ParseCatalog decodes a YAML preset file.
func ParseCatalog(data []byte) (Catalog, error) {
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	catalog := make(Catalog, len(file.Presets))
	for name, entry := range file.Presets {
		p, err := entry.preset(normalizeName(name))
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		catalog[p.Name] = p
	}
	return catalog, nil
}

func (e presetEntry) preset(name string) (Preset, error) {
	mode := Binary
	if e.Mode != "" {
		m, err := ParseOutputMode(e.Mode)
		if err != nil {
			return Preset{}, err
		}
		mode = m
	}

	s := Settings{
		Size:    e.BlockSize,
		Threads: DefaultThreads,
		FPS:     DefaultFPS,
		Width:   e.Width,
		Height:  e.Height,
	}
	if s.Size == 0 {
		s.Size = DefaultBlockSize
	}
	if e.Threads != nil {
		s.Threads = *e.Threads
	}
	if e.FPS != nil {
		s.FPS = *e.FPS
	}
	if e.Width == 0 && e.Height == 0 {
		res := LookupResolution(e.Resolution)
		s.Width, s.Height = res.Width, res.Height
	} else if e.Resolution != "" {
		return Preset{}, fmt.Errorf("%w: set either resolution or width/height", binviderrors.ErrInvalidSettings)
	}

	if err := s.Validate(); err != nil {
		return Preset{}, err
	}
	return Preset{Name: name, Description: e.Description, Mode: mode, Settings: s}, nil
}

// LoadCatalogFile reads a YAML preset file from disk.
func LoadCatalogFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}
