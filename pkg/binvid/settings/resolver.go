package settings

import (
	"github.com/hashicorp/go-hclog"
)

// Overrides are the explicitly supplied values. A nil field was not given.
type Overrides struct {
	Mode       *OutputMode
	BlockSize  *int
	Threads    *int
	FPS        *float64
	Resolution string // only consulted when no preset is chosen
}

// Resolver resolves presets against a catalog.
type Resolver struct {
	catalog Catalog
	logger  hclog.Logger
}

// NewResolver creates a resolver over the given catalog. A nil catalog
// means the built-in presets.
func NewResolver(catalog Catalog, logger hclog.Logger) *Resolver {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Resolver{catalog: catalog, logger: logger}
}

// Catalog returns the presets known to the resolver.
func (r *Resolver) Catalog() Catalog {
	return r.catalog
}

// Resolve produces the final settings and mode. Explicit overrides take
// precedence over the preset or the custom baseline.
func (r *Resolver) Resolve(preset string, ov Overrides) (Settings, OutputMode, error) {
	var (
		s    Settings
		mode OutputMode
	)

	if preset != "" {
		p, err := r.catalog.Lookup(preset)
		if err != nil {
			return Settings{}, Binary, err
		}
		s, mode = p.Settings, p.Mode
		r.logger.Debug("⚙️ Using preset", "preset", p.Name, "mode", mode)
	} else {
		res := LookupResolution(ov.Resolution)
		s = Settings{
			Size:    DefaultBlockSize,
			Threads: DefaultThreads,
			FPS:     DefaultFPS,
			Width:   res.Width,
			Height:  res.Height,
		}
		mode = Binary
		r.logger.Debug("⚙️ No preset, using custom settings", "resolution", res.Name)
	}

	if ov.Mode != nil {
		mode = *ov.Mode
	}
	if ov.BlockSize != nil {
		s.Size = *ov.BlockSize
	}
	if ov.Threads != nil {
		s.Threads = *ov.Threads
	}
	if ov.FPS != nil {
		s.FPS = *ov.FPS
	}

	if err := s.Validate(); err != nil {
		return Settings{}, mode, err
	}
	return s, mode, nil
}

// Resolve uses the built-in presets.
func Resolve(preset string, ov Overrides) (Settings, OutputMode, error) {
	return NewResolver(nil, nil).Resolve(preset, ov)
}
