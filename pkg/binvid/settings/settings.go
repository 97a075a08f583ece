// Package settings turns a preset name plus explicit overrides into the
// concrete Settings and OutputMode used by the embed pipeline.
package settings

import (
	"fmt"
	"strings"

	binviderrors "github.com/provide-io/binvid/pkg/binvid/errors"
)

// OutputMode selects the codec and container variant.
type OutputMode int

const (
	Binary OutputMode = iota // black/white blocks, one bit per block
	Color                    // RGB blocks, three bytes per block
)

func (m OutputMode) String() string {
	switch m {
	case Binary:
		return "binary"
	case Color:
		return "color"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseOutputMode accepts "binary", "color" and "colored".
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binary":
		return Binary, nil
	case "color", "colored", "colour":
		return Color, nil
	default:
		return Binary, fmt.Errorf("%w: %q", binviderrors.ErrUnknownMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m OutputMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *OutputMode) UnmarshalText(text []byte) error {
	parsed, err := ParseOutputMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Settings describes the output shape of an embed run.
type Settings struct {
	Size    int     `json:"block_size"` // block side length in pixels
	Threads int     `json:"threads"`    // render workers; 0 means one
	FPS     float64 `json:"fps"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
}

// Validate rejects settings the visualizer cannot render.
func (s Settings) Validate() error {
	switch {
	case s.Size < 1:
		return fmt.Errorf("%w: block size must be at least 1, got %d", binviderrors.ErrInvalidSettings, s.Size)
	case s.Width < 1 || s.Height < 1:
		return fmt.Errorf("%w: resolution must be positive, got %dx%d", binviderrors.ErrInvalidSettings, s.Width, s.Height)
	case s.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %g", binviderrors.ErrInvalidSettings, s.FPS)
	case s.Threads < 0:
		return fmt.Errorf("%w: threads must not be negative, got %d", binviderrors.ErrInvalidSettings, s.Threads)
	}
	return nil
}

// Workers returns the number of render goroutines to start.
func (s Settings) Workers() int {
	if s.Threads < 1 {
		return 1
	}
	return s.Threads
}

// Resolution is a named frame size.
type Resolution struct {
	Name   string
	Width  int
	Height int
}

// DefaultResolution is used when no token or an unknown token is given.
var DefaultResolution = Resolution{Name: "360p", Width: 640, Height: 360}

var resolutions = []Resolution{
	{Name: "144p", Width: 256, Height: 144},
	{Name: "240p", Width: 426, Height: 240},
	{Name: "360p", Width: 640, Height: 360},
	{Name: "480p", Width: 854, Height: 480},
	{Name: "720p", Width: 1280, Height: 720},
}

// Resolutions lists the named resolutions in ascending order.
func Resolutions() []Resolution {
	out := make([]Resolution, len(resolutions))
	copy(out, resolutions)
	return out
}

// LookupResolution maps a token such as "480p" to its frame size.
// Unknown and empty tokens yield DefaultResolution.
func LookupResolution(token string) Resolution {
	token = strings.ToLower(strings.TrimSpace(token))
	for _, r := range resolutions {
		if r.Name == token {
			return r
		}
	}
	return DefaultResolution
}

// Custom baseline used when no preset is selected.
const (
	DefaultBlockSize = 2
	DefaultThreads   = 8
	DefaultFPS       = 10.0
)
