// Package payload defines the data handed from the codec to the visualizer
// and the container writer.
package payload

import (
	"fmt"

	"github.com/provide-io/binvid/pkg/binvid/bitcodec"
	binviderrors "github.com/provide-io/binvid/pkg/binvid/errors"
	"github.com/provide-io/binvid/pkg/binvid/settings"
)

// Data is either Bits or Bytes. No other implementations exist.
type Data interface {
	// Mode reports which output mode the payload was built for.
	Mode() settings.OutputMode
	// Units is the payload length in bits (Binary) or bytes (Color).
	Units() int

	sealed()
}

// Bits is a Binary-mode payload.
type Bits []bool

func (Bits) Mode() settings.OutputMode { return settings.Binary }
func (b Bits) Units() int              { return len(b) }
func (Bits) sealed()                   {}

// Bytes is a Color-mode payload.
type Bytes []byte

func (Bytes) Mode() settings.OutputMode { return settings.Color }
func (b Bytes) Units() int              { return len(b) }
func (Bytes) sealed()                   {}

// New builds the payload variant for mode from raw input.
func New(mode settings.OutputMode, raw []byte) (Data, error) {
	switch mode {
	case settings.Binary:
		return Bits(bitcodec.BytesToBits(raw)), nil
	case settings.Color:
		return Bytes(raw), nil
	default:
		return nil, fmt.Errorf("%w: %v", binviderrors.ErrUnknownMode, mode)
	}
}
