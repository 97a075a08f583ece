package container

import (
	"encoding/binary"
	"fmt"

	binviderrors "github.com/provide-io/binvid/pkg/binvid/errors"
	"github.com/provide-io/binvid/pkg/binvid/settings"
)

// Header is the fixed 10-byte prefix of a container file.
type Header struct {
	Mode   settings.OutputMode
	Length uint32 // bit count for Binary, byte count for Color
}

// Magic returns the 6-byte tag for the header's mode.
func (h Header) Magic() [MagicSize]byte {
	if h.Mode == settings.Color {
		return MagicColor
	}
	return MagicBinary
}

// Pack serializes the header to bytes
func (h Header) Pack() []byte {
	buf := make([]byte, HeaderSize)
	magic := h.Magic()
	copy(buf[0:MagicSize], magic[:])
	binary.LittleEndian.PutUint32(buf[MagicSize:HeaderSize], h.Length)
	return buf
}

// Unpack deserializes the header from bytes
func (h *Header) Unpack(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes, expected %d", binviderrors.ErrTruncatedHeader, len(data), HeaderSize)
	}

	var magic [MagicSize]byte
	copy(magic[:], data[0:MagicSize])
	switch magic {
	case MagicBinary:
		h.Mode = settings.Binary
	case MagicColor:
		h.Mode = settings.Color
	default:
		return fmt.Errorf("%w: %q", binviderrors.ErrInvalidMagic, magic[:])
	}

	h.Length = binary.LittleEndian.Uint32(data[MagicSize:HeaderSize])
	return nil
}
