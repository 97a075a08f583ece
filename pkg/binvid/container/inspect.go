package container

import (
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/binvid/pkg/binvid/bitcodec"
	"github.com/provide-io/binvid/pkg/binvid/settings"
)

// Info describes a container file, along with the frame count its payload
// would need at the given settings.
type Info struct {
	Path         string `json:"path"`
	Mode         string `json:"mode"`
	Length       uint32 `json:"length"`
	PayloadBytes int    `json:"payload_bytes"`
	DataSize     int    `json:"data_size"`
	Frames       int    `json:"frames"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	BlockSize    int    `json:"block_size"`
}

// Inspect reads the container at path and summarizes it against s.
func Inspect(path string, s settings.Settings, logger hclog.Logger) (*Info, error) {
	reader := NewReaderWithLogger(path, logger)
	defer func() {
		if err := reader.Close(); err != nil {
			reader.logger.Debug("Failed to close reader", "error", err)
		}
	}()

	header, err := reader.ReadHeader()
	if err != nil {
		return nil, err
	}
	data, err := reader.ReadPayload()
	if err != nil {
		return nil, err
	}

	units, size := len(data), HeaderSize+len(data)
	if header.Mode == settings.Binary {
		units = int(header.Length)
		size = HeaderSize + bitcodec.PackedLen(units)
	}

	return &Info{
		Path:         path,
		Mode:         header.Mode.String(),
		Length:       header.Length,
		PayloadBytes: len(data),
		DataSize:     size,
		Frames:       s.FramesNeeded(header.Mode, units),
		Width:        s.Width,
		Height:       s.Height,
		BlockSize:    s.Size,
	}, nil
}
