package container

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/binvid/pkg/binvid/bitcodec"
	binviderrors "github.com/provide-io/binvid/pkg/binvid/errors"
	"github.com/provide-io/binvid/pkg/binvid/payload"
	"github.com/provide-io/binvid/pkg/binvid/settings"
	"github.com/provide-io/binvid/pkg/utils/atomicfile"
)

// HeaderFor builds the header describing data.
func HeaderFor(data payload.Data) (Header, error) {
	units := data.Units()
	if uint64(units) > math.MaxUint32 {
		return Header{}, fmt.Errorf("%w: %d %s", binviderrors.ErrPayloadTooLarge, units, unitName(data.Mode()))
	}
	return Header{Mode: data.Mode(), Length: uint32(units)}, nil
}

// Write streams the container form of data to w.
func Write(w io.Writer, data payload.Data) error {
	header, err := HeaderFor(data)
	if err != nil {
		return err
	}
	if _, err := w.Write(header.Pack()); err != nil {
		return err
	}

	var body []byte
	switch d := data.(type) {
	case payload.Bits:
		body = bitcodec.BitsToBytes(d)
	case payload.Bytes:
		body = d
	}
	_, err = w.Write(body)
	return err
}

// Encode returns the container bytes for data.
func Encode(data payload.Data) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(HeaderSize + bodySize(data))
	if err := Write(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the container for data to path atomically.
func WriteFile(path string, data payload.Data, perm os.FileMode, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	header, err := HeaderFor(data)
	if err != nil {
		return err
	}
	magic := header.Magic()
	logger.Debug("📦 Writing container", "path", path, "magic", string(magic[:]), "length", header.Length)

	if err := atomicfile.Write(path, perm, logger, func(w io.Writer) error {
		return Write(w, data)
	}); err != nil {
		return fmt.Errorf("%w: %s: %w", binviderrors.ErrWriteFailed, path, err)
	}

	logger.Info("💾 Container written", "path", path, "size", HeaderSize+bodySize(data))
	return nil
}

func bodySize(data payload.Data) int {
	if data.Mode() == settings.Binary {
		return bitcodec.PackedLen(data.Units())
	}
	return data.Units()
}

func unitName(mode settings.OutputMode) string {
	if mode == settings.Binary {
		return "bits"
	}
	return "bytes"
}
