package container

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/binvid/pkg/binvid/bitcodec"
	binviderrors "github.com/provide-io/binvid/pkg/binvid/errors"
	"github.com/provide-io/binvid/pkg/binvid/settings"
)

// Reader reads container files
type Reader struct {
	path   string
	file   *os.File
	header *Header
	logger hclog.Logger
}

// NewReader creates a new container reader
func NewReader(path string) *Reader {
	return NewReaderWithLogger(path, hclog.NewNullLogger())
}

// NewReaderWithLogger creates a new container reader with a custom logger
func NewReaderWithLogger(path string, logger hclog.Logger) *Reader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Reader{
		path:   path,
		logger: logger,
	}
}

// Open opens the container file
func (r *Reader) Open() error {
	if r.file != nil {
		return nil
	}

	file, err := os.Open(r.path)
	if err != nil {
		return err
	}

	r.file = file
	return nil
}

// Close closes the container file
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// ReadHeader reads exactly HeaderSize bytes and classifies the magic.
func (r *Reader) ReadHeader() (*Header, error) {
	if r.header != nil {
		return r.header, nil
	}

	if err := r.Open(); err != nil {
		return nil, err
	}

	header, err := readHeader(r.file)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("🔍 Read container header", "path", r.path, "mode", header.Mode, "length", header.Length)
	r.header = header
	return header, nil
}

// ReadPayload reads everything after the header. Binary payloads are
// unpacked up to the stored bit count and repacked into bytes; Color
// payloads are returned verbatim.
func (r *Reader) ReadPayload() ([]byte, error) {
	header, err := r.ReadHeader()
	if err != nil {
		return nil, err
	}

	if _, err := r.file.Seek(HeaderSize, io.SeekStart); err != nil {
		return nil, err
	}

	return readPayload(r.file, header, r.logger)
}

// Decode reads a whole container from r.
func Decode(r io.Reader) (settings.OutputMode, []byte, error) {
	return decode(r, hclog.NewNullLogger())
}

// ReadFile reads the container at path and returns its mode and payload.
func ReadFile(path string, logger hclog.Logger) (settings.OutputMode, []byte, error) {
	reader := NewReaderWithLogger(path, logger)
	defer func() {
		if err := reader.Close(); err != nil {
			reader.logger.Debug("Failed to close reader", "error", err)
		}
	}()

	header, err := reader.ReadHeader()
	if err != nil {
		return settings.Binary, nil, err
	}
	data, err := reader.ReadPayload()
	if err != nil {
		return header.Mode, nil, err
	}
	return header.Mode, data, nil
}

func decode(r io.Reader, logger hclog.Logger) (settings.OutputMode, []byte, error) {
	header, err := readHeader(r)
	if err != nil {
		return settings.Binary, nil, err
	}
	data, err := readPayload(r, header, logger)
	if err != nil {
		return header.Mode, nil, err
	}
	return header.Mode, data, nil
}

func readHeader(r io.Reader) (*Header, error) {
	buf := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: got %d bytes, expected %d", binviderrors.ErrTruncatedHeader, n, HeaderSize)
		}
		return nil, err
	}

	header := &Header{}
	if err := header.Unpack(buf); err != nil {
		return nil, err
	}
	return header, nil
}

func readPayload(r io.Reader, header *Header, logger hclog.Logger) ([]byte, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch header.Mode {
	case settings.Binary:
		bits := bitcodec.UnpackBits(body, int(header.Length))
		if len(bits) < int(header.Length) {
			logger.Debug("⚠️ Packed payload shorter than stored bit count",
				"stored_bits", header.Length, "available_bits", len(bits))
		}
		return bitcodec.BitsToBytes(bits), nil
	default:
		// The stored length is informational for Color containers.
		if uint64(len(body)) != uint64(header.Length) {
			logger.Debug("⚠️ Color payload size differs from stored length",
				"stored", header.Length, "actual", len(body))
		}
		return body, nil
	}
}
