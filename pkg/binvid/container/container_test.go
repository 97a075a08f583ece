// Tests for container header packing and the read/write round trip
package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/binvid/pkg/binvid/bitcodec"
	binviderrors "github.com/provide-io/binvid/pkg/binvid/errors"
	"github.com/provide-io/binvid/pkg/binvid/payload"
	"github.com/provide-io/binvid/pkg/binvid/settings"
)

func testLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "container_test",
		Level: hclog.Trace,
	})
}

// TestHeaderPacking tests the 10-byte header layout
func TestHeaderPacking(t *testing.T) {
	testCases := []struct {
		name     string
		header   Header
		expected []byte
	}{
		{
			name:     "binary",
			header:   Header{Mode: settings.Binary, Length: 32},
			expected: []byte{'B', 'I', 'N', 'V', 'I', 'D', 0x20, 0x00, 0x00, 0x00},
		},
		{
			name:     "color",
			header:   Header{Mode: settings.Color, Length: 0x01020304},
			expected: []byte{'C', 'O', 'L', 'V', 'I', 'D', 0x04, 0x03, 0x02, 0x01},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			packed := tc.header.Pack()
			if !bytes.Equal(packed, tc.expected) {
				t.Fatalf("Pack() = %x, want %x", packed, tc.expected)
			}

			var unpacked Header
			if err := unpacked.Unpack(packed); err != nil {
				t.Fatalf("Unpack: %v", err)
			}
			if unpacked != tc.header {
				t.Errorf("Unpack() = %+v, want %+v", unpacked, tc.header)
			}
		})
	}
}

func TestHeaderUnpackErrors(t *testing.T) {
	var h Header
	if err := h.Unpack([]byte("BINVID")); !errors.Is(err, binviderrors.ErrTruncatedHeader) {
		t.Errorf("short header: got %v", err)
	}
	if err := h.Unpack([]byte("MP4VID\x00\x00\x00\x00")); !errors.Is(err, binviderrors.ErrInvalidMagic) {
		t.Errorf("bad magic: got %v", err)
	}
}

// TestEncodeKnownPayload pins the four-byte example from the format notes
func TestEncodeKnownPayload(t *testing.T) {
	input := []byte{0x01, 0x02, 0x03, 0x04}
	data, err := payload.New(settings.Binary, input)
	if err != nil {
		t.Fatal(err)
	}

	encoded, err := Encode(data)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if string(encoded[:MagicSize]) != "BINVID" {
		t.Errorf("magic = %q", encoded[:MagicSize])
	}
	if length := binary.LittleEndian.Uint32(encoded[MagicSize:HeaderSize]); length != 32 {
		t.Errorf("length = %d, want 32", length)
	}
	if !bytes.Equal(encoded[HeaderSize:], input) {
		t.Errorf("payload = %x, want %x", encoded[HeaderSize:], input)
	}

	mode, decoded, err := Decode(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if mode != settings.Binary || !bytes.Equal(decoded, input) {
		t.Errorf("Decode = (%v, %x), want (binary, %x)", mode, decoded, input)
	}
}

func TestEncodeColor(t *testing.T) {
	input := []byte("hello, world")
	encoded, err := Encode(payload.Bytes(input))
	if err != nil {
		t.Fatal(err)
	}

	want := append([]byte("COLVID"), byte(len(input)), 0, 0, 0)
	want = append(want, input...)
	if !bytes.Equal(encoded, want) {
		t.Errorf("Encode = %x, want %x", encoded, want)
	}
}

// TestBinaryPartialByte checks that bits beyond the stored count are dropped
func TestBinaryPartialByte(t *testing.T) {
	bits := payload.Bits{true, true, false, true, true} // 5 bits
	encoded, err := Encode(bits)
	if err != nil {
		t.Fatal(err)
	}
	if len(encoded) != HeaderSize+1 {
		t.Fatalf("encoded size = %d, want %d", len(encoded), HeaderSize+1)
	}
	if encoded[HeaderSize] != 0x1B {
		t.Errorf("packed byte = %02x, want 1b", encoded[HeaderSize])
	}

	// set the high bits of the packed byte; the stored count must hide them
	encoded[HeaderSize] |= 0xE0
	_, decoded, err := Decode(bytes.NewReader(encoded))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, []byte{0x1B}) {
		t.Errorf("decoded = %x, want 1b", decoded)
	}
}

// TestColorLengthNotChecked pins that Color reads ignore the stored length
func TestColorLengthNotChecked(t *testing.T) {
	input := []byte{9, 8, 7, 6, 5}
	for _, stored := range []uint32{0, 2, 5, 1000} {
		t.Run(fmt.Sprintf("stored=%d", stored), func(t *testing.T) {
			buf := Header{Mode: settings.Color, Length: stored}.Pack()
			buf = append(buf, input...)

			mode, decoded, err := Decode(bytes.NewReader(buf))
			if err != nil {
				t.Fatal(err)
			}
			if mode != settings.Color || !bytes.Equal(decoded, input) {
				t.Errorf("Decode = (%v, %x), want (color, %x)", mode, decoded, input)
			}
		})
	}
}

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func TestUnknownMagicStopsAtHeader(t *testing.T) {
	buf := append([]byte("XXXVID\x04\x00\x00\x00"), bytes.Repeat([]byte{0xAA}, 64)...)
	cr := &countingReader{r: bytes.NewReader(buf)}

	_, _, err := Decode(cr)
	if !errors.Is(err, binviderrors.ErrInvalidMagic) {
		t.Fatalf("err = %v, want ErrInvalidMagic", err)
	}
	if cr.n != HeaderSize {
		t.Errorf("read %d bytes, want exactly %d", cr.n, HeaderSize)
	}
}

func TestTruncatedHeader(t *testing.T) {
	for _, size := range []int{0, 3, HeaderSize - 1} {
		_, _, err := Decode(bytes.NewReader(make([]byte, size)))
		if !errors.Is(err, binviderrors.ErrTruncatedHeader) {
			t.Errorf("size %d: err = %v, want ErrTruncatedHeader", size, err)
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	logger := testLogger()
	dir := t.TempDir()

	testCases := []struct {
		name  string
		mode  settings.OutputMode
		input []byte
	}{
		{name: "binary", mode: settings.Binary, input: []byte("binary file payload")},
		{name: "color", mode: settings.Color, input: []byte{0, 1, 2, 3, 4, 5, 6, 7}},
		{name: "empty binary", mode: settings.Binary, input: nil},
		{name: "empty color", mode: settings.Color, input: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+FileSuffix)
			data, err := payload.New(tc.mode, tc.input)
			if err != nil {
				t.Fatal(err)
			}
			if err := WriteFile(path, data, 0o600, logger); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			mode, got, err := ReadFile(path, logger)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if mode != tc.mode {
				t.Errorf("mode = %v, want %v", mode, tc.mode)
			}
			if !bytes.Equal(got, tc.input) {
				t.Errorf("payload = %x, want %x", got, tc.input)
			}
		})
	}
}

func TestReaderCachesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out"+FileSuffix)
	bits := bitcodec.BytesToBits([]byte{0xCA, 0xFE})
	if err := WriteFile(path, payload.Bits(bits), 0, nil); err != nil {
		t.Fatal(err)
	}

	r := NewReaderWithLogger(path, testLogger())
	defer r.Close()

	first, err := r.ReadHeader()
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.ReadHeader()
	if err != nil {
		t.Fatal(err)
	}
	if first != second || first.Length != 16 {
		t.Errorf("header not cached or wrong: %+v %+v", first, second)
	}

	// payload can be read after the header, and read again
	for i := 0; i < 2; i++ {
		data, err := r.ReadPayload()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, []byte{0xCA, 0xFE}) {
			t.Errorf("pass %d: payload = %x", i, data)
		}
	}
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "nope"+FileSuffix), nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not exist", err)
	}
}

func TestWriteFileUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out"+FileSuffix)
	err := WriteFile(path, payload.Bytes("x"), 0, nil)
	if !errors.Is(err, binviderrors.ErrWriteFailed) {
		t.Errorf("err = %v, want ErrWriteFailed", err)
	}
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in"+FileSuffix)
	data := payload.Bytes(bytes.Repeat([]byte{1}, 100))
	if err := WriteFile(path, data, 0, nil); err != nil {
		t.Fatal(err)
	}

	s := settings.Settings{Size: 4, Threads: 1, FPS: 10, Width: 16, Height: 8}
	info, err := Inspect(path, s, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	// 4x2 blocks per frame, 3 bytes each: 24 bytes per frame
	if info.Mode != "color" || info.Length != 100 || info.PayloadBytes != 100 {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.DataSize != HeaderSize+100 {
		t.Errorf("DataSize = %d", info.DataSize)
	}
	if info.Frames != 5 {
		t.Errorf("Frames = %d, want 5", info.Frames)
	}
}
