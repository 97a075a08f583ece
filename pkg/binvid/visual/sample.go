package visual

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/image/bmp"

	binviderrors "github.com/provide-io/binvid/pkg/binvid/errors"
	"github.com/provide-io/binvid/pkg/utils/atomicfile"
)

// Format is the raster format of the sample frame.
type Format string

const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// SampleMarker is appended to the container path to name the sample frame.
const SampleMarker = "_sample"

// ParseFormat accepts "png" and "bmp". Empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case "":
		return FormatPNG, nil
	case FormatPNG, FormatBMP:
		return f, nil
	default:
		return FormatPNG, fmt.Errorf("%w: %q: use png or bmp", binviderrors.ErrUnknownFormat, s)
	}
}

// SamplePath derives the sample image path from the container path,
// e.g. "output.binvid" becomes "output.binvid_sample.png".
func SamplePath(target string, format Format) string {
	if format == "" {
		format = FormatPNG
	}
	return target + SampleMarker + "." + string(format)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG, "":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode PNG: %w", err)
		}
	case FormatBMP:
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("encode BMP: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", binviderrors.ErrUnknownFormat, format)
	}
	return nil
}

// Save encodes img to path atomically.
func Save(img image.Image, path string, format Format, perm os.FileMode, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if err := atomicfile.Write(path, perm, logger, func(w io.Writer) error {
		return Encode(w, img, format)
	}); err != nil {
		return fmt.Errorf("%w: sample %s: %w", binviderrors.ErrWriteFailed, path, err)
	}
	logger.Info("🖼️ Saved sample frame", "path", path, "format", format)
	return nil
}
