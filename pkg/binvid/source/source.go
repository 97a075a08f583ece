// Package source supplies the raw bytes to embed.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	binviderrors "github.com/provide-io/binvid/pkg/binvid/errors"
)

// Source yields the payload bytes.
type Source interface {
	Bytes() ([]byte, error)
	// Describe names the source in log output.
	Describe() string
}

// File reads the payload from a path.
func File(path string) Source { return fileSource(path) }

// Text embeds a literal string.
func Text(s string) Source { return textSource(s) }

// Raw embeds an in-memory buffer.
func Raw(b []byte) Source { return rawSource(b) }

type fileSource string

func (f fileSource) Bytes() ([]byte, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", binviderrors.ErrSourceNotFound, string(f))
		}
		return nil, fmt.Errorf("read %s: %w", string(f), err)
	}
	return data, nil
}

func (f fileSource) Describe() string { return "file:" + string(f) }

type textSource string

func (t textSource) Bytes() ([]byte, error) { return []byte(t), nil }
func (t textSource) Describe() string       { return fmt.Sprintf("text(%d bytes)", len(t)) }

type rawSource []byte

func (r rawSource) Bytes() ([]byte, error) {
	out := make([]byte, len(r))
	copy(out, r)
	return out, nil
}

func (r rawSource) Describe() string { return fmt.Sprintf("raw(%d bytes)", len(r)) }
