// Package pipeline sequences the embed and dislodge operations.
//
// Embed: source bytes -> settings -> payload -> sample frame -> container.
// Dislodge: container -> payload bytes -> output file.
//
// Any failing step aborts the run. Every file is written through a
// temporary sibling and renamed, so a failed run leaves no partial output.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/binvid/pkg/binvid/container"
	binviderrors "github.com/provide-io/binvid/pkg/binvid/errors"
	"github.com/provide-io/binvid/pkg/binvid/payload"
	"github.com/provide-io/binvid/pkg/binvid/settings"
	"github.com/provide-io/binvid/pkg/binvid/source"
	"github.com/provide-io/binvid/pkg/binvid/visual"
	"github.com/provide-io/binvid/pkg/utils/atomicfile"
)

// Default paths used when the caller leaves them empty.
const (
	DefaultInputPath     = "test_file.txt"
	DefaultContainerPath = "output" + container.FileSuffix
	DefaultExtractPath   = "extracted_file.bin"
)

// EmbedOptions configures an embed run.
type EmbedOptions struct {
	Source       source.Source // defaults to DefaultInputPath
	Target       string        // container path, defaults to DefaultContainerPath
	Preset       string
	Overrides    settings.Overrides
	Catalog      settings.Catalog // nil means the built-in presets
	SampleFormat visual.Format
	FileMode     os.FileMode
}

// EmbedResult reports what an embed run produced.
type EmbedResult struct {
	Target      string              `json:"target"`
	SamplePath  string              `json:"sample_path"`
	Mode        settings.OutputMode `json:"mode"`
	Settings    settings.Settings   `json:"settings"`
	InputBytes  int                 `json:"input_bytes"`
	Stats       visual.FrameStats   `json:"stats"`
	Checkpoints []Checkpoint        `json:"checkpoints"`
	Elapsed     time.Duration       `json:"elapsed"`
}

// Embed encodes the source into a container file at opts.Target and writes
// a sample frame next to it.
func Embed(ctx context.Context, opts EmbedOptions, logger hclog.Logger) (*EmbedResult, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if opts.Source == nil {
		logger.Info("📄 No input specified, using default", "path", DefaultInputPath)
		opts.Source = source.File(DefaultInputPath)
	}
	if opts.Target == "" {
		opts.Target = DefaultContainerPath
	}

	logger.Info("🚀 Starting embed process", "source", opts.Source.Describe(), "target", opts.Target)
	clock := newTimer(logger)

	raw, err := opts.Source.Bytes()
	if err != nil {
		return nil, fmt.Errorf("load input: %w", err)
	}
	clock.mark("load")

	s, mode, err := settings.NewResolver(opts.Catalog, logger.Named("settings")).Resolve(opts.Preset, opts.Overrides)
	if err != nil {
		return nil, fmt.Errorf("resolve settings: %w", err)
	}
	logger.Info("⚙️ Encoding data",
		"mode", mode,
		"block_size", s.Size,
		"resolution", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"fps", s.FPS,
		"threads", s.Workers(),
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := payload.New(mode, raw)
	if err != nil {
		return nil, err
	}
	stats := visual.Stats(data, s)
	logger.Info("📐 Frame layout",
		"pixels_per_frame", stats.PixelsPerFrame,
		"units", stats.Units,
		"frames_needed", stats.Frames,
	)
	if stats.Frames == 0 && stats.Units > 0 {
		logger.Warn("⚠️ Block size leaves no whole block per frame", "block_size", s.Size)
	}
	clock.mark("codec")

	img := visual.Render(data, s)
	clock.mark("render")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	samplePath := visual.SamplePath(opts.Target, opts.SampleFormat)
	if err := visual.Save(img, samplePath, opts.SampleFormat, opts.FileMode, logger); err != nil {
		return nil, err
	}
	clock.mark("sample")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := container.WriteFile(opts.Target, data, opts.FileMode, logger); err != nil {
		return nil, err
	}
	clock.mark("container")

	elapsed := clock.total()
	logger.Info("✅ Embed process completed", "output", opts.Target, "elapsed", elapsed)

	return &EmbedResult{
		Target:      opts.Target,
		SamplePath:  samplePath,
		Mode:        mode,
		Settings:    s,
		InputBytes:  len(raw),
		Stats:       stats,
		Checkpoints: clock.checkpoints,
		Elapsed:     elapsed,
	}, nil
}

// DislodgeOptions configures a dislodge run.
type DislodgeOptions struct {
	Input    string // container path, defaults to DefaultContainerPath
	Output   string // defaults to DefaultExtractPath
	FileMode os.FileMode
}

// DislodgeResult reports what a dislodge run produced.
type DislodgeResult struct {
	Input   string              `json:"input"`
	Output  string              `json:"output"`
	Mode    settings.OutputMode `json:"mode"`
	Bytes   int                 `json:"bytes"`
	Elapsed time.Duration       `json:"elapsed"`
}

// Dislodge extracts the payload of a container file to opts.Output.
func Dislodge(ctx context.Context, opts DislodgeOptions, logger hclog.Logger) (*DislodgeResult, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if opts.Input == "" {
		logger.Info("📄 No input specified, using default", "path", DefaultContainerPath)
		opts.Input = DefaultContainerPath
	}
	if opts.Output == "" {
		logger.Info("📄 No output specified, using default", "path", DefaultExtractPath)
		opts.Output = DefaultExtractPath
	}

	logger.Info("🚀 Starting dislodge process", "input", opts.Input, "output", opts.Output)
	clock := newTimer(logger)

	mode, data, err := container.ReadFile(opts.Input, logger.Named("container"))
	if err != nil {
		return nil, fmt.Errorf("read container %s: %w", opts.Input, err)
	}
	clock.mark("read")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := atomicfile.WriteBytes(opts.Output, data, opts.FileMode, logger); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", binviderrors.ErrWriteFailed, opts.Output, err)
	}
	clock.mark("write")

	elapsed := clock.total()
	logger.Info("✅ Dislodge process completed", "output", opts.Output, "bytes", len(data), "elapsed", elapsed)

	return &DislodgeResult{
		Input:   opts.Input,
		Output:  opts.Output,
		Mode:    mode,
		Bytes:   len(data),
		Elapsed: elapsed,
	}, nil
}
