// Package pkg exposes one-call helpers over the binvid pipeline.
package pkg

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/binvid/internal/userconfig"
	"github.com/provide-io/binvid/pkg/binvid/pipeline"
	"github.com/provide-io/binvid/pkg/binvid/settings"
	"github.com/provide-io/binvid/pkg/binvid/source"
	"github.com/provide-io/binvid/pkg/logging"
)

// EmbedFile embeds inputPath into outputPath using a named preset.
func EmbedFile(inputPath, outputPath, preset string) (*pipeline.EmbedResult, error) {
	return EmbedFileWithLogLevel(inputPath, outputPath, preset, "")
}

// EmbedFileWithLogLevel is EmbedFile with logging to stderr at logLevel.
func EmbedFileWithLogLevel(inputPath, outputPath, preset, logLevel string) (*pipeline.EmbedResult, error) {
	logger := logging.NewLogger("binvid", logLevel, nil)

	catalog, err := LoadCatalog("", logger)
	if err != nil {
		return nil, err
	}

	opts := pipeline.EmbedOptions{Target: outputPath, Preset: preset, Catalog: catalog}
	if inputPath != "" {
		opts.Source = source.File(inputPath)
	}
	return pipeline.Embed(context.Background(), opts, logger)
}

// DislodgeFile extracts the payload of inputPath into outputPath.
func DislodgeFile(inputPath, outputPath string) (*pipeline.DislodgeResult, error) {
	return DislodgeFileWithLogLevel(inputPath, outputPath, "")
}

// DislodgeFileWithLogLevel is DislodgeFile with logging to stderr at logLevel.
func DislodgeFileWithLogLevel(inputPath, outputPath, logLevel string) (*pipeline.DislodgeResult, error) {
	logger := logging.NewLogger("binvid", logLevel, nil)
	return pipeline.Dislodge(context.Background(), pipeline.DislodgeOptions{Input: inputPath, Output: outputPath}, logger)
}

// LoadCatalog returns the built-in presets merged with the user preset file.
// presetsFlag names the file explicitly; otherwise BINVID_PRESETS or the
// default file in the config directory is used. Only an explicitly named
// file has to exist.
func LoadCatalog(presetsFlag string, logger hclog.Logger) (settings.Catalog, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	catalog := settings.DefaultCatalog()
	path, explicit := userconfig.PresetsPath(presetsFlag)

	user, err := settings.LoadCatalogFile(path)
	switch {
	case err == nil:
		logger.Debug("📚 Loaded user presets", "path", path, "count", len(user))
		return catalog.Merge(user), nil
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		logger.Trace("No user preset file", "path", path)
		return catalog, nil
	default:
		return nil, fmt.Errorf("load presets %s: %w", path, err)
	}
}
