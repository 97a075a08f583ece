package pkg

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/binvid/internal/userconfig"
	"github.com/provide-io/binvid/pkg/binvid/settings"
)

const userPresets = `
presets:
  archive:
    description: Big blocks
    mode: binary
    block_size: 8
    resolution: 480p
`

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(userconfig.EnvConfigDir, dir)
	t.Setenv(userconfig.EnvPresets, "")

	catalog, err := LoadCatalog("", nil)
	require.NoError(t, err, "missing default file is not an error")
	assert.Equal(t, settings.DefaultCatalog().Names(), catalog.Names())

	require.NoError(t, os.WriteFile(filepath.Join(dir, userconfig.PresetsFileName), []byte(userPresets), 0o600))
	catalog, err = LoadCatalog("", nil)
	require.NoError(t, err)
	archive, err := catalog.Lookup("archive")
	require.NoError(t, err)
	assert.Equal(t, 8, archive.Settings.Size)
	assert.Equal(t, 854, archive.Settings.Width)

	_, err = LoadCatalog(filepath.Join(dir, "absent.yaml"), nil)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "explicit file must exist")
}

func TestEmbedDislodgeFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(userconfig.EnvConfigDir, dir)
	t.Setenv(userconfig.EnvPresets, "")

	input := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("hello binvid"), 0o600))
	target := filepath.Join(dir, "in.binvid")
	out := filepath.Join(dir, "out.txt")

	res, err := EmbedFileWithLogLevel(input, target, settings.PresetParanoid, "error")
	require.NoError(t, err)
	assert.Equal(t, 4, res.Settings.Size)

	_, err = DislodgeFileWithLogLevel(target, out, "error")
	require.NoError(t, err)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "hello binvid", string(got))
}
