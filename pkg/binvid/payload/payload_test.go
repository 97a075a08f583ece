package payload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	binviderrors "github.com/provide-io/binvid/pkg/binvid/errors"
	"github.com/provide-io/binvid/pkg/binvid/settings"
)

func TestNew(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03}

	bin, err := New(settings.Binary, raw)
	require.NoError(t, err)
	assert.Equal(t, settings.Binary, bin.Mode())
	assert.Equal(t, 24, bin.Units())
	bits, ok := bin.(Bits)
	require.True(t, ok)
	assert.True(t, bits[0])
	assert.False(t, bits[1])

	col, err := New(settings.Color, raw)
	require.NoError(t, err)
	assert.Equal(t, settings.Color, col.Mode())
	assert.Equal(t, 3, col.Units())
	assert.Equal(t, Bytes(raw), col)

	_, err = New(settings.OutputMode(9), raw)
	assert.True(t, errors.Is(err, binviderrors.ErrUnknownMode))
}
