package bitmap_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/halo/bitmap"
	"github.com/katalvlaran/halo/grid"
)

func gradient(t *testing.T, w, h int) *bitmap.Image {
	t.Helper()
	px, err := grid.New[uint8](h, w*bitmap.Channels)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w*bitmap.Channels; x++ {
			require.NoError(t, px.Set(y, x, uint8(y*31+x*7)))
		}
	}

	return &bitmap.Image{Pixels: px, Width: w, Height: h}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	// odd width exercises BMP row padding
	for _, size := range [][2]int{{1, 1}, {5, 3}, {8, 8}} {
		img := gradient(t, size[0], size[1])
		var buf bytes.Buffer
		require.NoError(t, bitmap.Encode(&buf, img))
		assert.Equal(t, "BM", string(buf.Bytes()[:2]))

		got, err := bitmap.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, img.Width, got.Width)
		assert.Equal(t, img.Height, got.Height)
		assert.True(t, img.Pixels.Equal(got.Pixels), "%dx%d pixels differ", size[0], size[1])
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := bitmap.Decode(bytes.NewReader([]byte("PNG....")))
	assert.ErrorIs(t, err, bitmap.ErrNotBitmap)

	_, err = bitmap.Decode(bytes.NewReader([]byte("B")))
	assert.ErrorIs(t, err, bitmap.ErrTruncated)

	var buf bytes.Buffer
	require.NoError(t, bitmap.Encode(&buf, gradient(t, 4, 4)))
	_, err = bitmap.Decode(bytes.NewReader(buf.Bytes()[:buf.Len()-10]))
	assert.ErrorIs(t, err, bitmap.ErrTruncated)
}

func TestEncode_Errors(t *testing.T) {
	assert.ErrorIs(t, bitmap.Encode(&bytes.Buffer{}, nil), bitmap.ErrNilImage)

	img := gradient(t, 2, 2)
	img.Width = 3
	assert.ErrorIs(t, bitmap.Encode(&bytes.Buffer{}, img), grid.ErrDimensionMismatch)
}

func TestReadWrite_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.bmp")
	img := gradient(t, 6, 4)
	require.NoError(t, bitmap.Write(path, img))

	got, err := bitmap.Read(path)
	require.NoError(t, err)
	assert.True(t, img.Pixels.Equal(got.Pixels))

	bad := filepath.Join(dir, "bad.bmp")
	require.NoError(t, os.WriteFile(bad, []byte("hello"), 0o600))
	_, err = bitmap.Read(bad)
	require.ErrorIs(t, err, bitmap.ErrNotBitmap)
	assert.Contains(t, err.Error(), bad)

	_, err = bitmap.Read(filepath.Join(dir, "missing.bmp"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
