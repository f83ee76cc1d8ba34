package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngUpload(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	require.NoError(t, png.Encode(buf, img))
	return buf
}

func TestAvatarStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewAvatarStore(dir, "/media/avatars")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), 7, pngUpload(t, 640, 480))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/avatars/7-"))
	assert.True(t, strings.HasSuffix(url, ".webp"))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)

	// The written file really is the one the URL points at.
	assert.Equal(t, filepath.Base(url), files[0].Name())
}

func TestAvatarStore_Save_RejectsGarbage(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir(), "/media/avatars")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), 7, strings.NewReader("not an image"))
	assert.Error(t, err)
}

func TestAvatarStore_Save_RejectsEmpty(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir(), "/media/avatars")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), 7, strings.NewReader(""))
	assert.Error(t, err)
}
