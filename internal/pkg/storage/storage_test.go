package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "gallery/ab/photo.png", bytes.NewBufferString("pixels")))

	rc, err := s.Open(ctx, "gallery/ab/photo.png")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(got))

	require.NoError(t, s.Delete(ctx, "gallery/ab/photo.png"))
	require.NoError(t, s.Delete(ctx, "gallery/ab/photo.png"), "deleting twice is fine")

	_, err = s.Open(ctx, "gallery/ab/photo.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorageRejectsEscapes(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	err = s.Save(context.Background(), "../outside.txt", bytes.NewBufferString("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = s.Open(context.Background(), "gallery/../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDetectImage(t *testing.T) {
	ct, ok := DetectImage(pngBytes(t, 4, 4))
	assert.True(t, ok)
	assert.Equal(t, "image/png", ct)

	ct, ok = DetectImage([]byte("%PDF-1.7 not an image"))
	assert.False(t, ok)
	assert.Equal(t, "application/pdf", ct)
}

func TestThumbnailFitsBox(t *testing.T) {
	out, err := Thumbnail(bytes.NewReader(pngBytes(t, 800, 400)), 100)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())

	ct, _ := DetectImage(out)
	assert.Equal(t, "image/jpeg", ct)

	_, err = Thumbnail(bytes.NewBufferString("garbage"), 100)
	assert.Error(t, err)
}
