package storage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// ThumbnailSize bounds the longest side of generated thumbnails, in pixels.
const ThumbnailSize = 320

// imageTypes are the formats the thumbnailer can decode.
var imageTypes = []string{"image/jpeg", "image/png", "image/gif"}

// DetectImage sniffs content and returns its MIME type when it is a supported image.
func DetectImage(content []byte) (string, bool) {
	m := mimetype.Detect(content)
	for _, t := range imageTypes {
		if m.Is(t) {
			return t, true
		}
	}
	return m.String(), false
}

// Thumbnail decodes an image, applies its EXIF orientation, fits it into a size x size box
// and encodes the result as JPEG.
func Thumbnail(content io.Reader, size int) ([]byte, error) {
	img, err := imaging.Decode(content, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image failed: %w", err)
	}

	thumb := imaging.Fit(img, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("encode thumbnail failed: %w", err)
	}
	return buf.Bytes(), nil
}
