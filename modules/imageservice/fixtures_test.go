package imageservice

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

// makeTestJPEG encodes a gradient image at high quality, approximating
// photographic content that re-encoding at a lower quality will shrink.
func makeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x % 256),
				G: uint8(y % 256),
				B: uint8((x * y) % 256),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("failed to encode fixture image: %v", err)
	}
	return buf.Bytes()
}
