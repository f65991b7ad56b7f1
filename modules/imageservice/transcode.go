package imageservice

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultQuality is used when the client omits the quality field or sends
// something unusable. Reduced fidelity beats failing the whole request for
// this non-critical parameter.
const DefaultQuality = 70

// ResolveQuality coerces the client-supplied quality field to a usable JPEG
// quality. Non-numeric or out-of-range values fall back to DefaultQuality.
func ResolveQuality(raw string) int {
	q, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || q < 1 || q > 100 {
		return DefaultQuality
	}
	return q
}

// transcodeJPEG re-encodes the staged original as a JPEG at the given
// quality. Camera orientation metadata is normalized first so the derivative
// displays upright regardless of how the source was shot. The output is
// always JPEG, whatever the source format.
func transcodeJPEG(inputPath, outputPath string, quality int) error {
	img, err := imaging.Open(inputPath, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode %s: %w", inputPath, err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create derivative: %w", err)
	}

	if err := imaging.Encode(out, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		out.Close()
		os.Remove(outputPath)
		return fmt.Errorf("encode derivative: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("close derivative: %w", err)
	}
	return nil
}
