package imageservice

// CompressResult is the response payload for a successful upload. Sizes are
// measured from disk after the derivative is written, never carried forward
// from earlier pipeline stages.
type CompressResult struct {
	Message         string `json:"message"`
	OriginalSize    int64  `json:"originalSize"`
	CompressedSize  int64  `json:"compressedSize"`
	CompressedImage string `json:"compressedImage"`
}
