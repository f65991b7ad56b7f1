package imageservice

import "errors"

// Sentinel errors for the upload-compress pipeline. Handlers rely on these
// to map failures to the right HTTP status.
var (
	// ErrUnsupportedType is returned when the declared content type is not an image.
	ErrUnsupportedType = errors.New("only image uploads are supported")

	// ErrStorage is returned when the staging tree cannot be written.
	ErrStorage = errors.New("storage failure")

	// ErrTranscode is returned when the codec cannot produce a derivative
	// from a staged original (corrupt input, unsupported subformat).
	ErrTranscode = errors.New("image transcode failed")
)
