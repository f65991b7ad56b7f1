package imageservice

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const derivativePrefix = "compressed-"

// sanitizeFilename removes path separators and dangerous characters from
// the client-supplied filename.
func sanitizeFilename(filename string) string {
	clean := filepath.Base(filepath.Clean(filename))
	clean = strings.ReplaceAll(clean, "/", "_")
	clean = strings.ReplaceAll(clean, "\\", "_")
	if clean == "." || clean == ".." || clean == "" {
		return "unnamed"
	}
	return clean
}

// UniqueName produces a staging name guaranteed unique across concurrent
// requests without coordination: a nanosecond timestamp plus a random token,
// prefixed to the sanitized client filename. This is what makes the whole
// pipeline safe under concurrent uploads of identically named files.
func UniqueName(original string) string {
	token := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixNano(), token, sanitizeFilename(original))
}

// DerivativeName maps a unique original name to its derivative's name.
func DerivativeName(uniqueName string) string {
	return derivativePrefix + uniqueName
}
